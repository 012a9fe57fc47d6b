// Copyright 2026 The valence-net Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valence-net/zk-coprocessor/hash"
)

func TestBlockNumberKeyBigEndianAtOffsetZero(t *testing.T) {
	k := BlockNumberKey(1)
	require.Equal(t, byte(0), k[0])
	require.Equal(t, byte(1), k[7])
	for _, b := range k[8:] {
		require.Equal(t, byte(0), b)
	}
}

func TestBlockNumberKeySpreadsAcrossRootBit(t *testing.T) {
	low := BlockNumberKey(1)
	high := BlockNumberKey(1 << 63)
	require.NotEqual(t, low[0]>>7, high[0]>>7, "the top bit of the number must become the root branch bit")
}

func TestPackUnpackBlockRoundTrip(t *testing.T) {
	want := PackedBlock{
		Domain:  hash.BytesToHash([]byte("domain")),
		Number:  238792,
		Root:    hash.BytesToHash([]byte("root")),
		Payload: []byte("opaque payload bytes"),
	}
	raw, err := PackBlock(want)
	require.NoError(t, err)

	got, err := UnpackBlock(raw)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEncodeDecodeProofRoundTrip(t *testing.T) {
	proof := []byte{0x01, 0x02, 0x03}
	inputs := []byte{0xAA, 0xBB}

	encoded, err := EncodeProof(proof, inputs)
	require.NoError(t, err)

	gotProof, gotInputs, err := DecodeProof(encoded)
	require.NoError(t, err)
	require.Equal(t, proof, gotProof)
	require.Equal(t, inputs, gotInputs)
}

func TestDecodeProofRejectsGarbage(t *testing.T) {
	_, _, err := DecodeProof("not-valid-base64!!")
	require.Error(t, err)
}
