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

// Package codec holds the canonical byte encodings shared by the historical
// coordinator and the prover wire protocol: block-number keys, packed
// blocks, and base64-wrapped msgpack proof envelopes.
package codec

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

// BlockNumberKey encodes number as a 32-byte SMT key: big-endian at offset
// 0, zero-padded through byte 31. The number's most significant bit becomes
// the tree's root-level branch bit, deliberately spreading sequential
// numbers across the tree instead of clustering them down one side.
func BlockNumberKey(number uint64) hash.Hash {
	var k hash.Hash
	binary.BigEndian.PutUint64(k[:8], number)
	return k
}

// PackedBlock is the wire/storage shape of a ValidatedDomainBlock's opaque
// payload plus its identifying fields, msgpack-encoded for storage in the
// data backend's standard lane (as an SMT leaf payload or a latest-block
// record).
type PackedBlock struct {
	Domain  hash.Hash `msgpack:"domain"`
	Number  uint64    `msgpack:"number"`
	Root    hash.Hash `msgpack:"root"`
	Payload []byte    `msgpack:"payload"`
}

// PackBlock msgpack-encodes a PackedBlock.
func PackBlock(b PackedBlock) ([]byte, error) {
	out, err := msgpack.Marshal(&b)
	if err != nil {
		return nil, fmt.Errorf("%w: codec: pack block: %v", coprocerr.ErrSerialization, err)
	}
	return out, nil
}

// UnpackBlock decodes a PackedBlock previously produced by PackBlock.
func UnpackBlock(raw []byte) (PackedBlock, error) {
	var b PackedBlock
	if err := msgpack.Unmarshal(raw, &b); err != nil {
		return PackedBlock{}, fmt.Errorf("%w: codec: unpack block: %v", coprocerr.ErrSerialization, err)
	}
	return b, nil
}

// ProofEnvelope is the canonical wire shape of a zkVM proof: proof bytes
// paired with its public inputs, transported as base64(msgpack(...)).
type ProofEnvelope struct {
	Proof  []byte `msgpack:"proof"`
	Inputs []byte `msgpack:"inputs"`
}

// EncodeProof serializes a ProofEnvelope to base64(msgpack(...)).
func EncodeProof(proof, inputs []byte) (string, error) {
	raw, err := msgpack.Marshal(&ProofEnvelope{Proof: proof, Inputs: inputs})
	if err != nil {
		return "", fmt.Errorf("%w: codec: encode proof: %v", coprocerr.ErrSerialization, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeProof reverses EncodeProof.
func DecodeProof(encoded string) (proof, inputs []byte, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: codec: decode proof base64: %v", coprocerr.ErrSerialization, err)
	}
	var env ProofEnvelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: codec: decode proof msgpack: %v", coprocerr.ErrSerialization, err)
	}
	return env.Proof, env.Inputs, nil
}
