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

package hash

import "github.com/zeebo/blake3"

// Blake3Hasher implements Hasher over BLAKE3. Domain ids and controller ids
// are derived through Digest over "domain" || name and
// "controller" || circuit || nonce respectively.
type Blake3Hasher struct{}

var _ Hasher = Blake3Hasher{}

// Hash implements Hasher.
func (Blake3Hasher) Hash(data []byte) Hash {
	h := blake3.New()
	h.Write([]byte{leafTag})
	h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Merge implements Hasher.
func (Blake3Hasher) Merge(left, right Hash) Hash {
	h := blake3.New()
	h.Write([]byte{nodeTag})
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Key implements Hasher. The context string is first reduced to a 32-byte
// BLAKE3 key so arbitrary-length contexts can seed blake3's native keyed
// mode.
func (Blake3Hasher) Key(context string, data []byte) Hash {
	ctxKey := blake3.Sum256([]byte(context))
	keyed, err := blake3.NewKeyed(ctxKey[:])
	if err != nil {
		// blake3.Sum256 always yields exactly 32 bytes, so NewKeyed
		// cannot reject it; a failure here means the library's
		// invariants changed underneath us.
		panic("hash: blake3 keyed hasher rejected a 32-byte key: " + err.Error())
	}
	keyed.Write([]byte{keyTag})
	keyed.Write(data)
	var out Hash
	copy(out[:], keyed.Sum(nil))
	return out
}

// Digest implements Hasher.
func (Blake3Hasher) Digest(chunks ...[]byte) Hash {
	h := blake3.New()
	h.Write([]byte{leafTag})
	for _, c := range chunks {
		h.Write(c)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
