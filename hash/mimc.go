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

import (
	gnarkhash "github.com/consensys/gnark-crypto/hash"
)

// MiMCHasher implements Hasher over MiMC/BN254 (github.com/consensys/gnark-crypto).
// It exists for deployments where the historical SMT's opening will be
// re-verified inside a gnark circuit: using an arithmetic-friendly hash for
// the tree itself means the circuit never has to emulate SHA-256/BLAKE3
// bit-twiddling to check an inclusion proof.
type MiMCHasher struct{}

var _ Hasher = MiMCHasher{}

// Hash implements Hasher.
func (MiMCHasher) Hash(data []byte) Hash {
	h := gnarkhash.MIMC_BN254.New()
	h.Write([]byte{leafTag})
	h.Write(data)
	return BytesToHash(h.Sum(nil))
}

// Merge implements Hasher.
func (MiMCHasher) Merge(left, right Hash) Hash {
	h := gnarkhash.MIMC_BN254.New()
	h.Write([]byte{nodeTag})
	h.Write(left[:])
	h.Write(right[:])
	return BytesToHash(h.Sum(nil))
}

// Key implements Hasher.
func (MiMCHasher) Key(context string, data []byte) Hash {
	ctxHasher := gnarkhash.MIMC_BN254.New()
	ctxHasher.Write([]byte(context))
	ctxDigest := ctxHasher.Sum(nil)

	h := gnarkhash.MIMC_BN254.New()
	h.Write([]byte{keyTag})
	h.Write(ctxDigest)
	h.Write(data)
	return BytesToHash(h.Sum(nil))
}

// Digest implements Hasher.
func (MiMCHasher) Digest(chunks ...[]byte) Hash {
	h := gnarkhash.MIMC_BN254.New()
	h.Write([]byte{leafTag})
	for _, c := range chunks {
		h.Write(c)
	}
	return BytesToHash(h.Sum(nil))
}
