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

// Package hash defines the fixed-width hash abstraction the rest of the
// coprocessor core is built on: a 32-byte digest, domain-separated leaf and
// interior-node hashing, and a context-keyed derivation used for domain and
// controller ids.
package hash

import "encoding/hex"

// Size is the width, in bytes, of every digest produced by a Hasher.
const Size = 32

// Hash is an opaque 32-byte digest. The zero value is the empty node.
type Hash [Size]byte

// IsZero reports whether h is the all-zero (empty) node.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Bytes returns a copy of the underlying 32 bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h[:])
	return out
}

// String returns the lower-case hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// BytesToHash copies up to Size bytes of b into a Hash, zero-padding on the
// right if b is shorter than Size.
func BytesToHash(b []byte) Hash {
	var h Hash
	copy(h[:], b)
	return h
}

// domain-separation tags. Leaf and node tags must never collide: a leaf
// hash must never be mistakable for an interior node hash, or a
// second-preimage attack lets an attacker pass a leaf off as a subtree
// root (or vice versa).
const (
	leafTag byte = 0x00
	nodeTag byte = 0x01
	keyTag  byte = 0x02
)

// Hasher is the polymorphic hash contract every other package in this
// module depends on. Implementations must keep hash/merge/key/digest
// domain-separated (see the tags above) and deterministic.
type Hasher interface {
	// Hash returns the domain-tagged leaf hash of data.
	Hash(data []byte) Hash

	// Merge returns the domain-tagged interior-node hash of (left, right).
	// Merge is not symmetric: Merge(a, b) != Merge(b, a) in general.
	Merge(left, right Hash) Hash

	// Key derives a context-keyed 32-byte output for data; distinct
	// contexts yield independent outputs for the same data.
	Key(context string, data []byte) Hash

	// Digest hashes a sequence of byte chunks under the same domain tag
	// as Hash, without requiring the caller to concatenate them first.
	Digest(chunks ...[]byte) Hash
}
