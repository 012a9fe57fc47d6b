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

// Package smt implements a namespaced sparse Merkle tree: a binary radix
// trie keyed by the 256 bits of a 32-byte key, with empty subtrees
// collapsed and leaves placed at their shortest distinguishing prefix.
package smt

import "github.com/valence-net/zk-coprocessor/hash"

// maxDepth bounds both tree traversal and accepted opening length: a path
// longer than this cannot have been produced by Open and is rejected.
const maxDepth = 256

// Opening is an ordered path of sibling digests indexed by trie depth:
// Path[d] is the sibling encountered at depth d while descending from the
// root. Path[0] is therefore nearest the root and Path[len-1] nearest the
// leaf; Root folds the path starting at its last index and working back to
// 0, root-ward.
type Opening struct {
	Path []hash.Hash
}

// KeyedOpening pairs an Opening with the key and the value found at that
// key (or Present=false if the key maps to the empty/absent slot the
// opening terminates at). Leaf is the leaf node's own digest: for trees
// populated via Tree.Insert this equals hasher.Hash(Value), but for trees
// populated via Tree.InsertWithLeaf (an externally supplied digest) it does
// not, so callers that need the exact node value — not a recomputation —
// must read it from here.
type KeyedOpening struct {
	Opening Opening
	Key     hash.Hash
	Value   []byte
	Leaf    hash.Hash
	Present bool
}

// PreimageKind discriminates the occupant of a non-inclusion opening's
// terminal node.
type PreimageKind int

const (
	// PreimageZero means the claimed key's prefix terminates at the
	// empty node: nothing occupies it.
	PreimageZero PreimageKind = iota
	// PreimageData means the terminal node is a leaf whose stored data
	// differs from the claimed value.
	PreimageData
	// PreimageNode means the terminal node is an interior node (the
	// claimed key's prefix is shorter than any stored leaf under it).
	PreimageNode
)

// Preimage describes what currently occupies the node a non-inclusion
// opening proves against. Leaf is the leaf's own digest as encountered
// during traversal (valid when Kind == PreimageData); verifiers fold it
// directly rather than recomputing hasher.Hash(Data), since Data may have
// been inserted via Tree.InsertWithLeaf with an externally supplied digest.
type Preimage struct {
	Kind PreimageKind
	Data []byte
	Leaf hash.Hash
	Node hash.Hash
}

// NonInclusionOpening is an Opening to whatever node currently occupies
// the deepest matched prefix of a key, together with enough information
// (Preimage) for a verifier to confirm that occupant is not the claimed
// (key, value) pair.
type NonInclusionOpening struct {
	Opening  Opening
	Preimage Preimage
}

// CompoundEntry is one (namespace-key, opening) link in a CompoundOpening.
type CompoundEntry struct {
	Key     hash.Hash
	Opening Opening
}

// CompoundOpening is an ordered list of (key, opening) pairs proving a
// value through nested tree roots: entries[i].Opening proves a node whose
// computed root becomes the value consumed by entries[i+1].
type CompoundOpening struct {
	Trees []CompoundEntry
}
