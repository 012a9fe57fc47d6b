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

package smt

import (
	"fmt"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

// Open returns the inclusion (or non-inclusion, if key is absent) opening
// for key against root. Opening.Path[d] is the sibling digest at trie
// depth d; the path is only as long as the current depth at which key's
// occupant (leaf or empty slot) was found.
func (t *Tree) Open(root, key hash.Hash) (KeyedOpening, error) {
	var path []hash.Hash
	current := root
	depth := 0

	for {
		if depth > maxDepth {
			return KeyedOpening{}, fmt.Errorf("%w: smt: opening exceeded max depth %d", coprocerr.ErrProofInvalid, maxDepth)
		}

		if current.IsZero() {
			return KeyedOpening{Opening: Opening{Path: path}, Key: key, Present: false}, nil
		}

		if leafKey, ok, err := t.isLeaf(current); err != nil {
			return KeyedOpening{}, err
		} else if ok {
			if leafKey != key {
				return KeyedOpening{Opening: Opening{Path: path}, Key: key, Present: false}, nil
			}
			data, _, err := t.payloadOf(key)
			if err != nil {
				return KeyedOpening{}, err
			}
			return KeyedOpening{Opening: Opening{Path: path}, Key: key, Value: data, Leaf: current, Present: true}, nil
		}

		c, ok, err := t.getChildren(current)
		if err != nil {
			return KeyedOpening{}, err
		}
		if !ok {
			return KeyedOpening{}, fmt.Errorf("%w: smt: node %s has neither children nor leaf-key association", coprocerr.ErrInvariant, current)
		}

		var sibling hash.Hash
		if bitAt(key, depth) == 0 {
			sibling, current = c.Right, c.Left
		} else {
			sibling, current = c.Left, c.Right
		}
		path = append(path, sibling)
		depth++
	}
}

// Root recomputes the root implied by folding value up through o against
// key, without touching storage. value is the digest that occupies the
// bottom of this opening: a leaf hash when proving raw inclusion, or a
// nested tree's root when folding a CompoundOpening.
func (o Opening) Root(hasher hash.Hasher, key hash.Hash, value hash.Hash) (hash.Hash, error) {
	if len(o.Path) > maxDepth {
		return hash.Hash{}, fmt.Errorf("%w: smt: opening path length %d exceeds max depth %d", coprocerr.ErrProofInvalid, len(o.Path), maxDepth)
	}
	node := value
	for depth := len(o.Path) - 1; depth >= 0; depth-- {
		sibling := o.Path[depth]
		if bitAt(key, depth) == 0 {
			node = hasher.Merge(node, sibling)
		} else {
			node = hasher.Merge(sibling, node)
		}
	}
	return node, nil
}

// Verify checks that data opens to root at key via o, using the hasher's
// leaf tag (the raw-inclusion case: o.Root is folded starting from
// hasher.Hash(data), not from data itself).
func Verify(hasher hash.Hasher, root, key hash.Hash, data []byte, o Opening) (bool, error) {
	leaf := hasher.Hash(data)
	computed, err := o.Root(hasher, key, leaf)
	if err != nil {
		return false, err
	}
	return computed == root, nil
}
