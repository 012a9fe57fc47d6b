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
	"bytes"
	"fmt"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

// OpenNonInclusion returns an opening to whatever node currently occupies
// the deepest matched prefix of key, along with a Preimage describing that
// occupant.
func (t *Tree) OpenNonInclusion(root, key hash.Hash) (NonInclusionOpening, error) {
	var path []hash.Hash
	current := root
	depth := 0

	for {
		if depth > maxDepth {
			return NonInclusionOpening{}, fmt.Errorf("%w: smt: non-inclusion opening exceeded max depth %d", coprocerr.ErrProofInvalid, maxDepth)
		}

		if current.IsZero() {
			return NonInclusionOpening{
				Opening:  Opening{Path: path},
				Preimage: Preimage{Kind: PreimageZero},
			}, nil
		}

		if leafKey, ok, err := t.isLeaf(current); err != nil {
			return NonInclusionOpening{}, err
		} else if ok {
			data, _, err := t.payloadOf(leafKey)
			if err != nil {
				return NonInclusionOpening{}, err
			}
			return NonInclusionOpening{
				Opening:  Opening{Path: path},
				Preimage: Preimage{Kind: PreimageData, Data: data, Leaf: current},
			}, nil
		}

		c, ok, err := t.getChildren(current)
		if err != nil {
			return NonInclusionOpening{}, err
		}
		if !ok {
			return NonInclusionOpening{}, fmt.Errorf("%w: smt: node %s has neither children nor leaf-key association", coprocerr.ErrInvariant, current)
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

// VerifyNonInclusion checks that the occupant described by n.Preimage
// differs from (key, claimedValue) and that n.Opening folds to root.
func VerifyNonInclusion(hasher hash.Hasher, root, key hash.Hash, claimedValue []byte, n NonInclusionOpening) (bool, error) {
	var occupant hash.Hash
	switch n.Preimage.Kind {
	case PreimageZero:
		occupant = hash.Hash{}
		if len(claimedValue) == 0 {
			// A zero occupant proves non-inclusion for any non-empty
			// claimed value; an empty claimed value cannot be
			// distinguished from the empty node and is rejected.
			return false, fmt.Errorf("%w: smt: cannot prove non-inclusion of an empty claimed value against the empty node", coprocerr.ErrProofInvalid)
		}
	case PreimageData:
		occupant = n.Preimage.Leaf
		if bytes.Equal(n.Preimage.Data, claimedValue) {
			return false, nil
		}
	case PreimageNode:
		occupant = n.Preimage.Node
	default:
		return false, fmt.Errorf("%w: smt: unknown preimage kind %d", coprocerr.ErrProofInvalid, n.Preimage.Kind)
	}

	computed, err := n.Opening.Root(hasher, key, occupant)
	if err != nil {
		return false, err
	}
	return computed == root, nil
}
