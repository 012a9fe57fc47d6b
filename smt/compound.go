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

// VerifyCompound checks a CompoundOpening against an outer root. c.Trees is
// ordered innermost-first: Trees[0]'s opening folds (via its own key) to a
// root that becomes the leaf value consumed by Trees[1], and so on, until
// the last entry's computed root is compared against outerRoot.
//
// leafValue is the digest occupying the very first (innermost) tree's
// leaf slot — typically hasher.Hash(payload) for a raw value, or the zero
// hash / a Preimage-derived occupant for a non-inclusion leg.
func VerifyCompound(hasher hash.Hasher, outerRoot hash.Hash, leafValue hash.Hash, c CompoundOpening) (bool, error) {
	if len(c.Trees) == 0 {
		return false, fmt.Errorf("%w: smt: compound opening has no entries", coprocerr.ErrProofInvalid)
	}

	node := leafValue
	for i, entry := range c.Trees {
		root, err := entry.Opening.Root(hasher, entry.Key, node)
		if err != nil {
			return false, fmt.Errorf("smt: compound opening entry %d: %w", i, err)
		}
		node = root
	}
	return node == outerRoot, nil
}

// BuildCompound assembles a CompoundOpening by opening key_i against
// root_i for each (tree, root, key) triple, innermost first. Each tree's
// opened root must equal the leaf value consumed by the next entry; callers
// are expected to supply trees/roots/keys already staged that way (e.g. an
// inner per-block SMT followed by an outer per-domain SMT).
func BuildCompound(trees []*Tree, roots []hash.Hash, keys []hash.Hash) (CompoundOpening, error) {
	if len(trees) == 0 || len(trees) != len(roots) || len(trees) != len(keys) {
		return CompoundOpening{}, fmt.Errorf("%w: smt: BuildCompound requires matching non-empty trees/roots/keys", coprocerr.ErrProofInvalid)
	}

	entries := make([]CompoundEntry, 0, len(trees))
	for i, t := range trees {
		opened, err := t.Open(roots[i], keys[i])
		if err != nil {
			return CompoundOpening{}, fmt.Errorf("smt: BuildCompound entry %d: %w", i, err)
		}
		entries = append(entries, CompoundEntry{Key: keys[i], Opening: opened.Opening})
	}
	return CompoundOpening{Trees: entries}, nil
}
