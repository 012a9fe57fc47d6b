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

import "github.com/valence-net/zk-coprocessor/hash"

// Prune deletes every node, leaf-key, and payload record reachable from
// root, within this Tree's namespace. It does not touch any other root
// that may still reference shared subtrees — callers that keep multiple
// historical roots alive over the same namespace must not prune a root
// still referenced elsewhere.
//
// Traversal is an explicit work-list rather than recursion, since a
// collapsed sparse tree can still be up to 256 levels deep on pathological
// key sets.
func (t *Tree) Prune(root hash.Hash) error {
	if root.IsZero() {
		return nil
	}

	work := []hash.Hash{root}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		if n.IsZero() {
			continue
		}

		if key, ok, err := t.isLeaf(n); err != nil {
			return err
		} else if ok {
			if err := t.backend.Remove(t.dataPrefix(), key[:]); err != nil {
				return err
			}
			if err := t.backend.Remove(t.keyPrefix(), n[:]); err != nil {
				return err
			}
			continue
		}

		c, ok, err := t.getChildren(n)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := t.backend.Remove(t.nodePrefix(), n[:]); err != nil {
			return err
		}
		work = append(work, c.Left, c.Right)
	}
	return nil
}
