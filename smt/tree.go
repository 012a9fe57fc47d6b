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

	"github.com/golang/glog"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
)

// Internal backend prefixes within a namespace.
const (
	prefixNode = "smt-node"
	prefixData = "smt-data"
	prefixKey  = "smt-key"
)

// children is the two child digests of an interior node.
type children struct {
	Left, Right hash.Hash
}

// Tree is a namespaced sparse Merkle tree. Multiple Trees can share one
// storage.Backend by using distinct namespaces; the namespace becomes part
// of every composed backend key.
type Tree struct {
	namespace []byte
	hasher    hash.Hasher
	backend   storage.Backend
}

// New returns a Tree addressing the given namespace within backend.
func New(namespace []byte, h hash.Hasher, backend storage.Backend) *Tree {
	ns := make([]byte, len(namespace))
	copy(ns, namespace)
	return &Tree{namespace: ns, hasher: h, backend: backend}
}

func (t *Tree) prefix(tag string) []byte {
	out := make([]byte, 0, len(tag)+len(t.namespace))
	out = append(out, []byte(tag)...)
	out = append(out, t.namespace...)
	return out
}

func (t *Tree) nodePrefix() []byte { return t.prefix(prefixNode) }
func (t *Tree) dataPrefix() []byte { return t.prefix(prefixData) }
func (t *Tree) keyPrefix() []byte  { return t.prefix(prefixKey) }

func (t *Tree) getChildren(node hash.Hash) (children, bool, error) {
	raw, ok, err := t.backend.Get(t.nodePrefix(), node[:])
	if err != nil {
		return children{}, false, fmt.Errorf("smt: get children of %s: %w", node, err)
	}
	if !ok {
		return children{}, false, nil
	}
	if len(raw) != 2*hash.Size {
		return children{}, false, fmt.Errorf("%w: smt: corrupt children record for %s", coprocerr.ErrInvariant, node)
	}
	return children{
		Left:  hash.BytesToHash(raw[:hash.Size]),
		Right: hash.BytesToHash(raw[hash.Size:]),
	}, true, nil
}

func (t *Tree) setChildren(node hash.Hash, c children) error {
	raw := make([]byte, 0, 2*hash.Size)
	raw = append(raw, c.Left[:]...)
	raw = append(raw, c.Right[:]...)
	if _, _, err := t.backend.Set(t.nodePrefix(), node[:], raw); err != nil {
		return fmt.Errorf("smt: set children of %s: %w", node, err)
	}
	return nil
}

// leafKeyOf returns the key associated with a leaf node hash, if node is a
// leaf. Every leaf node has an associated key stored in the key prefix.
func (t *Tree) leafKeyOf(node hash.Hash) (hash.Hash, bool, error) {
	raw, ok, err := t.backend.Get(t.keyPrefix(), node[:])
	if err != nil {
		return hash.Hash{}, false, fmt.Errorf("smt: get leaf key for %s: %w", node, err)
	}
	if !ok {
		return hash.Hash{}, false, nil
	}
	return hash.BytesToHash(raw), true, nil
}

func (t *Tree) setLeafKey(node, key hash.Hash) error {
	if _, _, err := t.backend.Set(t.keyPrefix(), node[:], key[:]); err != nil {
		return fmt.Errorf("smt: set leaf key for %s: %w", node, err)
	}
	return nil
}

func (t *Tree) payloadOf(key hash.Hash) ([]byte, bool, error) {
	raw, ok, err := t.backend.Get(t.dataPrefix(), key[:])
	if err != nil {
		return nil, false, fmt.Errorf("smt: get payload for key %s: %w", key, err)
	}
	return raw, ok, nil
}

func (t *Tree) setPayload(key hash.Hash, data []byte) error {
	if _, _, err := t.backend.Set(t.dataPrefix(), key[:], data); err != nil {
		return fmt.Errorf("smt: set payload for key %s: %w", key, err)
	}
	return nil
}

// isLeaf reports whether node has a leaf-key association: a node is either
// interior or leaf, never both.
func (t *Tree) isLeaf(node hash.Hash) (hash.Hash, bool, error) {
	if node.IsZero() {
		return hash.Hash{}, false, nil
	}
	return t.leafKeyOf(node)
}

// Insert stores (key, data) into root and returns the new root, using
// hasher.Hash(data) as the leaf's digest. Re-inserting the same (key, data)
// pair is idempotent.
func (t *Tree) Insert(root hash.Hash, key hash.Hash, data []byte) (hash.Hash, error) {
	return t.insertLeaf(root, key, t.hasher.Hash(data), data)
}

// insertLeaf is the shared implementation behind Insert and
// InsertWithLeaf: it stores (key -> payload) and (leafHash -> key), then
// threads leafHash through the tree at key's position.
func (t *Tree) insertLeaf(root, key, leafHash hash.Hash, payload []byte) (hash.Hash, error) {
	if err := t.setPayload(key, payload); err != nil {
		return hash.Hash{}, err
	}
	if err := t.setLeafKey(leafHash, key); err != nil {
		return hash.Hash{}, err
	}

	if root.IsZero() {
		glog.V(4).Infof("smt: insert into empty root, key=%s -> leaf=%s", key, leafHash)
		return leafHash, nil
	}

	if existingKey, ok, err := t.isLeaf(root); err != nil {
		return hash.Hash{}, err
	} else if ok {
		if existingKey == key {
			// Value replacement at the root itself.
			return leafHash, nil
		}
		return t.insertSiblingOf(root, existingKey, key, leafHash, 0)
	}

	return t.insertDescend(root, key, leafHash, 0)
}

// insertSiblingOf builds the divergence node between an existing leaf
// (existingRoot, existingKey) and a new leaf (newKey, newLeafHash),
// starting at depth d, and unwinds zero-padded parents back to the root.
func (t *Tree) insertSiblingOf(existingRoot, existingKey, newKey, newLeafHash hash.Hash, d int) (hash.Hash, error) {
	diverge := divergeDepthFrom(existingKey, newKey, d)

	var current hash.Hash
	if bitAt(newKey, diverge) == 0 {
		current = t.hasher.Merge(newLeafHash, existingRoot)
		if err := t.setChildren(current, children{Left: newLeafHash, Right: existingRoot}); err != nil {
			return hash.Hash{}, err
		}
	} else {
		current = t.hasher.Merge(existingRoot, newLeafHash)
		if err := t.setChildren(current, children{Left: existingRoot, Right: newLeafHash}); err != nil {
			return hash.Hash{}, err
		}
	}

	for depth := diverge - 1; depth >= d; depth-- {
		var c children
		if bitAt(newKey, depth) == 0 {
			c = children{Left: current, Right: hash.Hash{}}
		} else {
			c = children{Left: hash.Hash{}, Right: current}
		}
		parent := t.hasher.Merge(c.Left, c.Right)
		if err := t.setChildren(parent, c); err != nil {
			return hash.Hash{}, err
		}
		current = parent
	}

	return current, nil
}

// divergeDepthFrom returns the shallowest depth >= start at which a and b
// differ.
func divergeDepthFrom(a, b hash.Hash, start int) int {
	for d := start; d < maxDepth; d++ {
		if bitAt(a, d) != bitAt(b, d) {
			return d
		}
	}
	return maxDepth - 1
}

// insertDescend walks from an interior root toward key's position,
// rebuilding the path on the way back up.
func (t *Tree) insertDescend(root, key, newLeafHash hash.Hash, depth int) (hash.Hash, error) {
	c, ok, err := t.getChildren(root)
	if err != nil {
		return hash.Hash{}, err
	}
	if !ok {
		return hash.Hash{}, fmt.Errorf("%w: smt: node %s has neither children nor leaf-key association", coprocerr.ErrInvariant, root)
	}

	bit := bitAt(key, depth)
	var child hash.Hash
	if bit == 0 {
		child = c.Left
	} else {
		child = c.Right
	}

	var newChild hash.Hash
	switch {
	case child.IsZero():
		newChild = newLeafHash
	default:
		if existingKey, isLeaf, err := t.isLeaf(child); err != nil {
			return hash.Hash{}, err
		} else if isLeaf {
			if existingKey == key {
				newChild = newLeafHash
			} else {
				newChild, err = t.insertSiblingOf(child, existingKey, key, newLeafHash, depth+1)
				if err != nil {
					return hash.Hash{}, err
				}
			}
		} else {
			newChild, err = t.insertDescend(child, key, newLeafHash, depth+1)
			if err != nil {
				return hash.Hash{}, err
			}
		}
	}

	var newChildren children
	if bit == 0 {
		newChildren = children{Left: newChild, Right: c.Right}
	} else {
		newChildren = children{Left: c.Left, Right: newChild}
	}
	parent := t.hasher.Merge(newChildren.Left, newChildren.Right)
	if err := t.setChildren(parent, newChildren); err != nil {
		return hash.Hash{}, err
	}
	return parent, nil
}

// InsertWithLeaf stores (key, payload) into root using an externally
// supplied leaf digest rather than hasher.Hash(payload). This is how the
// historical coordinator threads an already-hashed external domain root
// into the inner tree: the leaf's digest is the domain's own state root,
// and payload is the opaque packed block stored alongside it.
func (t *Tree) InsertWithLeaf(root, key, leafHash hash.Hash, payload []byte) (hash.Hash, error) {
	return t.insertLeaf(root, key, leafHash, payload)
}
