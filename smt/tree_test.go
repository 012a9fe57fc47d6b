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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
)

func newTestTree() (*Tree, hash.Hasher) {
	h := hash.SHA256Hasher{}
	return New([]byte("test-ns"), h, storage.NewMemory()), h
}

func TestInsertOpenVerifyRoundTrip(t *testing.T) {
	tree, h := newTestTree()

	entries := map[string]string{
		"alice": "100",
		"bob":   "200",
		"carol": "300",
		"dave":  "400",
	}

	root := hash.Hash{}
	var err error
	for k, v := range entries {
		root, err = tree.Insert(root, h.Key("test", []byte(k)), []byte(v))
		require.NoError(t, err)
	}

	for k, v := range entries {
		key := h.Key("test", []byte(k))
		opened, err := tree.Open(root, key)
		require.NoError(t, err)
		require.True(t, opened.Present)
		require.Equal(t, []byte(v), opened.Value)

		ok, err := Verify(h, root, key, []byte(v), opened.Opening)
		require.NoError(t, err)
		require.True(t, ok, "inclusion proof for %s must verify", k)
	}
}

func TestInsertIsOrderIndependent(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	tree1, h := newTestTree()
	tree2, _ := newTestTree()

	root1 := hash.Hash{}
	for _, k := range keys {
		var err error
		root1, err = tree1.Insert(root1, h.Key("test", []byte(k)), []byte(k+"-value"))
		require.NoError(t, err)
	}

	root2 := hash.Hash{}
	reversed := []string{"e", "d", "c", "b", "a"}
	for _, k := range reversed {
		var err error
		root2, err = tree2.Insert(root2, h.Key("test", []byte(k)), []byte(k+"-value"))
		require.NoError(t, err)
	}

	require.Equal(t, root1, root2, "final root must not depend on insertion order")
}

func TestReinsertSameValueIsIdempotent(t *testing.T) {
	tree, h := newTestTree()
	key := h.Key("test", []byte("x"))

	root, err := tree.Insert(hash.Hash{}, key, []byte("payload"))
	require.NoError(t, err)

	root2, err := tree.Insert(root, key, []byte("payload"))
	require.NoError(t, err)

	require.Equal(t, root, root2)
}

func TestValueReplacementChangesRoot(t *testing.T) {
	tree, h := newTestTree()
	key := h.Key("test", []byte("x"))

	root, err := tree.Insert(hash.Hash{}, key, []byte("v1"))
	require.NoError(t, err)

	root2, err := tree.Insert(root, key, []byte("v2"))
	require.NoError(t, err)

	require.NotEqual(t, root, root2)

	opened, err := tree.Open(root2, key)
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), opened.Value)
}

func TestOpenAbsentKeyReportsNotPresent(t *testing.T) {
	tree, h := newTestTree()
	root, err := tree.Insert(hash.Hash{}, h.Key("test", []byte("present")), []byte("v"))
	require.NoError(t, err)

	opened, err := tree.Open(root, h.Key("test", []byte("absent")))
	require.NoError(t, err)
	require.False(t, opened.Present)
}

func TestNonInclusionAgainstEmptyTree(t *testing.T) {
	tree, h := newTestTree()
	n, err := tree.OpenNonInclusion(hash.Hash{}, h.Key("test", []byte("anything")))
	require.NoError(t, err)
	require.Equal(t, PreimageZero, n.Preimage.Kind)

	ok, err := VerifyNonInclusion(h, hash.Hash{}, h.Key("test", []byte("anything")), []byte("claimed"), n)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNonInclusionAfterInsertOfDifferentKey(t *testing.T) {
	tree, h := newTestTree()
	root, err := tree.Insert(hash.Hash{}, h.Key("test", []byte("alice")), []byte("100"))
	require.NoError(t, err)

	absentKey := h.Key("test", []byte("zzz-not-there"))
	n, err := tree.OpenNonInclusion(root, absentKey)
	require.NoError(t, err)

	ok, err := VerifyNonInclusion(h, root, absentKey, []byte("whatever"), n)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsTamperedValue(t *testing.T) {
	tree, h := newTestTree()
	key := h.Key("test", []byte("alice"))
	root, err := tree.Insert(hash.Hash{}, key, []byte("100"))
	require.NoError(t, err)

	opened, err := tree.Open(root, key)
	require.NoError(t, err)

	ok, err := Verify(h, root, key, []byte("999"), opened.Opening)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRootRejectsOverlongPath(t *testing.T) {
	path := make([]hash.Hash, maxDepth+1)
	o := Opening{Path: path}
	_, err := o.Root(hash.SHA256Hasher{}, hash.Hash{}, hash.Hash{})
	require.Error(t, err)
	require.True(t, errors.Is(err, coprocerr.ErrProofInvalid))
}

func TestPruneRemovesAllRecords(t *testing.T) {
	tree, h := newTestTree()
	root := hash.Hash{}
	var err error
	for _, k := range []string{"a", "b", "c"} {
		root, err = tree.Insert(root, h.Key("test", []byte(k)), []byte(k))
		require.NoError(t, err)
	}

	require.NoError(t, tree.Prune(root))

	// After pruning, the payload for any of the pruned keys is gone even
	// though the root hash itself is still a valid computed value.
	_, ok, err := tree.payloadOf(h.Key("test", []byte("a")))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompoundOpeningFoldsThroughNestedRoots(t *testing.T) {
	inner, h := newTestTree()
	outer := New([]byte("outer-ns"), h, storage.NewMemory())

	innerKey := h.Key("test", []byte("block-7"))
	innerRoot, err := inner.Insert(hash.Hash{}, innerKey, []byte("tx-data"))
	require.NoError(t, err)

	outerKey := h.Key("test", []byte("domain-1"))
	outerRoot, err := outer.InsertWithLeaf(hash.Hash{}, outerKey, innerRoot, innerRoot.Bytes())
	require.NoError(t, err)

	innerOpened, err := inner.Open(innerRoot, innerKey)
	require.NoError(t, err)
	outerOpened, err := outer.Open(outerRoot, outerKey)
	require.NoError(t, err)

	compound := CompoundOpening{Trees: []CompoundEntry{
		{Key: innerKey, Opening: innerOpened.Opening},
		{Key: outerKey, Opening: outerOpened.Opening},
	}}

	leafValue := h.Hash([]byte("tx-data"))
	ok, err := VerifyCompound(h, outerRoot, leafValue, compound)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCompoundOpeningRejectsWrongOuterRoot(t *testing.T) {
	inner, h := newTestTree()
	outer := New([]byte("outer-ns-2"), h, storage.NewMemory())

	innerKey := h.Key("test", []byte("block-1"))
	innerRoot, err := inner.Insert(hash.Hash{}, innerKey, []byte("tx-data"))
	require.NoError(t, err)

	outerKey := h.Key("test", []byte("domain-9"))
	_, err = outer.Insert(hash.Hash{}, outerKey, innerRoot.Bytes())
	require.NoError(t, err)

	innerOpened, err := inner.Open(innerRoot, innerKey)
	require.NoError(t, err)

	compound := CompoundOpening{Trees: []CompoundEntry{
		{Key: innerKey, Opening: innerOpened.Opening},
	}}

	leafValue := h.Hash([]byte("tx-data"))
	wrongRoot := h.Hash([]byte("not-the-root"))
	ok, err := VerifyCompound(h, wrongRoot, leafValue, compound)
	require.NoError(t, err)
	require.False(t, ok)
}
