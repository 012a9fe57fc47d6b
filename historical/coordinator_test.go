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

package historical

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valence-net/zk-coprocessor/codec"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/smt"
	"github.com/valence-net/zk-coprocessor/storage"
)

func newTestCoordinator(t *testing.T) (*Coordinator, hash.Hasher) {
	t.Helper()
	h := hash.SHA256Hasher{}
	backend := storage.NewMemory()
	c, err := New(h, backend)
	require.NoError(t, err)
	return c, h
}

func domainID(h hash.Hasher, name string) hash.Hash {
	return h.Digest([]byte("domain"), []byte(name))
}

func TestAddAndProveBlock(t *testing.T) {
	c, h := newTestCoordinator(t)
	domain := domainID(h, "ethereum")

	err := c.AddValidatedBlock(ValidatedDomainBlock{
		Domain:  domain,
		Number:  238792,
		Root:    h.Hash([]byte("state-root-1")),
		Payload: []byte("payload-1"),
	})
	require.NoError(t, err)

	proof, err := c.GetBlockProof(domain, 238792)
	require.NoError(t, err)
	require.Equal(t, uint64(238792), proof.Block.Number)

	outerRoot := c.readCurrentRoot()
	ok, err := smt.VerifyCompound(h, outerRoot, proof.Block.Root, proof.Opening)
	require.NoError(t, err)
	require.True(t, ok, "block proof must verify against the current coprocessor root")
}

func TestOutOfOrderBlocksLatestNeverRegresses(t *testing.T) {
	c, h := newTestCoordinator(t)
	domain := domainID(h, "ethereum")

	numbers := []uint64{238792, 238797, 238798, 238550}
	maxSeen := uint64(0)

	for _, n := range numbers {
		err := c.AddValidatedBlock(ValidatedDomainBlock{
			Domain:  domain,
			Number:  n,
			Root:    h.Hash([]byte("state-root")),
			Payload: []byte("payload"),
		})
		require.NoError(t, err)

		if n > maxSeen {
			maxSeen = n
		}
		latest, ok, err := c.GetLatestBlock(domain)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, maxSeen, latest.Number)
	}

	latest, ok, err := c.GetLatestBlock(domain)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(238798), latest.Number)
}

func TestBlockProofRemainsValidAfterLaterDomainUpdates(t *testing.T) {
	c, h := newTestCoordinator(t)
	domain := domainID(h, "ethereum")

	require.NoError(t, c.AddValidatedBlock(ValidatedDomainBlock{
		Domain: domain, Number: 1, Root: h.Hash([]byte("root-1")), Payload: []byte("p1"),
	}))
	require.NoError(t, c.AddValidatedBlock(ValidatedDomainBlock{
		Domain: domain, Number: 2, Root: h.Hash([]byte("root-2")), Payload: []byte("p2"),
	}))

	proof, err := c.GetBlockProof(domain, 1)
	require.NoError(t, err)

	outerRoot := c.readCurrentRoot()
	ok, err := smt.VerifyCompound(h, outerRoot, proof.Block.Root, proof.Opening)
	require.NoError(t, err)
	require.True(t, ok, "proof for an earlier block must verify against the latest root since the outer path is updated")
}

func TestHistoryChainLinksBack(t *testing.T) {
	c, h := newTestCoordinator(t)
	domain := domainID(h, "ethereum")

	var roots []hash.Hash
	for i := uint64(1); i <= 4; i++ {
		require.NoError(t, c.AddValidatedBlock(ValidatedDomainBlock{
			Domain: domain, Number: i, Root: h.Hash([]byte("root")), Payload: []byte("p"),
		}))
		roots = append(roots, c.readCurrentRoot())
	}

	for i := 1; i < len(roots); i++ {
		update, err := c.GetHistoricalUpdate(roots[i])
		require.NoError(t, err)
		require.Equal(t, roots[i-1], update.Previous)
	}
}

func TestTransitionProofProvesFreshAppend(t *testing.T) {
	c, h := newTestCoordinator(t)
	domain := domainID(h, "ethereum")

	require.NoError(t, c.AddValidatedBlock(ValidatedDomainBlock{
		Domain: domain, Number: 1, Root: h.Hash([]byte("root-1")), Payload: []byte("p1"),
	}))
	require.NoError(t, c.AddValidatedBlock(ValidatedDomainBlock{
		Domain: domain, Number: 2, Root: h.Hash([]byte("root-2")), Payload: []byte("p2"),
	}))

	latestRoot := c.readCurrentRoot()
	transition, err := c.GetHistoricalTransitionProof(latestRoot)
	require.NoError(t, err)
	require.Equal(t, uint64(2), transition.Update.Block.Number)

	previousInnerRoot, err := c.innerRootAt(transition.Update.Previous, domain)
	require.NoError(t, err)

	innerKey := codec.BlockNumberKey(2)
	ok, err := smt.VerifyNonInclusion(h, previousInnerRoot, innerKey, []byte("claimed-absent"), transition.PreviousNonMembership)
	require.NoError(t, err)
	require.True(t, ok, "block 2 must not yet be present at the previous outer root's linked inner root")

	ok, err = smt.VerifyCompound(h, latestRoot, transition.Update.Block.Root, transition.PositiveOpening)
	require.NoError(t, err)
	require.True(t, ok, "the positive compound opening must verify against the new root")
}
