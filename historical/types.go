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

// Package historical implements the two-level historical commitment
// coordinator: an outer sparse Merkle tree keyed by domain id, one inner
// tree per domain keyed by block number, and a history tree chaining
// successive outer roots so transitions are themselves provable.
package historical

import (
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/smt"
)

// ValidatedDomainBlock is a block accepted into the historical structure.
// This is the canonical shape: no "key" field (an older, transitional
// layout carried one; it is not reintroduced here).
type ValidatedDomainBlock struct {
	Domain  hash.Hash
	Number  uint64
	Root    hash.Hash
	Payload []byte
}

// HistoricalUpdate is one link of the history chain: the leaf at position
// `root` stores `previous` as its node value and the packed block as its
// payload.
type HistoricalUpdate struct {
	Root     hash.Hash
	Previous hash.Hash
	Block    ValidatedDomainBlock
}

// TransitionProof pairs a non-membership proof of (domain, number) at the
// previous root with the positive compound opening at the new root,
// proving the block was newly added rather than replaced.
type TransitionProof struct {
	PreviousNonMembership smt.NonInclusionOpening
	Update                HistoricalUpdate
	PositiveOpening       smt.CompoundOpening
}

// BlockProof is the compound opening proving a (domain, number) block's
// external state root under an outer root: the coordinator's current one
// for GetBlockProof, or the root passed to GetBlockProofAt.
type BlockProof struct {
	Opening smt.CompoundOpening
	Block   ValidatedDomainBlock
}
