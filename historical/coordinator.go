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
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/valence-net/zk-coprocessor/codec"
	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/smt"
	"github.com/valence-net/zk-coprocessor/storage"
)

var (
	outerNamespace   = []byte("historical-root")
	historyNamespace = []byte("historical-history")
	metaPrefix       = []byte("historical-meta")
	latestPrefix     = []byte("historical-latest")
)

const (
	metaKeyCurrent = "current"
	metaKeyHistory = "history"
)

// Coordinator is the two-level historical commitment coordinator: one
// outer SMT keyed by domain id, one inner SMT per domain keyed by block
// number, and a history SMT chaining successive outer roots.
type Coordinator struct {
	hasher  hash.Hasher
	backend storage.Backend

	// next is the write-intent root: authoritative, exclusively locked for
	// the duration of an append.
	nextMu sync.Mutex
	next   hash.Hash

	// current is a reader-visible cache of the latest committed outer
	// root. Writers update it with TryLock and log-and-continue on
	// contention rather than blocking; readers never block writers.
	currentMu sync.RWMutex
	current   hash.Hash

	// history is a reader-visible cache of the history tree's root,
	// following the same lag-tolerant discipline as current.
	historyMu sync.RWMutex
	history   hash.Hash
}

// New constructs a Coordinator, loading any previously persisted current
// and history roots from backend.
func New(hasher hash.Hasher, backend storage.Backend) (*Coordinator, error) {
	c := &Coordinator{hasher: hasher, backend: backend}

	if r, ok, err := loadRoot(backend, metaKeyCurrent); err != nil {
		return nil, err
	} else if ok {
		c.next = r
		c.current = r
	}

	if r, ok, err := loadRoot(backend, metaKeyHistory); err != nil {
		return nil, err
	} else if ok {
		c.history = r
	}

	return c, nil
}

func loadRoot(backend storage.Backend, key string) (hash.Hash, bool, error) {
	raw, ok, err := backend.Get(metaPrefix, []byte(key))
	if err != nil {
		return hash.Hash{}, false, fmt.Errorf("%w: historical: load %s: %v", coprocerr.ErrBackend, key, err)
	}
	if !ok {
		return hash.Hash{}, false, nil
	}
	return hash.BytesToHash(raw), true, nil
}

func persistRoot(backend storage.Backend, key string, value hash.Hash) error {
	if _, _, err := backend.Set(metaPrefix, []byte(key), value[:]); err != nil {
		return fmt.Errorf("%w: historical: persist %s: %v", coprocerr.ErrBackend, key, err)
	}
	return nil
}

func (c *Coordinator) outerTree() *smt.Tree {
	return smt.New(outerNamespace, c.hasher, c.backend)
}

func (c *Coordinator) innerTree(domain hash.Hash) *smt.Tree {
	ns := make([]byte, 0, len(outerNamespace)+hash.Size)
	ns = append(ns, outerNamespace...)
	ns = append(ns, domain[:]...)
	return smt.New(ns, c.hasher, c.backend)
}

func (c *Coordinator) historyTree() *smt.Tree {
	return smt.New(historyNamespace, c.hasher, c.backend)
}

// innerRootAt returns the inner root currently linked under domain in the
// outer tree rooted at outerRoot, or the zero hash if domain has no entry
// yet.
func (c *Coordinator) innerRootAt(outerRoot, domain hash.Hash) (hash.Hash, error) {
	opened, err := c.outerTree().Open(outerRoot, domain)
	if err != nil {
		return hash.Hash{}, fmt.Errorf("historical: read outer opening for domain %s: %w", domain, err)
	}
	if !opened.Present {
		return hash.Hash{}, nil
	}
	return opened.Leaf, nil
}

// AddValidatedBlock runs the 7-step block append protocol.
func (c *Coordinator) AddValidatedBlock(block ValidatedDomainBlock) error {
	c.nextMu.Lock()
	defer c.nextMu.Unlock()

	outerRoot := c.next

	existingInnerRoot, err := c.innerRootAt(outerRoot, block.Domain)
	if err != nil {
		return err
	}

	packed, err := codec.PackBlock(codec.PackedBlock{
		Domain:  block.Domain,
		Number:  block.Number,
		Root:    block.Root,
		Payload: block.Payload,
	})
	if err != nil {
		return err
	}

	innerKey := codec.BlockNumberKey(block.Number)
	newInnerRoot, err := c.innerTree(block.Domain).InsertWithLeaf(existingInnerRoot, innerKey, block.Root, packed)
	if err != nil {
		// Step 3 (the cryptographic insert) is the only hard-fatal point:
		// it aborts the whole append.
		return fmt.Errorf("historical: inner insert for domain %s block %d: %w", block.Domain, block.Number, err)
	}

	newOuterRoot, err := c.outerTree().InsertWithLeaf(outerRoot, block.Domain, newInnerRoot, newInnerRoot.Bytes())
	if err != nil {
		glog.Warningf("historical: outer compose failed for domain %s, leaving next at stale root: %v", block.Domain, err)
		return nil
	}

	historyRoot := c.readHistoryRoot()
	newHistoryRoot, err := c.historyTree().InsertWithLeaf(historyRoot, newOuterRoot, outerRoot, packed)
	if err != nil {
		glog.Warningf("historical: history link failed at new root %s: %v", newOuterRoot, err)
		newHistoryRoot = historyRoot
	}

	c.next = newOuterRoot

	if err := persistRoot(c.backend, metaKeyCurrent, newOuterRoot); err != nil {
		glog.Warningf("historical: persist current failed: %v", err)
	}
	if err := persistRoot(c.backend, metaKeyHistory, newHistoryRoot); err != nil {
		glog.Warningf("historical: persist history failed: %v", err)
	}

	if c.currentMu.TryLock() {
		c.current = newOuterRoot
		c.currentMu.Unlock()
	} else {
		glog.Warningf("historical: current root update contended, readers may observe a stale root until the next write")
	}

	if c.historyMu.TryLock() {
		c.history = newHistoryRoot
		c.historyMu.Unlock()
	} else {
		glog.Warningf("historical: history root update contended")
	}

	if err := c.maybeAdvanceLatest(block); err != nil {
		glog.Warningf("historical: advancing latest for domain %s: %v", block.Domain, err)
	}

	return nil
}

func (c *Coordinator) readCurrentRoot() hash.Hash {
	c.currentMu.RLock()
	defer c.currentMu.RUnlock()
	return c.current
}

// CurrentRoot returns the latest committed outer root. Callers that need a
// stable root across a multi-step request (the execution context, the
// witness assembler) should snapshot it once at the start of that request
// rather than re-reading it mid-flight, since current may advance
// concurrently.
func (c *Coordinator) CurrentRoot() hash.Hash {
	return c.readCurrentRoot()
}

func (c *Coordinator) readHistoryRoot() hash.Hash {
	c.historyMu.RLock()
	defer c.historyMu.RUnlock()
	return c.history
}

// maybeAdvanceLatest updates historical-latest[domain] only when block's
// number exceeds the domain's currently stored latest.
func (c *Coordinator) maybeAdvanceLatest(block ValidatedDomainBlock) error {
	existing, ok, err := c.GetLatestBlock(block.Domain)
	if err != nil {
		return err
	}
	if ok && existing.Number >= block.Number {
		return nil
	}

	packed, err := codec.PackBlock(codec.PackedBlock{
		Domain:  block.Domain,
		Number:  block.Number,
		Root:    block.Root,
		Payload: block.Payload,
	})
	if err != nil {
		return err
	}
	if _, _, err := c.backend.Set(latestPrefix, block.Domain[:], packed); err != nil {
		return fmt.Errorf("%w: historical: persist latest for domain %s: %v", coprocerr.ErrBackend, block.Domain, err)
	}
	return nil
}

// GetLatestBlock returns the highest-numbered block recorded for domain.
func (c *Coordinator) GetLatestBlock(domain hash.Hash) (ValidatedDomainBlock, bool, error) {
	raw, ok, err := c.backend.Get(latestPrefix, domain[:])
	if err != nil {
		return ValidatedDomainBlock{}, false, fmt.Errorf("%w: historical: get latest for domain %s: %v", coprocerr.ErrBackend, domain, err)
	}
	if !ok {
		return ValidatedDomainBlock{}, false, nil
	}
	packed, err := codec.UnpackBlock(raw)
	if err != nil {
		return ValidatedDomainBlock{}, false, err
	}
	return ValidatedDomainBlock{Domain: packed.Domain, Number: packed.Number, Root: packed.Root, Payload: packed.Payload}, true, nil
}

// GetBlockProof builds a two-entry CompoundOpening proving (domain,
// number)'s external state root under the coordinator's current outer
// root.
func (c *Coordinator) GetBlockProof(domain hash.Hash, number uint64) (BlockProof, error) {
	outerRoot := c.readCurrentRoot()
	return c.getBlockProofAt(outerRoot, domain, number)
}

// GetBlockProofAt is GetBlockProof against an arbitrary historical root
// rather than the coordinator's current one, used by the witness
// assembler to prove state against whatever root a batch of proofs was
// produced for.
func (c *Coordinator) GetBlockProofAt(root, domain hash.Hash, number uint64) (BlockProof, error) {
	return c.getBlockProofAt(root, domain, number)
}

func (c *Coordinator) getBlockProofAt(outerRoot, domain hash.Hash, number uint64) (BlockProof, error) {
	outerOpened, err := c.outerTree().Open(outerRoot, domain)
	if err != nil {
		return BlockProof{}, err
	}
	if !outerOpened.Present {
		return BlockProof{}, fmt.Errorf("%w: historical: domain %s has no entries at this root", coprocerr.ErrNotFound, domain)
	}
	innerRoot := outerOpened.Leaf

	innerKey := codec.BlockNumberKey(number)
	innerOpened, err := c.innerTree(domain).Open(innerRoot, innerKey)
	if err != nil {
		return BlockProof{}, err
	}
	if !innerOpened.Present {
		return BlockProof{}, fmt.Errorf("%w: historical: domain %s has no block %d at this root", coprocerr.ErrNotFound, domain, number)
	}

	packed, err := codec.UnpackBlock(innerOpened.Value)
	if err != nil {
		return BlockProof{}, err
	}

	opening := smt.CompoundOpening{Trees: []smt.CompoundEntry{
		{Key: innerKey, Opening: innerOpened.Opening},
		{Key: domain, Opening: outerOpened.Opening},
	}}

	return BlockProof{
		Opening: opening,
		Block:   ValidatedDomainBlock{Domain: packed.Domain, Number: packed.Number, Root: packed.Root, Payload: packed.Payload},
	}, nil
}

// GetHistoricalUpdate returns the history chain link stored at root: the
// previous outer root and the block that produced this transition.
func (c *Coordinator) GetHistoricalUpdate(root hash.Hash) (HistoricalUpdate, error) {
	historyRoot := c.readHistoryRoot()
	opened, err := c.historyTree().Open(historyRoot, root)
	if err != nil {
		return HistoricalUpdate{}, err
	}
	if !opened.Present {
		return HistoricalUpdate{}, fmt.Errorf("%w: historical: no history entry at root %s", coprocerr.ErrNotFound, root)
	}

	packed, err := codec.UnpackBlock(opened.Value)
	if err != nil {
		return HistoricalUpdate{}, err
	}

	return HistoricalUpdate{
		Root:     root,
		Previous: opened.Leaf,
		Block:    ValidatedDomainBlock{Domain: packed.Domain, Number: packed.Number, Root: packed.Root, Payload: packed.Payload},
	}, nil
}

// GetHistoricalTransitionProof proves that root was produced by a newly
// added block (not a replacement): it pairs a non-membership proof of
// (block.domain, block.number) at the transition's previous outer root
// with the positive compound opening of that block at root itself.
func (c *Coordinator) GetHistoricalTransitionProof(root hash.Hash) (TransitionProof, error) {
	update, err := c.GetHistoricalUpdate(root)
	if err != nil {
		return TransitionProof{}, err
	}

	previousInnerRoot, err := c.innerRootAt(update.Previous, update.Block.Domain)
	if err != nil {
		return TransitionProof{}, err
	}

	innerKey := codec.BlockNumberKey(update.Block.Number)
	nonMembership, err := c.innerTree(update.Block.Domain).OpenNonInclusion(previousInnerRoot, innerKey)
	if err != nil {
		return TransitionProof{}, err
	}

	positive, err := c.getBlockProofAt(root, update.Block.Domain, update.Block.Number)
	if err != nil {
		return TransitionProof{}, err
	}

	return TransitionProof{
		PreviousNonMembership: nonMembership,
		Update:                update,
		PositiveOpening:       positive.Opening,
	}, nil
}
