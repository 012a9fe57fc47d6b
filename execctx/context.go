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

// Package execctx is the per-invocation execution context: a cheap-clone
// snapshot bundling a controller id, a historical root, the data backend,
// an optional owner identity, and an append-only execution log, plus the
// authorization state machine write operations check before touching
// shared state.
package execctx

import (
	"sync"

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
	"github.com/valence-net/zk-coprocessor/vm"
)

// MaxStorageBytes bounds a controller's FAT-style storage image at the
// 256 MiB FAT-16 cap used for controller storage.
const MaxStorageBytes = 256 << 20

// Context is passed around as a cheap-clone reference: cloning it copies
// only the small fixed fields below and shares the backend and VM host; a
// clone starts with its own empty, mutex-guarded log. Callers should
// construct one immutable snapshot per request and never mutate Root
// mid-request — the historical coordinator's current root may advance
// concurrently, and every read within a single request must see the same
// value.
type Context struct {
	hasher  hash.Hasher
	backend storage.Backend
	vmHost  vm.Host

	// ControllerID identifies the controller this context executes on
	// behalf of.
	ControllerID hash.Hash
	// Root is the historical root snapshot taken at the start of this
	// request.
	Root hash.Hash
	// Owner is the caller's identity bytes, or nil for an unauthenticated
	// caller (permission checks against an unlocked resource still
	// succeed for a nil owner; a locked resource always rejects one).
	Owner []byte

	logMu sync.Mutex
	log   []string
}

// New constructs a Context for one request.
func New(hasher hash.Hasher, backend storage.Backend, vmHost vm.Host, controllerID, root hash.Hash, owner []byte) *Context {
	return &Context{
		hasher:       hasher,
		backend:      backend,
		vmHost:       vmHost,
		ControllerID: controllerID,
		Root:         root,
		Owner:        owner,
	}
}

// Clone returns a cheap copy of c sharing the same backend and VM host but
// with its own owner and execution log, suitable for delegating a
// sub-request to a different controller id without aliasing the caller's
// log.
func (c *Context) Clone(controllerID hash.Hash, owner []byte) *Context {
	return New(c.hasher, c.backend, c.vmHost, controllerID, c.Root, owner)
}

// ExtendLog appends lines to the context's execution log.
// Truncation, if any, is the caller's responsibility: the log is
// append-only and otherwise unbounded.
func (c *Context) ExtendLog(lines ...string) {
	c.logMu.Lock()
	defer c.logMu.Unlock()
	c.log = append(c.log, lines...)
}

// Log returns a copy of the execution log accumulated so far.
func (c *Context) Log() []string {
	c.logMu.Lock()
	defer c.logMu.Unlock()
	out := make([]string, len(c.log))
	copy(out, c.log)
	return out
}
