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

package execctx

import (
	"fmt"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

var (
	authPrefix   = []byte("execctx-auth")
	lockedPrefix = []byte("execctx-locked")
)

// PermissionKind discriminates the two resources a Permission can gate.
type PermissionKind int

const (
	// CircuitControllerWrite gates writes to a controller's registry
	// entry.
	CircuitControllerWrite PermissionKind = iota
	// CircuitStorageWrite gates writes to a controller's storage image.
	CircuitStorageWrite
)

func (k PermissionKind) String() string {
	switch k {
	case CircuitControllerWrite:
		return "circuit-controller-write"
	case CircuitStorageWrite:
		return "circuit-storage-write"
	default:
		return "unknown-permission"
	}
}

// Permission is {CircuitControllerWrite(h) | CircuitStorageWrite(h)}.
type Permission struct {
	Kind   PermissionKind
	Target hash.Hash
}

// string is the canonical permission-string used as the keying context for
// both the auth and locked-resource records.
func (p Permission) string() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.Target)
}

// Grant records that owner holds perm: it writes an auth record keyed by
// key(permission-string, owner), and marks the resource as locked by
// writing a record keyed by hash(permission-string). Once a resource is
// locked, Ensure rejects every owner except one holding a matching grant.
func (c *Context) Grant(perm Permission, owner []byte) error {
	ps := perm.string()

	ownerKey := c.hasher.Key(ps, owner)
	if _, _, err := c.backend.Set(authPrefix, ownerKey[:], []byte{1}); err != nil {
		return fmt.Errorf("%w: execctx: grant %s: %v", coprocerr.ErrBackend, ps, err)
	}

	lockedKey := c.hasher.Hash([]byte(ps))
	if _, _, err := c.backend.Set(lockedPrefix, lockedKey[:], []byte{1}); err != nil {
		return fmt.Errorf("%w: execctx: lock %s: %v", coprocerr.ErrBackend, ps, err)
	}
	return nil
}

// Holds reports whether c.Owner has an explicit grant of perm. A nil Owner
// never holds anything.
func (c *Context) Holds(perm Permission) (bool, error) {
	if c.Owner == nil {
		return false, nil
	}
	ownerKey := c.hasher.Key(perm.string(), c.Owner)
	ok, err := c.backend.Has(authPrefix, ownerKey[:])
	if err != nil {
		return false, fmt.Errorf("%w: execctx: check grant: %v", coprocerr.ErrBackend, err)
	}
	return ok, nil
}

// Ensure passes unconditionally unless perm's resource has ever been
// locked (at least one Grant was recorded for it), in which case c.Owner
// must hold a matching grant.
func (c *Context) Ensure(perm Permission) error {
	lockedKey := c.hasher.Hash([]byte(perm.string()))
	locked, err := c.backend.Has(lockedPrefix, lockedKey[:])
	if err != nil {
		return fmt.Errorf("%w: execctx: check lock: %v", coprocerr.ErrBackend, err)
	}
	if !locked {
		return nil
	}

	holds, err := c.Holds(perm)
	if err != nil {
		return err
	}
	if !holds {
		return fmt.Errorf("%w: execctx: %s not held by this owner", coprocerr.ErrNotAuthorized, perm.string())
	}
	return nil
}

// Delegate first asserts that c.Owner already holds perm, then grants it
// to other.
func (c *Context) Delegate(perm Permission, other []byte) error {
	holds, err := c.Holds(perm)
	if err != nil {
		return err
	}
	if !holds {
		return fmt.Errorf("%w: execctx: cannot delegate %s without holding it", coprocerr.ErrNotAuthorized, perm.string())
	}
	return c.Grant(perm, other)
}
