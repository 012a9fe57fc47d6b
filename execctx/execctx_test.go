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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
)

type stubHost struct {
	lastFunc string
	result   []byte
}

func (s *stubHost) Execute(_ context.Context, _ hash.Hash, function string, _ []byte) ([]byte, error) {
	s.lastFunc = function
	return s.result, nil
}

func (s *stubHost) Updated(hash.Hash) {}

func newTestContext(owner []byte) *Context {
	h := hash.SHA256Hasher{}
	backend := storage.NewMemory()
	controllerID := h.Digest([]byte("controller"), []byte("abc"))
	return New(h, backend, &stubHost{result: []byte(`{}`)}, controllerID, hash.Hash{}, owner)
}

func TestEnsurePassesWhenResourceNeverLocked(t *testing.T) {
	c := newTestContext(nil)
	err := c.Ensure(Permission{Kind: CircuitControllerWrite, Target: c.ControllerID})
	require.NoError(t, err)
}

func TestGrantLocksResourceAndGatesOtherOwners(t *testing.T) {
	c := newTestContext([]byte("alice"))
	perm := Permission{Kind: CircuitControllerWrite, Target: c.ControllerID}

	require.NoError(t, c.Grant(perm, []byte("alice")))
	require.NoError(t, c.Ensure(perm), "alice holds the permission after her own grant")

	bob := newTestContext([]byte("bob"))
	bob.backend = c.backend // share the now-locked backend
	err := bob.Ensure(perm)
	require.Error(t, err)
}

func TestDelegateRequiresHoldingPermissionFirst(t *testing.T) {
	c := newTestContext([]byte("alice"))
	perm := Permission{Kind: CircuitControllerWrite, Target: c.ControllerID}

	err := c.Delegate(perm, []byte("bob"))
	require.Error(t, err, "alice has not been granted the permission yet")

	require.NoError(t, c.Grant(perm, []byte("alice")))
	require.NoError(t, c.Delegate(perm, []byte("bob")))

	bobCtx := newTestContext([]byte("bob"))
	bobCtx.backend = c.backend
	require.NoError(t, bobCtx.Ensure(perm))
}

func TestStorageGetSetRoundTrip(t *testing.T) {
	c := newTestContext([]byte("alice"))
	require.NoError(t, c.SetStorage("config.json", []byte(`{"a":1}`)))

	data, ok, err := c.GetStorage("config.json")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"a":1}`), data)

	_, ok, err = c.GetStorage("missing.json")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRawStorageBypassesNamedFiles(t *testing.T) {
	c := newTestContext([]byte("alice"))
	require.NoError(t, c.SetStorage("a.txt", []byte("hello")))

	raw, ok, err := c.GetRawStorage()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, raw)

	require.NoError(t, c.SetRawStorage([]byte("overwritten")))
	raw2, ok, err := c.GetRawStorage()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("overwritten"), raw2)
}

func TestSetRawStorageRejectsOversizedPayload(t *testing.T) {
	c := newTestContext([]byte("alice"))
	err := c.SetRawStorage(make([]byte, MaxStorageBytes+1))
	require.Error(t, err)
}

func TestExtendLogAccumulates(t *testing.T) {
	c := newTestContext(nil)
	c.ExtendLog("line one")
	c.ExtendLog("line two", "line three")
	require.Equal(t, []string{"line one", "line two", "line three"}, c.Log())
}

func TestVMDelegationCallsNamedFunctions(t *testing.T) {
	c := newTestContext(nil)
	host := c.vmHost.(*stubHost)

	_, err := c.GetWitnesses(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "get_witnesses", host.lastFunc)

	_, err = c.GetStateProof(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "get_state_proof", host.lastFunc)

	_, err = c.Entrypoint(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "entrypoint", host.lastFunc)
}
