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

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valence-net/zk-coprocessor/execctx"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
	"github.com/valence-net/zk-coprocessor/witness"
	"github.com/valence-net/zk-coprocessor/zkvm"
)

type spyHost struct {
	updated []hash.Hash
}

func (s *spyHost) Execute(context.Context, hash.Hash, string, []byte) ([]byte, error) { return nil, nil }
func (s *spyHost) Updated(id hash.Hash)                                               { s.updated = append(s.updated, id) }

type spyProver struct {
	updated []hash.Hash
}

func (s *spyProver) Prove(context.Context, witness.Coprocessor) (zkvm.Proof, error) {
	return zkvm.Proof{}, nil
}
func (s *spyProver) VerifyingKey(context.Context) ([]byte, error) { return nil, nil }
func (s *spyProver) Updated(id hash.Hash)                         { s.updated = append(s.updated, id) }

func TestRegisterControllerPersistsAndNotifies(t *testing.T) {
	h := hash.SHA256Hasher{}
	backend := storage.NewMemory()
	host := &spyHost{}
	prover := &spyProver{}
	reg := New(h, backend, host, prover)

	data := ControllerData{Controller: []byte("module-bytes"), Circuit: []byte("circuit-bytes"), Nonce: 7}
	id, err := reg.RegisterController(execctx.New(h, backend, host, hash.Hash{}, hash.Hash{}, nil), data)
	require.NoError(t, err)
	require.Equal(t, ControllerID(h, data.Circuit, data.Nonce), id)

	got, ok, err := reg.GetController(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, data, got)

	require.Equal(t, []hash.Hash{id}, host.updated)
	require.Equal(t, []hash.Hash{id}, prover.updated)
}

func TestRegisterControllerRejectsWrongOwnerAfterLock(t *testing.T) {
	h := hash.SHA256Hasher{}
	backend := storage.NewMemory()
	host := &spyHost{}
	prover := &spyProver{}
	reg := New(h, backend, host, prover)

	data := ControllerData{Controller: []byte("a"), Circuit: []byte("b"), Nonce: 1}
	id := ControllerID(h, data.Circuit, data.Nonce)

	alice := execctx.New(h, backend, host, hash.Hash{}, hash.Hash{}, []byte("alice"))
	require.NoError(t, alice.Grant(execctx.Permission{Kind: execctx.CircuitControllerWrite, Target: id}, []byte("alice")))

	bob := execctx.New(h, backend, host, hash.Hash{}, hash.Hash{}, []byte("bob"))
	_, err := reg.RegisterController(bob, data)
	require.Error(t, err)
}

func TestRegisterDomainPersistsAndNotifies(t *testing.T) {
	h := hash.SHA256Hasher{}
	backend := storage.NewMemory()
	host := &spyHost{}
	prover := &spyProver{}
	reg := New(h, backend, host, prover)

	controller := h.Digest([]byte("controller"), []byte("x"))
	id, err := reg.RegisterDomain("ethereum-mainnet", controller)
	require.NoError(t, err)
	require.Equal(t, DomainID(h, "ethereum-mainnet"), id)

	got, ok, err := reg.GetDomain(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, DomainData{Name: "ethereum-mainnet", Controller: controller}, got)

	require.Equal(t, []hash.Hash{controller}, host.updated)
	require.Equal(t, []hash.Hash{controller}, prover.updated)
}

func TestDomainIDsAreStableAndDistinct(t *testing.T) {
	h := hash.SHA256Hasher{}
	require.Equal(t, DomainID(h, "a"), DomainID(h, "a"))
	require.NotEqual(t, DomainID(h, "a"), DomainID(h, "b"))
}
