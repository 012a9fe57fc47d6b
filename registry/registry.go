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
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/execctx"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/storage"
	"github.com/valence-net/zk-coprocessor/vm"
	"github.com/valence-net/zk-coprocessor/zkvm"
)

var (
	controllerBinPrefix  = []byte("registry-controller-bin")
	circuitBinPrefix     = []byte("registry-circuit-bin")
	controllerMetaPrefix = []byte("registry-controller-meta")
	domainPrefix         = []byte("registry-domain")
)

// ControllerID derives a controller's content-addressed id from its
// circuit bytes and an 8-byte little-endian nonce.
func ControllerID(hasher hash.Hasher, circuit []byte, nonce uint64) hash.Hash {
	nonceLE := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceLE, nonce)
	return hasher.Digest([]byte("controller"), circuit, nonceLE)
}

// DomainID derives a domain's content-addressed id from its name.
func DomainID(hasher hash.Hasher, name string) hash.Hash {
	return hasher.Digest([]byte("domain"), []byte(name))
}

// Registry is the content-addressed store of controller and circuit
// artifacts.
type Registry struct {
	hasher  hash.Hasher
	backend storage.Backend
	vmHost  vm.Host
	prover  zkvm.Prover
}

// New constructs a Registry.
func New(hasher hash.Hasher, backend storage.Backend, vmHost vm.Host, prover zkvm.Prover) *Registry {
	return &Registry{hasher: hasher, backend: backend, vmHost: vmHost, prover: prover}
}

// controllerMeta persists the fields of ControllerData that aren't one of
// the two bulk blobs.
type controllerMeta struct {
	Nonce uint64 `msgpack:"nonce"`
}

// RegisterController writes a controller's module and circuit binaries
// under its content-addressed id and notifies the VM/ZkVm collaborators.
// The write is gated by ctx.Ensure(CircuitControllerWrite(id)): it is
// rejected only once that permission has been granted to some owner and
// ctx's owner does not hold it.
func (r *Registry) RegisterController(ctx *execctx.Context, data ControllerData) (hash.Hash, error) {
	id := ControllerID(r.hasher, data.Circuit, data.Nonce)

	if err := ctx.Ensure(execctx.Permission{Kind: execctx.CircuitControllerWrite, Target: id}); err != nil {
		return hash.Hash{}, err
	}

	if err := r.backend.SetBulk(controllerBinPrefix, id[:], data.Controller); err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: write controller binary %s: %v", coprocerr.ErrBackend, id, err)
	}
	if err := r.backend.SetBulk(circuitBinPrefix, id[:], data.Circuit); err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: write circuit binary %s: %v", coprocerr.ErrBackend, id, err)
	}

	meta, err := msgpack.Marshal(&controllerMeta{Nonce: data.Nonce})
	if err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: encode controller meta: %v", coprocerr.ErrSerialization, err)
	}
	if _, _, err := r.backend.Set(controllerMetaPrefix, id[:], meta); err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: write controller meta %s: %v", coprocerr.ErrBackend, id, err)
	}

	r.vmHost.Updated(id)
	r.prover.Updated(id)

	return id, nil
}

// RegisterDomain records a named domain's bound controller and notifies
// the VM/ZkVm collaborators.
func (r *Registry) RegisterDomain(name string, controller hash.Hash) (hash.Hash, error) {
	id := DomainID(r.hasher, name)

	raw, err := msgpack.Marshal(&DomainData{Name: name, Controller: controller})
	if err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: encode domain %s: %v", coprocerr.ErrSerialization, name, err)
	}
	if _, _, err := r.backend.Set(domainPrefix, id[:], raw); err != nil {
		return hash.Hash{}, fmt.Errorf("%w: registry: write domain %s: %v", coprocerr.ErrBackend, name, err)
	}

	r.vmHost.Updated(controller)
	r.prover.Updated(controller)

	return id, nil
}

// GetController reads back a controller's binaries and nonce by id.
func (r *Registry) GetController(id hash.Hash) (ControllerData, bool, error) {
	controllerBin, ok, err := r.backend.GetBulk(controllerBinPrefix, id[:])
	if err != nil {
		return ControllerData{}, false, fmt.Errorf("%w: registry: get controller binary %s: %v", coprocerr.ErrBackend, id, err)
	}
	if !ok {
		return ControllerData{}, false, nil
	}
	circuitBin, _, err := r.backend.GetBulk(circuitBinPrefix, id[:])
	if err != nil {
		return ControllerData{}, false, fmt.Errorf("%w: registry: get circuit binary %s: %v", coprocerr.ErrBackend, id, err)
	}

	metaRaw, _, err := r.backend.Get(controllerMetaPrefix, id[:])
	if err != nil {
		return ControllerData{}, false, fmt.Errorf("%w: registry: get controller meta %s: %v", coprocerr.ErrBackend, id, err)
	}
	var meta controllerMeta
	if metaRaw != nil {
		if err := msgpack.Unmarshal(metaRaw, &meta); err != nil {
			return ControllerData{}, false, fmt.Errorf("%w: registry: decode controller meta %s: %v", coprocerr.ErrSerialization, id, err)
		}
	}

	return ControllerData{Controller: controllerBin, Circuit: circuitBin, Nonce: meta.Nonce}, true, nil
}

// GetDomain reads back a domain's record by id.
func (r *Registry) GetDomain(id hash.Hash) (DomainData, bool, error) {
	raw, ok, err := r.backend.Get(domainPrefix, id[:])
	if err != nil {
		return DomainData{}, false, fmt.Errorf("%w: registry: get domain %s: %v", coprocerr.ErrBackend, id, err)
	}
	if !ok {
		return DomainData{}, false, nil
	}
	var d DomainData
	if err := msgpack.Unmarshal(raw, &d); err != nil {
		return DomainData{}, false, fmt.Errorf("%w: registry: decode domain %s: %v", coprocerr.ErrSerialization, id, err)
	}
	return d, true, nil
}
