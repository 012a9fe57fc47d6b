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

// Package registry is the content-addressed store of controller and
// circuit artifacts: controller/domain ids are derived deterministically
// from their contents, and registration notifies the VM/ZkVm collaborators
// so they can invalidate any cached instance.
package registry

import "github.com/valence-net/zk-coprocessor/hash"

// ControllerData is a registry record for one controller: its compiled
// module, the circuit it targets, and the nonce used to derive its id.
type ControllerData struct {
	Controller []byte
	Circuit    []byte
	Nonce      uint64
}

// DomainData is a registry record for one named domain.
type DomainData struct {
	Name       string
	Controller hash.Hash
}
