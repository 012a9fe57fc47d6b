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

	"github.com/valence-net/zk-coprocessor/vm"
)

// GetStateProof delegates to the VM's get_state_proof entry point on this
// context's controller.
func (c *Context) GetStateProof(ctx context.Context, argsJSON []byte) ([]byte, error) {
	return c.vmHost.Execute(ctx, c.ControllerID, vm.FuncGetStateProof, argsJSON)
}

// GetWitnesses delegates to the VM's get_witnesses entry point.
func (c *Context) GetWitnesses(ctx context.Context, argsJSON []byte) ([]byte, error) {
	return c.vmHost.Execute(ctx, c.ControllerID, vm.FuncGetWitnesses, argsJSON)
}

// Entrypoint delegates to the VM's generic entrypoint.
func (c *Context) Entrypoint(ctx context.Context, argsJSON []byte) ([]byte, error) {
	return c.vmHost.Execute(ctx, c.ControllerID, vm.FuncEntrypoint, argsJSON)
}
