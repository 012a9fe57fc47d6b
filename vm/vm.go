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

// Package vm declares the narrow contract the coordination core expects
// from a controller-execution host. No concrete VM (WASM or otherwise)
// lives in this module; callers inject an implementation.
package vm

import (
	"context"

	"github.com/valence-net/zk-coprocessor/hash"
)

// Well-known controller entry points the core calls by name.
const (
	FuncGetWitnesses  = "get_witnesses"
	FuncGetStateProof = "get_state_proof"
	FuncValidateBlock = "validate_block"
	FuncEntrypoint    = "entrypoint"
)

// Host executes named functions inside a controller's compiled module and
// notifies the host of registry updates so it can invalidate any cached
// module instance.
type Host interface {
	// Execute runs function within controllerID's module, passing argsJSON
	// and returning the function's JSON result.
	Execute(ctx context.Context, controllerID hash.Hash, function string, argsJSON []byte) ([]byte, error)

	// Updated notifies the host that controllerID's stored artifact
	// changed and any cached instance must be invalidated.
	Updated(controllerID hash.Hash)
}
