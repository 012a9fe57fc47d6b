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

// Package zkvm declares the narrow contract the coordination core expects
// from the underlying proving system. No concrete zkVM (SP1, Groth16, or
// otherwise) lives in this module; callers inject an implementation.
package zkvm

import (
	"context"

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/witness"
)

// Proof is the canonical wire shape returned by a Prover: base64-encoded
// proof bytes and their public inputs.
type Proof struct {
	ProofBase64  string
	InputsBase64 string
}

// Prover is the external proving collaborator.
type Prover interface {
	// Prove produces a Proof for the given validated witness coprocessor
	// bundle.
	Prove(ctx context.Context, w witness.Coprocessor) (Proof, error)

	// VerifyingKey returns the verifying key bytes for whatever circuit
	// this Prover is currently configured with.
	VerifyingKey(ctx context.Context) ([]byte, error)

	// Updated notifies the prover that controllerID's stored circuit
	// changed and any cached proving/verifying key must be invalidated.
	Updated(controllerID hash.Hash)
}
