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

package prover

import "github.com/valence-net/zk-coprocessor/hash"

// Backend is the narrow contract a Worker delegates the actual SP1 proving
// work to. No concrete proving engine lives in this module; a Pool is
// constructed with whatever Backend implementation wraps the real prover
// binary or library.
type Backend interface {
	// InstallKey sets up and caches the proving key for a circuit's ELF
	// bytes, returning the identifier future requests should reference.
	InstallKey(elf []byte) (hash.Hash, error)

	// Prove runs the proof for an already-installed identifier against
	// base64-encoded witnesses, returning base64-encoded proof and inputs.
	Prove(identifier hash.Hash, witnessesBase64 string) (proofBase64, inputsBase64 string, err error)

	// VerifyingKey returns the base64-encoded verifying key for an
	// already-installed identifier.
	VerifyingKey(identifier hash.Hash) (keyBase64 string, err error)
}
