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

// Package witness assembles and validates the coprocessor witness bundle:
// per-state-proof historical openings checked against a historical root,
// producing the canonical input handed to the proving circuit.
package witness

import (
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/smt"
)

// StateProof is a domain-specific witness asserting state_root at a given
// block number.
type StateProof struct {
	Domain    hash.Hash
	Number    uint64
	StateRoot hash.Hash
	Payload   []byte
	Proof     []byte
}

// WitnessKind discriminates a Witness's variant.
type WitnessKind int

const (
	// WitnessKindStateProof holds a StateProof.
	WitnessKindStateProof WitnessKind = iota
	// WitnessKindData holds opaque bytes.
	WitnessKindData
)

// Witness is the sum-typed circuit input: either a StateProof or opaque
// bytes.
type Witness struct {
	Kind       WitnessKind
	StateProof StateProof
	Data       []byte
}

// DomainOpening proves a StateProof's state_root is included under the
// historical root.
type DomainOpening struct {
	Proof   StateProof
	Opening smt.CompoundOpening
}

// Coprocessor is the full witness bundle passed to the prover: the
// historical root it was assembled against, the extracted per-domain
// openings, and the original ordered witness list. Validate does not modify
// it; it returns a copy with the StateProof slots canonicalised.
type Coprocessor struct {
	Root      hash.Hash
	Proofs    []DomainOpening
	Witnesses []Witness
}
