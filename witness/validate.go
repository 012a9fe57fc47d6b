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

package witness

import (
	"fmt"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/smt"
)

// ValidatedWitnesses is the canonical, circuit-ready witness bundle: a
// historical root and the ordered witness list with every StateProof slot
// confirmed to open under that root.
type ValidatedWitnesses struct {
	Root      hash.Hash
	Witnesses []Witness
}

// Validate checks every DomainOpening in c.Proofs against c.Root, then
// substitutes each validated StateProof back into its slot in
// c.Witnesses, in order. It fails if either list is exhausted early or any
// opening mismatches.
func (c Coprocessor) Validate(hasher hash.Hasher) (ValidatedWitnesses, error) {
	for i, p := range c.Proofs {
		if len(p.Opening.Trees) < 2 {
			return ValidatedWitnesses{}, fmt.Errorf("%w: witness: domain opening %d has fewer than 2 compound entries", coprocerr.ErrProofInvalid, i)
		}

		computedRoot, err := smt.VerifyCompound(hasher, c.Root, p.Proof.StateRoot, p.Opening)
		if err != nil {
			return ValidatedWitnesses{}, fmt.Errorf("witness: verifying domain opening %d: %w", i, err)
		}
		if !computedRoot {
			return ValidatedWitnesses{}, fmt.Errorf("%w: witness: domain opening %d does not fold to the historical root", coprocerr.ErrProofInvalid, i)
		}

		domainID := p.Opening.Trees[1].Key
		if domainID != p.Proof.Domain {
			return ValidatedWitnesses{}, fmt.Errorf("%w: witness: domain opening %d outer key %s does not match proof domain %s", coprocerr.ErrProofInvalid, i, domainID, p.Proof.Domain)
		}
	}

	out := make([]Witness, len(c.Witnesses))
	copy(out, c.Witnesses)

	proofIdx := 0
	for i, w := range out {
		if w.Kind != WitnessKindStateProof {
			continue
		}
		if proofIdx >= len(c.Proofs) {
			return ValidatedWitnesses{}, fmt.Errorf("%w: witness: witness list has more state-proof slots than validated proofs", coprocerr.ErrProofInvalid)
		}
		out[i] = Witness{Kind: WitnessKindStateProof, StateProof: c.Proofs[proofIdx].Proof}
		proofIdx++
	}
	if proofIdx != len(c.Proofs) {
		return ValidatedWitnesses{}, fmt.Errorf("%w: witness: %d validated proofs were never consumed by a witness slot (consumed %d of %d)", coprocerr.ErrProofInvalid, len(c.Proofs)-proofIdx, proofIdx, len(c.Proofs))
	}

	return ValidatedWitnesses{Root: c.Root, Witnesses: out}, nil
}
