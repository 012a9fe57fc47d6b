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

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/historical"
)

// TryFromWitnesses extracts every StateProof from witnesses and, for each
// one, builds a DomainOpening against coord at root. The resulting
// Coprocessor preserves witnesses' original order; Proofs runs parallel to
// the StateProof-kind entries in that order.
func TryFromWitnesses(coord *historical.Coordinator, root hash.Hash, witnesses []Witness) (Coprocessor, error) {
	var proofs []DomainOpening

	for i, w := range witnesses {
		if w.Kind != WitnessKindStateProof {
			continue
		}
		proof := w.StateProof

		blockProof, err := coord.GetBlockProofAt(root, proof.Domain, proof.Number)
		if err != nil {
			return Coprocessor{}, fmt.Errorf("witness: assembling opening for witness %d (domain %s, block %d): %w", i, proof.Domain, proof.Number, err)
		}

		proofs = append(proofs, DomainOpening{
			Proof:   proof,
			Opening: blockProof.Opening,
		})
	}

	return Coprocessor{
		Root:      root,
		Proofs:    proofs,
		Witnesses: witnesses,
	}, nil
}
