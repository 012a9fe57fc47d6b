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

package smt

import "github.com/valence-net/zk-coprocessor/hash"

// bitAt returns bit `depth` of key, most-significant-bit first: depth 0 is
// the top bit of key[0].
func bitAt(key hash.Hash, depth int) int {
	b := key[depth/8]
	return int((b >> (7 - uint(depth%8))) & 1)
}

// divergeDepth returns the shallowest depth at which a and b's bits
// differ. Callers must ensure a != b.
func divergeDepth(a, b hash.Hash) int {
	for d := 0; d < maxDepth; d++ {
		if bitAt(a, d) != bitAt(b, d) {
			return d
		}
	}
	// a == b: no divergence. Callers never reach this for distinct keys.
	return maxDepth
}
