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

// Package storage defines the abstract key-value contract every other
// package in this module composes namespace prefixes on top of. The
// concrete backend (a real embedded or networked store) is out of scope for
// the cryptographic core; only the contract and an in-memory reference
// implementation live here.
package storage

// Backend is a prefixed key-value store with a standard lane and a
// separate bulk lane for large blobs (controller/circuit binaries,
// filesystem-image storage). Implementations are single-node; concurrent
// access from multiple callers is the caller's responsibility.
type Backend interface {
	// Get returns the value stored at (prefix, key), or (nil, false) if
	// absent.
	Get(prefix, key []byte) ([]byte, bool, error)

	// Has reports whether (prefix, key) is present.
	Has(prefix, key []byte) (bool, error)

	// Set stores value at (prefix, key) and returns the prior value, if
	// any.
	Set(prefix, key, value []byte) ([]byte, bool, error)

	// Remove deletes (prefix, key). It is not an error to remove an
	// absent key.
	Remove(prefix, key []byte) error

	// GetBulk is the large-blob counterpart of Get.
	GetBulk(prefix, key []byte) ([]byte, bool, error)

	// SetBulk is the large-blob counterpart of Set.
	SetBulk(prefix, key, value []byte) error
}
