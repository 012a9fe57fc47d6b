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

// Package coprocerr holds the sentinel errors shared across the
// coprocessor's packages. Callers wrap these with fmt.Errorf("...: %w", ...)
// and test with errors.Is rather than comparing strings.
package coprocerr

import "errors"

var (
	// ErrInvariant signals that on-disk state violates a structural
	// invariant the tree or coordinator relies on (e.g. a node with
	// neither a children record nor a leaf-key association). Seeing this
	// means the backend was corrupted or written to by something other
	// than this module.
	ErrInvariant = errors.New("coprocessor: invariant violation")

	// ErrProofInvalid signals that a caller-supplied proof, opening, or
	// witness failed verification or is structurally malformed (wrong
	// length, unknown discriminator).
	ErrProofInvalid = errors.New("coprocessor: proof invalid")

	// ErrNotAuthorized signals that an execution context attempted an
	// operation its Permission set does not allow.
	ErrNotAuthorized = errors.New("coprocessor: not authorized")

	// ErrBackend wraps a failure surfaced by the storage backend itself
	// (I/O error, corrupted encoding at rest).
	ErrBackend = errors.New("coprocessor: backend error")

	// ErrSerialization signals a failure encoding or decoding a wire
	// value (codec or msgpack framing).
	ErrSerialization = errors.New("coprocessor: serialization error")

	// ErrNotFound signals that a requested block, domain, or controller
	// does not exist in the registry or historical coordinator.
	ErrNotFound = errors.New("coprocessor: not found")

	// ErrCapacityExceeded signals that an execution context's storage
	// image grew past its configured limit.
	ErrCapacityExceeded = errors.New("coprocessor: capacity exceeded")
)
