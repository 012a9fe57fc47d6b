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

// Package prover is the proving worker pool: a scaling pool of WebSocket
// connections, an LRU proving-key cache shared across workers, and an
// owner-aware scheduler that rotates between clusters of prover clients.
package prover

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

// CircuitRef names a proving circuit either by the identifier of an
// already-installed proving key, or by the raw ELF bytes of a circuit that
// still needs installing.
type CircuitRef struct {
	// Identifier names a circuit whose proving key may already be cached.
	Identifier hash.Hash `msgpack:"identifier"`
	// ELF carries the circuit bytecode; non-empty only when installing a
	// proving key the receiver didn't have cached.
	ELF []byte `msgpack:"elf,omitempty"`
}

// RequestKind discriminates the Request variants carried over the wire.
type RequestKind int

const (
	ReqSp1Proof RequestKind = iota
	ReqSp1GetVerifyingKey
	ReqClose
)

// Request is the tagged union of messages a prover client sends a worker.
type Request struct {
	Kind RequestKind `msgpack:"kind"`

	// Circuit is set for ReqSp1Proof and ReqSp1GetVerifyingKey.
	Circuit CircuitRef `msgpack:"circuit,omitempty"`
	// WitnessesBase64 is set for ReqSp1Proof.
	WitnessesBase64 string `msgpack:"witnesses,omitempty"`
}

// ResponseKind discriminates the Response variants carried over the wire.
type ResponseKind int

const (
	RespProof ResponseKind = iota
	RespVerifyingKey
	RespProvingKeyNotCached
	RespAck
)

// Response is the tagged union of messages a worker sends a prover client.
type Response struct {
	Kind ResponseKind `msgpack:"kind"`

	// ProofBase64/InputsBase64 are set for RespProof.
	ProofBase64  string `msgpack:"proof,omitempty"`
	InputsBase64 string `msgpack:"inputs,omitempty"`
	// KeyBase64 is set for RespVerifyingKey.
	KeyBase64 string `msgpack:"key,omitempty"`
}

func encodeRequest(r Request) ([]byte, error) {
	b, err := msgpack.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("%w: prover: encode request: %v", coprocerr.ErrSerialization, err)
	}
	return b, nil
}

func decodeRequest(b []byte) (Request, error) {
	var r Request
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return Request{}, fmt.Errorf("%w: prover: decode request: %v", coprocerr.ErrSerialization, err)
	}
	return r, nil
}

func encodeResponse(r Response) ([]byte, error) {
	b, err := msgpack.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("%w: prover: encode response: %v", coprocerr.ErrSerialization, err)
	}
	return b, nil
}

func decodeResponse(b []byte) (Response, error) {
	var r Response
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return Response{}, fmt.Errorf("%w: prover: decode response: %v", coprocerr.ErrSerialization, err)
	}
	return r, nil
}
