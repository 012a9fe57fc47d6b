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

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

// Client is one handshaken connection to a Pool, serialized by a mutex
// since a single WebSocket connection carries one request/response pair at
// a time.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to addr, performs the client side of the handshake
// (responding to the server's challenge with hasher.Hash(secret ||
// challenge)), and returns a ready Client.
func Dial(hasher hash.Hasher, addr string, secret []byte) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("prover: dial %s: %w", addr, err)
	}

	_, challenge, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("prover: read challenge: %w", err)
	}
	response := hasher.Hash(append(append([]byte{}, secret...), challenge...))
	if err := conn.WriteMessage(websocket.BinaryMessage, response[:]); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prover: send handshake response: %w", err)
	}

	return &Client{conn: conn}, nil
}

func (c *Client) roundTrip(req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := encodeRequest(req)
	if err != nil {
		return Response{}, err
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, raw); err != nil {
		return Response{}, fmt.Errorf("prover: send request: %w", err)
	}
	_, out, err := c.conn.ReadMessage()
	if err != nil {
		return Response{}, fmt.Errorf("prover: read response: %w", err)
	}
	return decodeResponse(out)
}

// Prove requests a proof for identifier's circuit, retrying once with the
// circuit's ELF bytes installed if the worker reports the proving key isn't
// cached yet.
func (c *Client) Prove(identifier hash.Hash, elf []byte, witnesses []byte) (proof, inputs []byte, err error) {
	witnessesBase64 := base64.StdEncoding.EncodeToString(witnesses)

	resp, err := c.roundTrip(Request{Kind: ReqSp1Proof, Circuit: CircuitRef{Identifier: identifier}, WitnessesBase64: witnessesBase64})
	if err != nil {
		return nil, nil, err
	}
	if resp.Kind == RespProvingKeyNotCached {
		resp, err = c.roundTrip(Request{Kind: ReqSp1Proof, Circuit: CircuitRef{Identifier: identifier, ELF: elf}, WitnessesBase64: witnessesBase64})
		if err != nil {
			return nil, nil, err
		}
	}
	if resp.Kind != RespProof {
		return nil, nil, fmt.Errorf("%w: prover: proving key still not cached after install attempt", coprocerr.ErrInvariant)
	}

	proof, err = base64.StdEncoding.DecodeString(resp.ProofBase64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: prover: decode proof base64: %v", coprocerr.ErrSerialization, err)
	}
	inputs, err = base64.StdEncoding.DecodeString(resp.InputsBase64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: prover: decode inputs base64: %v", coprocerr.ErrSerialization, err)
	}
	return proof, inputs, nil
}

// VerifyingKey requests a circuit's verifying key.
func (c *Client) VerifyingKey(identifier hash.Hash) ([]byte, error) {
	resp, err := c.roundTrip(Request{Kind: ReqSp1GetVerifyingKey, Circuit: CircuitRef{Identifier: identifier}})
	if err != nil {
		return nil, err
	}
	if resp.Kind != RespVerifyingKey {
		return nil, fmt.Errorf("%w: prover: verifying key not cached", coprocerr.ErrNotFound)
	}
	key, err := base64.StdEncoding.DecodeString(resp.KeyBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: prover: decode key base64: %v", coprocerr.ErrSerialization, err)
	}
	return key, nil
}

// Close sends a Close request and awaits the Ack before closing the
// underlying connection.
func (c *Client) Close() error {
	_, err := c.roundTrip(Request{Kind: ReqClose})
	closeErr := c.conn.Close()
	if err != nil {
		return err
	}
	return closeErr
}
