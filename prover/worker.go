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
	"crypto/rand"
	"fmt"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/valence-net/zk-coprocessor/coprocerr"
	"github.com/valence-net/zk-coprocessor/hash"
)

const challengeSize = 4

// handshakeServer performs the server side of the connection handshake: it
// sends a random challenge and verifies the client's response is
// hasher.Hash(secret || challenge). It returns an error if the connection
// should be dropped.
func handshakeServer(hasher hash.Hasher, conn *websocket.Conn, secret []byte) error {
	challenge := make([]byte, challengeSize)
	if _, err := rand.Read(challenge); err != nil {
		return fmt.Errorf("prover: generate challenge: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, challenge); err != nil {
		return fmt.Errorf("prover: send challenge: %w", err)
	}

	_, response, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("prover: read handshake response: %w", err)
	}
	want := hasher.Hash(append(append([]byte{}, secret...), challenge...))
	if len(response) != hash.Size || hash.BytesToHash(response) != want {
		return fmt.Errorf("%w: prover: handshake response mismatch", coprocerr.ErrNotAuthorized)
	}
	return nil
}

// worker services one accepted connection at a time, pulled from the
// pool's task queue, delegating proving work to the shared Backend and
// caching installed proving keys in the shared KeysCache.
type worker struct {
	id      int
	hasher  hash.Hasher
	secret  []byte
	backend Backend
	cache   *KeysCache
	queue   *taskQueue

	onQuitAck func()
}

// run pops tasks until it receives a quit token or the queue closes.
func (w *worker) run() {
	for {
		t, ok := w.queue.pop()
		if !ok {
			return
		}
		if t.quit {
			glog.V(2).Infof("prover: worker %d acking quit", w.id)
			w.onQuitAck()
			return
		}
		w.serve(t.conn)
	}
}

func (w *worker) serve(conn *websocket.Conn) {
	defer conn.Close()

	if err := handshakeServer(w.hasher, conn, w.secret); err != nil {
		glog.Warningf("prover: worker %d handshake failed: %v", w.id, err)
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			glog.V(4).Infof("prover: worker %d connection closed: %v", w.id, err)
			return
		}
		req, err := decodeRequest(raw)
		if err != nil {
			glog.Warningf("prover: worker %d bad request: %v", w.id, err)
			return
		}

		resp := w.handle(req)
		out, err := encodeResponse(resp)
		if err != nil {
			glog.Warningf("prover: worker %d encode response: %v", w.id, err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
			glog.Warningf("prover: worker %d write response: %v", w.id, err)
			return
		}
		if req.Kind == ReqClose {
			return
		}
	}
}

func (w *worker) handle(req Request) Response {
	switch req.Kind {
	case ReqSp1Proof:
		return w.handleProof(req)
	case ReqSp1GetVerifyingKey:
		return w.handleVerifyingKey(req)
	case ReqClose:
		return Response{Kind: RespAck}
	default:
		return Response{Kind: RespAck}
	}
}

func (w *worker) handleProof(req Request) Response {
	identifier := req.Circuit.Identifier
	if _, cached := w.cache.Lookup(identifier); !cached {
		if len(req.Circuit.ELF) == 0 {
			return Response{Kind: RespProvingKeyNotCached}
		}
		installed, err := w.backend.InstallKey(req.Circuit.ELF)
		if err != nil {
			glog.Warningf("prover: worker %d install key: %v", w.id, err)
			return Response{Kind: RespProvingKeyNotCached}
		}
		w.cache.Install(installed, req.Circuit.ELF)
		identifier = installed
	}

	proof, inputs, err := w.backend.Prove(identifier, req.WitnessesBase64)
	if err != nil {
		glog.Warningf("prover: worker %d prove: %v", w.id, err)
		return Response{Kind: RespProvingKeyNotCached}
	}
	return Response{Kind: RespProof, ProofBase64: proof, InputsBase64: inputs}
}

func (w *worker) handleVerifyingKey(req Request) Response {
	identifier := req.Circuit.Identifier
	if _, cached := w.cache.Lookup(identifier); !cached {
		return Response{Kind: RespProvingKeyNotCached}
	}
	key, err := w.backend.VerifyingKey(identifier)
	if err != nil {
		glog.Warningf("prover: worker %d verifying key: %v", w.id, err)
		return Response{Kind: RespProvingKeyNotCached}
	}
	return Response{Kind: RespVerifyingKey, KeyBase64: key}
}
