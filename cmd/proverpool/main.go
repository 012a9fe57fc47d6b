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

// Command proverpool runs a standalone prover.Pool behind a WebSocket
// listener, demonstrating the scaling worker pool outside of the rest of
// the coprocessor core.
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/valence-net/zk-coprocessor/hash"
	"github.com/valence-net/zk-coprocessor/prover"
)

const secretEnvVar = "PROVERPOOL_HANDSHAKE_SECRET"

var (
	addr            = flag.String("addr", ":8088", "address to listen on for prover WebSocket connections")
	minWorkers      = flag.Int("min_workers", 1, "minimum worker count the pool always tops up to")
	maxWorkers      = flag.Int("max_workers", 16, "maximum worker count the pool will ever run")
	targetQueueSize = flag.Int("target_queue_size", 2, "backlog the scaling loop tries to hold steady")
	gradient        = flag.Float64("gradient", 0.1, "proportional gain applied to queue-length error")
	scaleFrequency  = flag.Duration("scale_frequency", 600*time.Second, "how often the scaling loop runs")
	cacheCapacity   = flag.Int("cache_capacity", prover.MinCacheCapacity, "capacity of the shared proving-key LRU")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	secret := os.Getenv(secretEnvVar)
	if secret == "" {
		glog.Exitf("%s must be set", secretEnvVar)
	}

	cfg := prover.PoolConfig{
		MinWorkers:      *minWorkers,
		MaxWorkers:      *maxWorkers,
		TargetQueueSize: *targetQueueSize,
		Gradient:        *gradient,
		Frequency:       *scaleFrequency,
		CacheCapacity:   *cacheCapacity,
	}

	pool := prover.NewPool(cfg, hash.SHA256Hasher{}, []byte(secret), &unimplementedBackend{})
	pool.Start()

	glog.Infof("proverpool: listening on %s", *addr)
	if err := http.ListenAndServe(*addr, pool); err != nil {
		glog.Exitf("proverpool: serve: %v", err)
	}
}

// unimplementedBackend is a placeholder prover.Backend: a real deployment
// wires in whatever SP1 proving engine it runs.
type unimplementedBackend struct{}

func (unimplementedBackend) InstallKey(elf []byte) (hash.Hash, error) {
	return hash.Hash{}, errUnimplemented
}

func (unimplementedBackend) Prove(identifier hash.Hash, witnessesBase64 string) (string, string, error) {
	return "", "", errUnimplemented
}

func (unimplementedBackend) VerifyingKey(identifier hash.Hash) (string, error) {
	return "", errUnimplemented
}

var errUnimplemented = flagError("proverpool: no proving backend configured")

type flagError string

func (e flagError) Error() string { return string(e) }
