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
	"math"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/valence-net/zk-coprocessor/hash"
)

// PoolConfig parameterizes the scaling loop.
type PoolConfig struct {
	// MinWorkers is the floor the pool always tops up to.
	MinWorkers int
	// MaxWorkers bounds how many workers the pool will ever run at once.
	MaxWorkers int
	// TargetQueueSize is the backlog the scaling loop tries to hold steady.
	TargetQueueSize int
	// Gradient scales the proportional response to queue-length error.
	Gradient float64
	// Frequency is how often the scaling loop runs.
	Frequency time.Duration
	// CacheCapacity sizes the shared KeysCache (clamped to
	// MinCacheCapacity).
	CacheCapacity int
}

// DefaultPoolConfig matches the scaling model's defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinWorkers:      1,
		MaxWorkers:      16,
		TargetQueueSize: 2,
		Gradient:        0.1,
		Frequency:       600 * time.Second,
		CacheCapacity:   MinCacheCapacity,
	}
}

// Pool is the single coordinator dispatching accepted connections to a
// dynamically scaled set of workers over an unbounded queue.
type Pool struct {
	cfg     PoolConfig
	hasher  hash.Hasher
	secret  []byte
	backend Backend
	cache   *KeysCache
	queue   *taskQueue

	group   *errgroup.Group
	nextID  int64
	workers int64
	killing int64

	stopScaling chan struct{}
}

// NewPool constructs a Pool. Call Start to launch its workers and scaling
// loop.
func NewPool(cfg PoolConfig, hasher hash.Hasher, secret []byte, backend Backend) *Pool {
	return &Pool{
		cfg:         cfg,
		hasher:      hasher,
		secret:      secret,
		backend:     backend,
		cache:       NewKeysCache(cfg.CacheCapacity),
		queue:       newTaskQueue(),
		group:       &errgroup.Group{},
		stopScaling: make(chan struct{}),
	}
}

// Start spawns the minimum worker count and launches the scaling loop on a
// dedicated background goroutine.
func (p *Pool) Start() {
	p.scaleUp(p.cfg.MinWorkers)
	go p.scalingLoop()
}

// Submit hands an accepted, not-yet-handshaken connection to the pool.
func (p *Pool) Submit(conn *websocket.Conn) {
	p.queue.push(task{conn: conn})
}

// QueueLen reports the current backlog.
func (p *Pool) QueueLen() int {
	return p.queue.len()
}

// WorkerCount reports the current live worker count.
func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.workers)
}

// Shutdown stops the scaling loop, closes the task queue so idle workers
// return, and waits for every in-flight worker to finish.
func (p *Pool) Shutdown() error {
	close(p.stopScaling)
	p.queue.close()
	return p.group.Wait()
}

func (p *Pool) scaleUp(n int) {
	for i := 0; i < n; i++ {
		id := atomic.AddInt64(&p.nextID, 1)
		atomic.AddInt64(&p.workers, 1)
		w := &worker{
			id:      int(id),
			hasher:  p.hasher,
			secret:  p.secret,
			backend: p.backend,
			cache:   p.cache,
			queue:   p.queue,
			onQuitAck: func() {
				atomic.AddInt64(&p.killing, -1)
			},
		}
		p.group.Go(func() error {
			defer atomic.AddInt64(&p.workers, -1)
			w.run()
			return nil
		})
	}
}

func (p *Pool) scaleDown(n int) {
	pending := atomic.LoadInt64(&p.killing)
	toKill := n - int(pending)
	if toKill <= 0 {
		return
	}
	atomic.AddInt64(&p.killing, int64(toKill))
	for i := 0; i < toKill; i++ {
		p.queue.push(task{quit: true})
	}
}

func (p *Pool) scalingLoop() {
	ticker := time.NewTicker(p.cfg.Frequency)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopScaling:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick runs one scaling decision. It is separate from scalingLoop so tests
// in this package can drive the loop deterministically instead of waiting
// on the real ticker.
func (p *Pool) tick() {
	current := atomic.LoadInt64(&p.workers)
	if int(current) < p.cfg.MinWorkers {
		p.scaleUp(p.cfg.MinWorkers - int(current))
		return
	}

	qerr := p.queue.len() - p.cfg.TargetQueueSize
	delta := int(math.Round(p.cfg.Gradient * float64(qerr)))

	if delta > 0 {
		room := p.cfg.MaxWorkers - int(current)
		if delta > room {
			delta = room
		}
		if delta > 0 {
			p.scaleUp(delta)
		}
		return
	}
	if delta < 0 {
		p.scaleDown(-delta)
	}
}
