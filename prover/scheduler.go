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
	"fmt"
	"sync"

	"github.com/valence-net/zk-coprocessor/coprocerr"
)

// Cluster is a rotating set of prover clients serving one owner (or the
// public fallback). Next rotates round-robin with wraparound.
type Cluster struct {
	mu      sync.Mutex
	clients []*Client
	next    int
}

// NewCluster wraps an already-dialed set of clients.
func NewCluster(clients ...*Client) *Cluster {
	return &Cluster{clients: clients}
}

// Next returns the next client in rotation, or an error if the cluster has
// no clients.
func (c *Cluster) Next() (*Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.clients) == 0 {
		return nil, fmt.Errorf("%w: prover: cluster has no clients", coprocerr.ErrNotFound)
	}
	client := c.clients[c.next]
	c.next = (c.next + 1) % len(c.clients)
	return client, nil
}

// Scheduler maps an owner's identity to their dedicated Cluster, falling
// back to a shared public cluster for owners without one.
type Scheduler struct {
	mu      sync.RWMutex
	byOwner map[string]*Cluster
	public  *Cluster
}

// NewScheduler constructs a Scheduler backed by the given public fallback
// cluster.
func NewScheduler(public *Cluster) *Scheduler {
	return &Scheduler{byOwner: map[string]*Cluster{}, public: public}
}

// Register binds owner to a dedicated cluster.
func (s *Scheduler) Register(owner []byte, cluster *Cluster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[string(owner)] = cluster
}

// Next returns the next client for owner's cluster, or the public cluster's
// next client if owner has none registered.
func (s *Scheduler) Next(owner []byte) (*Client, error) {
	s.mu.RLock()
	cluster, ok := s.byOwner[string(owner)]
	s.mu.RUnlock()
	if !ok {
		cluster = s.public
	}
	if cluster == nil {
		return nil, fmt.Errorf("%w: prover: no cluster available for owner", coprocerr.ErrNotFound)
	}
	return cluster.Next()
}
