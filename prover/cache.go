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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/valence-net/zk-coprocessor/hash"
)

// MinCacheCapacity is the floor every KeysCache capacity is clamped to.
const MinCacheCapacity = 5

// KeysCache is the LRU of installed proving keys shared by every Worker in
// a Pool: one mutex for the whole cache, held only during lookup/insert (the
// underlying lru.Cache already serializes its own operations).
type KeysCache struct {
	cache *lru.Cache[hash.Hash, []byte]
}

// NewKeysCache returns a KeysCache with capacity clamped to at least
// MinCacheCapacity.
func NewKeysCache(capacity int) *KeysCache {
	if capacity < MinCacheCapacity {
		capacity = MinCacheCapacity
	}
	c, err := lru.New[hash.Hash, []byte](capacity)
	if err != nil {
		// Only returned by lru.New for a non-positive size, which the clamp
		// above rules out.
		panic(err)
	}
	return &KeysCache{cache: c}
}

// Install pushes identifier's proving key bytes into the cache, evicting the
// least-recently-used entry if the cache is full.
func (k *KeysCache) Install(identifier hash.Hash, provingKey []byte) {
	k.cache.Add(identifier, provingKey)
}

// Lookup returns identifier's proving key bytes and promotes it to
// most-recently-used, or reports false if not cached.
func (k *KeysCache) Lookup(identifier hash.Hash) ([]byte, bool) {
	return k.cache.Get(identifier)
}
