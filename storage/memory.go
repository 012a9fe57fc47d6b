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

package storage

import "sync"

// Memory is an in-memory Backend guarded by a single mutex. It is the
// reference implementation used by this module's tests that need a
// backend; it is not meant for production deployment.
type Memory struct {
	mu       sync.Mutex
	standard map[string][]byte
	bulk     map[string][]byte
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory Backend.
func NewMemory() *Memory {
	return &Memory{
		standard: make(map[string][]byte),
		bulk:     make(map[string][]byte),
	}
}

func compose(prefix, key []byte) string {
	// length-prefix the composed key so that no (prefix, key) pair can
	// collide with a different (prefix', key') pair that happens to
	// concatenate to the same bytes.
	buf := make([]byte, 0, 8+len(prefix)+len(key))
	buf = appendUint32(buf, uint32(len(prefix)))
	buf = append(buf, prefix...)
	buf = appendUint32(buf, uint32(len(key)))
	buf = append(buf, key...)
	return string(buf)
}

func appendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Get implements Backend.
func (m *Memory) Get(prefix, key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.standard[compose(prefix, key)]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

// Has implements Backend.
func (m *Memory) Has(prefix, key []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.standard[compose(prefix, key)]
	return ok, nil
}

// Set implements Backend.
func (m *Memory) Set(prefix, key, value []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := compose(prefix, key)
	prev, had := m.standard[k]
	m.standard[k] = cloneBytes(value)
	if !had {
		return nil, false, nil
	}
	return cloneBytes(prev), true, nil
}

// Remove implements Backend.
func (m *Memory) Remove(prefix, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.standard, compose(prefix, key))
	return nil
}

// GetBulk implements Backend.
func (m *Memory) GetBulk(prefix, key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.bulk[compose(prefix, key)]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

// SetBulk implements Backend.
func (m *Memory) SetBulk(prefix, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulk[compose(prefix, key)] = cloneBytes(value)
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
