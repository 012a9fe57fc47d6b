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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskQueuePushPopOrdering(t *testing.T) {
	q := newTaskQueue()
	q.push(task{quit: true})
	q.push(task{quit: false})

	require.Equal(t, 2, q.len())

	first, ok := q.pop()
	require.True(t, ok)
	require.True(t, first.quit)

	second, ok := q.pop()
	require.True(t, ok)
	require.False(t, second.quit)

	require.Equal(t, 0, q.len())
}

func TestTaskQueuePopBlocksUntilPush(t *testing.T) {
	q := newTaskQueue()
	done := make(chan task, 1)
	go func() {
		t, _ := q.pop()
		done <- t
	}()

	select {
	case <-done:
		t.Fatal("pop returned before any push")
	case <-time.After(20 * time.Millisecond):
	}

	q.push(task{quit: true})
	select {
	case got := <-done:
		require.True(t, got.quit)
	case <-time.After(time.Second):
		t.Fatal("pop never returned after push")
	}
}

func TestTaskQueueCloseUnblocksPop(t *testing.T) {
	q := newTaskQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.pop()
		done <- ok
	}()

	q.close()
	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("pop never returned after close")
	}
}
