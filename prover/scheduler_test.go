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

	"github.com/stretchr/testify/require"
)

func TestClusterRotatesRoundRobinWithWraparound(t *testing.T) {
	a, b, c := &Client{}, &Client{}, &Client{}
	cluster := NewCluster(a, b, c)

	for _, want := range []*Client{a, b, c, a, b} {
		got, err := cluster.Next()
		require.NoError(t, err)
		require.Same(t, want, got)
	}
}

func TestClusterNextErrorsWhenEmpty(t *testing.T) {
	cluster := NewCluster()
	_, err := cluster.Next()
	require.Error(t, err)
}

func TestSchedulerFallsBackToPublicCluster(t *testing.T) {
	pub := &Client{}
	sched := NewScheduler(NewCluster(pub))

	got, err := sched.Next([]byte("unregistered-owner"))
	require.NoError(t, err)
	require.Same(t, pub, got)
}

func TestSchedulerPrefersRegisteredOwnerCluster(t *testing.T) {
	owned, pub := &Client{}, &Client{}
	sched := NewScheduler(NewCluster(pub))
	sched.Register([]byte("alice"), NewCluster(owned))

	got, err := sched.Next([]byte("alice"))
	require.NoError(t, err)
	require.Same(t, owned, got)

	got, err = sched.Next([]byte("bob"))
	require.NoError(t, err)
	require.Same(t, pub, got)
}
