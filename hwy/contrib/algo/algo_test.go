// Copyright 2025 go-highway Authors
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

package algo

import (
	"testing"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/parallel"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// fullLadder reports every tier and feature regardless of the host CPU, so
// the vector routines run everywhere.
var fullLadder = hwy.CapabilitySet{
	Vendor:       "test",
	LogicalCores: 4,
	Tiers: [hwy.NumTiers]hwy.TierFeatures{
		{Available: true},
		{Available: true, PopCount: true, Int64Lanes: true},
		{Available: true, FMA: true},
		{Available: true},
	},
}

type namedEngine struct {
	name string
	e    *parallel.Engine
}

// engineFor returns an engine that dispatches against caps.
func engineFor(t testing.TB, pool *workerpool.Pool, workers int, caps hwy.CapabilitySet) *parallel.Engine {
	t.Helper()
	if pool == nil {
		pool = workerpool.New(4)
		t.Cleanup(pool.Close)
	}
	return parallel.New(
		parallel.WithPool(pool),
		parallel.WithWorkers(workers),
		parallel.WithCapabilities(caps),
		parallel.WithLogger(parallel.NoopLogger()),
	)
}

// engines returns engines covering every tier cap plus the detected host
// ladder, all sharing one pool.
func engines(t testing.TB, workers int) []namedEngine {
	t.Helper()
	pool := workerpool.New(4)
	t.Cleanup(pool.Close)

	return []namedEngine{
		{"scalar", engineFor(t, pool, workers, fullLadder.Capped(hwy.TierScalar))},
		{"128", engineFor(t, pool, workers, fullLadder.Capped(hwy.Tier128))},
		{"256", engineFor(t, pool, workers, fullLadder.Capped(hwy.Tier256))},
		{"512", engineFor(t, pool, workers, fullLadder)},
		{"host", engineFor(t, pool, workers, hwy.Detect())},
	}
}
