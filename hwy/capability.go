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

package hwy

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Feature is an auxiliary arithmetic capability attached to a tier.
type Feature int

const (
	// FeatureNone is satisfied by every available tier.
	FeatureNone Feature = iota

	// FeatureFMA indicates fused multiply-add.
	FeatureFMA

	// FeaturePopCount indicates a hardware population count.
	FeaturePopCount

	// FeatureInt64Lanes indicates full-width 64-bit integer lane arithmetic.
	FeatureInt64Lanes
)

// String returns a human-readable name for the feature.
func (f Feature) String() string {
	switch f {
	case FeatureNone:
		return "none"
	case FeatureFMA:
		return "fma"
	case FeaturePopCount:
		return "popcount"
	case FeatureInt64Lanes:
		return "int64lanes"
	default:
		return "unknown"
	}
}

// TierFeatures records what one rung of the ladder offers.
type TierFeatures struct {
	Available  bool
	FMA        bool
	PopCount   bool
	Int64Lanes bool
}

func (f TierFeatures) has(feat Feature) bool {
	switch feat {
	case FeatureNone:
		return true
	case FeatureFMA:
		return f.FMA
	case FeaturePopCount:
		return f.PopCount
	case FeatureInt64Lanes:
		return f.Int64Lanes
	default:
		return false
	}
}

// union ORs the feature flags of o into f. Availability is left alone.
func (f TierFeatures) union(o TierFeatures) TierFeatures {
	f.FMA = f.FMA || o.FMA
	f.PopCount = f.PopCount || o.PopCount
	f.Int64Lanes = f.Int64Lanes || o.Int64Lanes
	return f
}

// CapabilitySet is an immutable snapshot of the running CPU.
//
// The ladder is monotone: when a tier is available every narrower tier is
// available too, and every feature of a narrower tier is also reported by
// the wider one. Values returned by Detect, Scalar and Capped always satisfy
// this; sets built by hand should go through Normalized.
type CapabilitySet struct {
	Vendor        string
	Brand         string
	Arch          string
	LogicalCores  int
	PhysicalCores int

	// Tiers is indexed by Tier. Tiers[TierScalar].Available is always true.
	Tiers [NumTiers]TierFeatures
}

var detected = sync.OnceValue(detect)

// Detect returns the process-wide capability snapshot. The CPU is probed on
// the first call only; every later call returns the same value.
func Detect() CapabilitySet {
	return detected()
}

func detect() CapabilitySet {
	c := CapabilitySet{Arch: runtime.GOARCH}
	identify(&c)

	c.Tiers[TierScalar].Available = true

	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		return c
	}

	probeTiers(&c)
	c = c.Normalized()

	if maxTier, ok := MaxTierEnv(); ok {
		c = c.Capped(maxTier)
	}
	return c
}

// identify fills the vendor, brand and core counts. cpuid reports zero cores
// on architectures it cannot probe; runtime.NumCPU covers those.
func identify(c *CapabilitySet) {
	c.Vendor = cpuid.CPU.VendorString
	c.Brand = cpuid.CPU.BrandName
	c.LogicalCores = cpuid.CPU.LogicalCores
	c.PhysicalCores = cpuid.CPU.PhysicalCores

	if c.Vendor == "" {
		c.Vendor = "unknown"
	}
	if c.LogicalCores <= 0 {
		c.LogicalCores = runtime.NumCPU()
	}
	if c.PhysicalCores <= 0 {
		c.PhysicalCores = c.LogicalCores
	}
}

// Scalar returns a snapshot with only the scalar tier available. Identity
// fields are copied from the detected snapshot.
func Scalar() CapabilitySet {
	return Detect().Capped(TierScalar)
}

// Normalized returns a copy of c with the monotone ladder restored: the
// available tiers form a prefix starting at TierScalar, unavailable tiers
// carry no features, and available tiers inherit the features of the
// narrower ones.
func (c CapabilitySet) Normalized() CapabilitySet {
	c.Tiers[TierScalar].Available = true
	broken := false
	for t := Tier128; int(t) < NumTiers; t++ {
		if broken || !c.Tiers[t].Available {
			broken = true
			c.Tiers[t] = TierFeatures{}
			continue
		}
		c.Tiers[t] = c.Tiers[t].union(c.Tiers[t-1])
	}
	return c
}

// Capped returns a copy of c with every tier wider than maxTier removed.
func (c CapabilitySet) Capped(maxTier Tier) CapabilitySet {
	for t := maxTier + 1; int(t) < NumTiers; t++ {
		if t <= TierScalar {
			continue
		}
		c.Tiers[t] = TierFeatures{}
	}
	return c
}

// Supports reports whether tier t is available.
func (c CapabilitySet) Supports(t Tier) bool {
	if t < TierScalar || int(t) >= NumTiers {
		return false
	}
	return c.Tiers[t].Available
}

// Has reports whether tier t is available and offers feat.
func (c CapabilitySet) Has(t Tier, feat Feature) bool {
	return c.Supports(t) && c.Tiers[t].has(feat)
}

// Best returns the widest available tier.
func (c CapabilitySet) Best() Tier {
	best := TierScalar
	for t := Tier128; int(t) < NumTiers; t++ {
		if !c.Tiers[t].Available {
			break
		}
		best = t
	}
	return best
}

// Monotone reports whether c satisfies the ladder invariant.
func (c CapabilitySet) Monotone() bool {
	return c == c.Normalized()
}
