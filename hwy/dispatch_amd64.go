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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// probeTiers fills the x86-64 ladder from CPUID via x/sys/cpu. The package
// already folds in the OS XSAVE state, so AVX flags are only set when the
// kernel preserves the wide registers.
func probeTiers(c *CapabilitySet) {
	// SSE2 is baseline for amd64
	c.Tiers[Tier128] = TierFeatures{
		Available:  cpu.X86.HasSSE2,
		PopCount:   cpu.X86.HasPOPCNT,
		Int64Lanes: cpu.X86.HasSSE2,
	}

	// AVX without AVX2 has no 256-bit integer ops; treat it as 128-bit.
	c.Tiers[Tier256] = TierFeatures{
		Available: cpu.X86.HasAVX2,
		FMA:       cpu.X86.HasFMA,
	}

	// Our wide kernels need byte/word lanes, so BW is required next to F.
	// PopCount and 64-bit lanes come from Tier128 through Normalized: POPCNT
	// and SSE2 already guarantee them, whatever VPOPCNTDQ and DQ report.
	c.Tiers[Tier512] = TierFeatures{
		Available: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	}
}
