//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

// probeTiers fills the arm64 ladder.
//
// ARM64 (AArch64) always has NEON (ASIMD) available, it's part of the
// ARMv8-A base architecture. NEON provides fmla for fused multiply-add and
// cnt for per-byte population count.
//
// SVE is not mapped to Tier256: x/sys/cpu reports presence but not the
// vector length, which may be as small as 128 bits.
func probeTiers(c *CapabilitySet) {
	c.Tiers[Tier128] = TierFeatures{
		Available:  cpu.ARM64.HasASIMD,
		FMA:        cpu.ARM64.HasASIMD && cpu.ARM64.HasFP,
		PopCount:   cpu.ARM64.HasASIMD,
		Int64Lanes: cpu.ARM64.HasASIMD,
	}
}
