package hwy

import (
	"os"
	"strconv"
	"strings"
)

// Tier is one rung of the vector-width ladder. Tiers are ordered: a higher
// value is a wider register file, and TierScalar is always available.
type Tier int

const (
	// TierScalar indicates no SIMD, pure Go implementation.
	TierScalar Tier = iota

	// Tier128 indicates 128-bit vectors (SSE2 on x86-64, NEON on arm64).
	Tier128

	// Tier256 indicates 256-bit vectors (AVX2 on x86-64, 256-bit SVE on arm64).
	Tier256

	// Tier512 indicates 512-bit vectors (AVX-512 F+BW on x86-64).
	Tier512

	// NumTiers is the number of rungs in the ladder.
	NumTiers = int(Tier512) + 1
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case Tier128:
		return "128bit"
	case Tier256:
		return "256bit"
	case Tier512:
		return "512bit"
	default:
		return "unknown"
	}
}

// Width returns the register width in bytes for the tier.
// For example: 16 for Tier128, 32 for Tier256, 64 for Tier512.
// TierScalar reports 0: it processes one element at a time.
func (t Tier) Width() int {
	switch t {
	case Tier128:
		return 16
	case Tier256:
		return 32
	case Tier512:
		return 64
	default:
		return 0
	}
}

// Narrower returns the next tier down the ladder, or TierScalar.
func (t Tier) Narrower() Tier {
	if t <= TierScalar {
		return TierScalar
	}
	return t - 1
}

// ParseTier parses the names accepted by HWY_MAX_TIER.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "none", "0":
		return TierScalar, true
	case "128", "128bit", "sse2", "neon":
		return Tier128, true
	case "256", "256bit", "avx2":
		return Tier256, true
	case "512", "512bit", "avx512":
		return Tier512, true
	default:
		return TierScalar, false
	}
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, detection reports a scalar-only ladder regardless of CPU
// capabilities. This is useful for testing and debugging.
func NoSimdEnv() bool {
	return envBool("HWY_NO_SIMD")
}

// MaxTierEnv returns the ceiling requested through HWY_MAX_TIER.
// ok is false when the variable is unset or does not name a tier.
func MaxTierEnv() (t Tier, ok bool) {
	val := os.Getenv("HWY_MAX_TIER")
	if val == "" {
		return TierScalar, false
	}
	return ParseTier(val)
}

func envBool(name string) bool {
	val := os.Getenv(name)
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
