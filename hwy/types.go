// Package hwy detects which vector-width tiers the running CPU supports.
//
// The detected snapshot is a ladder: scalar, 128-bit, 256-bit and 512-bit
// tiers, each carrying auxiliary feature flags (FMA, hardware popcount,
// 64-bit integer lanes). Kernels read the ladder at execution time and run
// the widest routine they have for it, falling back to scalar code.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-lanes/hwy"
//
//	caps := hwy.Detect()
//	if caps.Has(hwy.Tier256, hwy.FeatureFMA) {
//	    // use the 256-bit fused routine
//	}
//	lanes := hwy.LanesFor[float32](caps.Best())
//
// Tier routines are written on the portable vector ops. A Vec holds one
// register of the routine's tier:
//
//	acc := hwy.Zero[float32](lanes)
//	for i := 0; i+lanes <= len(x); i += lanes {
//	    acc = hwy.Add(acc, hwy.Load(x[i:i+lanes]))
//	}
//	total := hwy.ReduceSum(acc)
//
// Detection honours two environment variables, read once:
//
//	HWY_NO_SIMD=1       report a scalar-only ladder
//	HWY_MAX_TIER=256    cap the ladder at the named tier
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}
