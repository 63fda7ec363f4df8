package hwy

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain prints the detected ladder so CI logs show which tiers the
// kernels actually ran on.
func TestMain(m *testing.M) {
	caps := Detect()
	fmt.Printf("=== Capability Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("HWY_NO_SIMD=%q HWY_MAX_TIER=%q\n", os.Getenv("HWY_NO_SIMD"), os.Getenv("HWY_MAX_TIER"))
	fmt.Printf("Vendor=%s Brand=%q Cores=%d/%d\n", caps.Vendor, caps.Brand, caps.LogicalCores, caps.PhysicalCores)
	for t := TierScalar; int(t) < NumTiers; t++ {
		fmt.Printf("  %-7s %+v\n", t, caps.Tiers[t])
	}
	fmt.Printf("Best tier: %s\n", caps.Best())
	fmt.Printf("==============================\n\n")

	os.Exit(m.Run())
}

func TestDetectCached(t *testing.T) {
	a := Detect()
	b := Detect()
	assert.Equal(t, a, b)
	assert.True(t, a.Tiers[TierScalar].Available)
	assert.Positive(t, a.LogicalCores)
	assert.NotEmpty(t, a.Vendor)
	assert.Equal(t, runtime.GOARCH, a.Arch)
}

func TestDetectMonotone(t *testing.T) {
	caps := Detect()
	require.True(t, caps.Monotone(), "detected ladder is not monotone: %+v", caps.Tiers)

	for wide := Tier128; int(wide) < NumTiers; wide++ {
		if !caps.Supports(wide) {
			continue
		}
		for narrow := TierScalar; narrow < wide; narrow++ {
			assert.True(t, caps.Supports(narrow), "%s available but %s is not", wide, narrow)
			for _, f := range []Feature{FeatureFMA, FeaturePopCount, FeatureInt64Lanes} {
				if caps.Has(narrow, f) {
					assert.True(t, caps.Has(wide, f), "%s has %s but %s does not", narrow, f, wide)
				}
			}
		}
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   [NumTiers]TierFeatures
		want [NumTiers]TierFeatures
	}{
		{
			name: "gap drops wider tiers",
			in: [NumTiers]TierFeatures{
				{Available: true},
				{Available: false, PopCount: true},
				{Available: true, FMA: true},
				{Available: true},
			},
			want: [NumTiers]TierFeatures{
				{Available: true},
				{},
				{},
				{},
			},
		},
		{
			name: "features inherited upward",
			in: [NumTiers]TierFeatures{
				{Available: true},
				{Available: true, PopCount: true, Int64Lanes: true},
				{Available: true, FMA: true},
				{Available: false, PopCount: true},
			},
			want: [NumTiers]TierFeatures{
				{Available: true},
				{Available: true, PopCount: true, Int64Lanes: true},
				{Available: true, FMA: true, PopCount: true, Int64Lanes: true},
				{},
			},
		},
		{
			name: "wide tier without its own popcount probe",
			in: [NumTiers]TierFeatures{
				{Available: true},
				{Available: true, PopCount: true, Int64Lanes: true},
				{Available: true, FMA: true},
				{Available: true},
			},
			want: [NumTiers]TierFeatures{
				{Available: true},
				{Available: true, PopCount: true, Int64Lanes: true},
				{Available: true, FMA: true, PopCount: true, Int64Lanes: true},
				{Available: true, FMA: true, PopCount: true, Int64Lanes: true},
			},
		},
		{
			name: "scalar forced available",
			in:   [NumTiers]TierFeatures{},
			want: [NumTiers]TierFeatures{{Available: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapabilitySet{Tiers: tt.in}.Normalized()
			assert.Equal(t, tt.want, got.Tiers)
			assert.True(t, got.Monotone())
		})
	}
}

func TestCapped(t *testing.T) {
	full := CapabilitySet{Tiers: [NumTiers]TierFeatures{
		{Available: true},
		{Available: true, PopCount: true},
		{Available: true, PopCount: true, FMA: true},
		{Available: true, PopCount: true, FMA: true},
	}}

	assert.Equal(t, Tier512, full.Best())
	assert.Equal(t, Tier256, full.Capped(Tier256).Best())
	assert.Equal(t, TierScalar, full.Capped(TierScalar).Best())
	assert.False(t, full.Capped(Tier128).Has(Tier256, FeatureFMA))
	assert.True(t, full.Capped(Tier128).Has(Tier128, FeaturePopCount))
	assert.True(t, full.Capped(Tier128).Monotone())

	// the receiver is a value; capping never touches the original
	assert.Equal(t, Tier512, full.Best())
}

func TestScalar(t *testing.T) {
	s := Scalar()
	assert.Equal(t, TierScalar, s.Best())
	assert.True(t, s.Supports(TierScalar))
	assert.False(t, s.Supports(Tier128))
	assert.Equal(t, Detect().LogicalCores, s.LogicalCores)
}

func TestSupportsOutOfRange(t *testing.T) {
	caps := Detect()
	assert.False(t, caps.Supports(Tier(-1)))
	assert.False(t, caps.Supports(Tier(NumTiers)))
	assert.False(t, caps.Has(Tier(NumTiers), FeatureNone))
}

func TestDetectNoSimdEnv(t *testing.T) {
	t.Setenv("HWY_NO_SIMD", "1")
	c := detect()
	assert.Equal(t, TierScalar, c.Best())
	assert.True(t, c.Monotone())
}

func TestDetectMaxTierEnv(t *testing.T) {
	t.Setenv("HWY_NO_SIMD", "")
	t.Setenv("HWY_MAX_TIER", "128")
	c := detect()
	assert.LessOrEqual(t, int(c.Best()), int(Tier128))
	assert.True(t, c.Monotone())
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.val), func(t *testing.T) {
			t.Setenv("HWY_NO_SIMD", tt.val)
			assert.Equal(t, tt.want, NoSimdEnv())
		})
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
		ok   bool
	}{
		{"scalar", TierScalar, true},
		{"128", Tier128, true},
		{" AVX2 ", Tier256, true},
		{"512bit", Tier512, true},
		{"1024", TierScalar, false},
	}
	for _, tt := range tests {
		got, ok := ParseTier(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTierWidth(t *testing.T) {
	assert.Equal(t, 0, TierScalar.Width())
	assert.Equal(t, 16, Tier128.Width())
	assert.Equal(t, 32, Tier256.Width())
	assert.Equal(t, 64, Tier512.Width())
	assert.Equal(t, Tier256, Tier512.Narrower())
	assert.Equal(t, TierScalar, TierScalar.Narrower())
	assert.Equal(t, "unknown", Tier(42).String())
}

func TestLanesFor(t *testing.T) {
	assert.Equal(t, 1, LanesFor[float32](TierScalar))
	assert.Equal(t, 4, LanesFor[float32](Tier128))
	assert.Equal(t, 8, LanesFor[float32](Tier256))
	assert.Equal(t, 4, LanesFor[float64](Tier256))
	assert.Equal(t, 64, LanesFor[int8](Tier512))
	assert.Equal(t, 8, LanesFor[uint64](Tier512))
	assert.Positive(t, MaxLanes[int32]())
}

func TestDetectWideTierInheritsFeatures(t *testing.T) {
	caps := Detect()
	if !caps.Supports(Tier512) {
		t.Skip("no 512-bit tier on this CPU")
	}
	assert.Equal(t, caps.Has(Tier128, FeaturePopCount), caps.Has(Tier512, FeaturePopCount))
	assert.Equal(t, caps.Has(Tier128, FeatureInt64Lanes), caps.Has(Tier512, FeatureInt64Lanes))
}
