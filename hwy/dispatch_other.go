//go:build !amd64 && !arm64

package hwy

// probeTiers leaves only the scalar tier on architectures without feature
// probing. Future implementations may add:
// - wasm: SIMD128 support
// - riscv64: Vector extension support
func probeTiers(*CapabilitySet) {}
