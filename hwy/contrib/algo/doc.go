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

// Package algo provides data-parallel slice kernels built on the parallel
// engine.
//
// Every kernel carries one routine per vector tier plus a scalar fallback.
// At execution time each segment runs the widest routine the engine's
// capability snapshot allows and finishes its tail on the scalar path, so
// results match the scalar path on every machine (floating-point kernels up
// to rounding).
//
// Kernels:
//   - Copy, CopyTruncate: element-wise copy; strict or truncating
//   - Fill: broadcast a value into a slice
//   - Sum, SumScalar, SumFloat: reductions
//   - Count: count elements equal to a value
//   - Dot: dot product, fused where the tier has FMA
//   - PopCount: set-bit count, vectorized where the tier has popcount
//
// # Example Usage
//
//	import "github.com/ajroetker/go-lanes/hwy/contrib/algo"
//
//	func Total(x []int32) (int64, error) {
//	    return algo.Sum(nil, x) // nil selects parallel.Default()
//	}
//
// Passing a nil engine uses the process-wide default engine.
package algo
