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
	"math"
	"unsafe"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/parallel"
)

// Sum returns the sum of x computed in parallel, widened to int64.
//
// 8-bit and 16-bit inputs accumulate in int32 lanes on the vector tiers, the
// way the hardware widens them. A lane can then overflow once a segment holds
// more than ExactSumLimit[T]() elements, and the result diverges from the
// scalar path. Callers that need exact sums beyond that length should use
// SumScalar. Wider inputs accumulate in int64 lanes and wrap identically to
// the scalar path.
func Sum[T hwy.Integers](e *parallel.Engine, x []T) (int64, error) {
	return parallel.Reduce(engineOrDefault(e), "sum", len(x), nil, sumLadder(x))
}

// SumScalar is Sum restricted to the scalar tier. It is exact for every input
// length, up to int64 wraparound.
func SumScalar[T hwy.Integers](e *parallel.Engine, x []T) (int64, error) {
	return Sum(engineOrDefault(e).ScalarOnly(), x)
}

// ExactSumLimit returns the longest input for which Sum agrees with
// SumScalar on every tier.
func ExactSumLimit[T hwy.Integers]() int {
	if !narrow[T]() {
		return math.MaxInt
	}
	return math.MaxInt32 / maxAbs[T]()
}

func narrow[T hwy.Integers]() bool {
	var zero T
	return unsafe.Sizeof(zero) <= 2
}

// maxAbs returns the largest magnitude a T can hold.
func maxAbs[T hwy.Integers]() int {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	if ^zero > 0 { // unsigned
		return 1<<bits - 1
	}
	return 1 << (bits - 1)
}

func sumLadder[T hwy.Integers](x []T) parallel.Ladder[int64] {
	req := hwy.FeatureInt64Lanes
	build := sumLanes[T, int64]
	if narrow[T]() {
		req = hwy.FeatureNone
		build = sumLanes[T, int32]
	}
	return parallel.Ladder[int64]{
		Routines: routines[T]("sum", req, func(lanes int) func(begin, end int) int64 {
			return func(begin, end int) int64 { return build(x, begin, end, lanes) }
		}),
		Scalar: func(begin, end int) int64 {
			var s int64
			for _, v := range x[begin:end] {
				s += int64(v)
			}
			return s
		},
		Combine: parallel.Sum[int64],
	}
}

// sumLanes keeps one accumulator of type A per lane and folds them at the end.
func sumLanes[T hwy.Integers, A int32 | int64](x []T, begin, end, lanes int) int64 {
	acc := hwy.Zero[A](lanes)
	for i := begin; i < end; i += lanes {
		acc = hwy.Add(acc, hwy.ConvertTo[A](hwy.Load(x[i:i+lanes])))
	}
	return hwy.ReduceSum(hwy.ConvertTo[int64](acc))
}

// SumFloat returns the sum of x computed in parallel. Every tier widens to
// float64 and carries compensated sums, so the result agrees with the scalar
// path to within one unit in the last place of T.
func SumFloat[T hwy.Floats](e *parallel.Engine, x []T) (T, error) {
	l := parallel.Ladder[compensated]{
		Routines: routines[T]("sumf", hwy.FeatureNone, func(lanes int) func(begin, end int) compensated {
			return func(begin, end int) compensated {
				sum := hwy.Zero[float64](lanes)
				errs := hwy.Zero[float64](lanes)
				for i := begin; i < end; i += lanes {
					var se hwy.Vec[float64]
					sum, se = twoSumVec(sum, loadFloat64(x[i:i+lanes]))
					errs = hwy.Add(errs, se)
				}
				return foldLanes(sum, errs)
			}
		}),
		Scalar: func(begin, end int) compensated {
			var c compensated
			for _, v := range x[begin:end] {
				c = c.add(float64(v))
			}
			return c
		},
		Combine: combineCompensated,
	}
	c, err := parallel.Reduce(engineOrDefault(e), "sumf", len(x), nil, l)
	return T(c.value()), err
}
