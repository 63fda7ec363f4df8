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
	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/parallel"
)

// Count returns the number of elements of x equal to value, computed in
// parallel.
func Count[T hwy.Lanes](e *parallel.Engine, x []T, value T) (int, error) {
	l := parallel.Ladder[int]{
		Routines: routines[T]("count", hwy.FeatureNone, func(lanes int) func(begin, end int) int {
			return func(begin, end int) int {
				v := hwy.Set(lanes, value)
				n := 0
				for i := begin; i < end; i += lanes {
					n += hwy.Equal(hwy.Load(x[i:i+lanes]), v).CountTrue()
				}
				return n
			}
		}),
		Scalar: func(begin, end int) int {
			n := 0
			for _, v := range x[begin:end] {
				if v == value {
					n++
				}
			}
			return n
		},
		Combine: parallel.Sum[int],
	}
	return parallel.Reduce(engineOrDefault(e), "count", len(x), nil, l)
}

// PopCount returns the number of set bits across words, computed in
// parallel. Vector routines need a hardware population count; without one
// every segment runs the scalar bit loop.
func PopCount(e *parallel.Engine, words []uint64) (int, error) {
	l := parallel.Ladder[int]{
		Routines: routines[uint64]("popcount", hwy.FeaturePopCount, func(lanes int) func(begin, end int) int {
			return func(begin, end int) int {
				acc := hwy.Zero[uint64](lanes)
				for i := begin; i < end; i += lanes {
					acc = hwy.Add(acc, hwy.PopCount(hwy.Load(words[i:i+lanes])))
				}
				return int(hwy.ReduceSum(acc))
			}
		}),
		Scalar: func(begin, end int) int {
			n := 0
			for _, w := range words[begin:end] {
				for ; w != 0; w &= w - 1 {
					n++
				}
			}
			return n
		},
		Combine: parallel.Sum[int],
	}
	return parallel.Reduce(engineOrDefault(e), "popcount", len(words), nil, l)
}
