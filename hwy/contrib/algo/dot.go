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

// Dot returns the dot product of a and b, computed in parallel. b must hold
// at least len(a) elements; otherwise the error matches
// parallel.ErrPrecondition.
//
// Products and sums are error-free transformations in float64: tiers with
// FMA recover each product's rounding error with one fused op, the others
// and the scalar path with Dekker's split. Every tier therefore agrees with
// the scalar path to within one unit in the last place of T. Inputs above
// about 2^996 in magnitude overflow the split.
func Dot[T hwy.Floats](e *parallel.Engine, a, b []T) (T, error) {
	dot := func(prod func(x, y hwy.Vec[float64]) (p, e hwy.Vec[float64])) func(lanes int) func(begin, end int) compensated {
		return func(lanes int) func(begin, end int) compensated {
			return func(begin, end int) compensated {
				sum := hwy.Zero[float64](lanes)
				errs := hwy.Zero[float64](lanes)
				for i := begin; i < end; i += lanes {
					p, pe := prod(loadFloat64(a[i:i+lanes]), loadFloat64(b[i:i+lanes]))
					var se hwy.Vec[float64]
					sum, se = twoSumVec(sum, p)
					errs = hwy.Add(errs, hwy.Add(pe, se))
				}
				return foldLanes(sum, errs)
			}
		}
	}

	l := parallel.Ladder[compensated]{
		// Fused routines are preferred within a tier; Widest keeps that order.
		Routines: parallel.Widest(append(
			routines[T]("dot-fma", hwy.FeatureFMA, dot(twoProdFMA)),
			routines[T]("dot", hwy.FeatureNone, dot(twoProdVec))...,
		)...),
		Scalar: func(begin, end int) compensated {
			var c compensated
			for i := begin; i < end; i++ {
				p, pe := twoProd(float64(a[i]), float64(b[i]))
				c = c.add(p)
				c.err += pe
			}
			return c
		},
		Combine: combineCompensated,
	}
	c, err := parallel.Reduce(engineOrDefault(e), "dot", len(a), parallel.MinLen(len(b), false), l)
	return T(c.value()), err
}
