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

import "github.com/ajroetker/go-lanes/hwy"

// compensated is a float64 running sum together with the rounding error of
// every addition folded into it (Neumaier summation). Float reductions carry
// it on every tier, scalar included, so all tiers round once at the end and
// agree to within one unit in the last place.
type compensated struct {
	sum, err float64
}

// add folds x into c.
func (c compensated) add(x float64) compensated {
	s, e := twoSum(c.sum, x)
	return compensated{sum: s, err: c.err + e}
}

// value returns the rounded total.
func (c compensated) value() float64 {
	return c.sum + c.err
}

func combineCompensated(a, b compensated) compensated {
	s, e := twoSum(a.sum, b.sum)
	return compensated{sum: s, err: a.err + b.err + e}
}

// twoSum returns s = fl(a+b) and the exact error e with a+b = s+e.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

// splitter is 2^27+1; it cuts a float64 into two 26-bit halves.
const splitter = 1<<27 + 1

// twoProd returns p = fl(a*b) and the exact error e with a*b = p+e, without
// FMA (Dekker). It overflows for |a| or |b| above about 2^996.
func twoProd(a, b float64) (p, e float64) {
	p = float64(a * b)
	ah, al := split(a)
	bh, bl := split(b)
	e = ((ah*bh - p) + ah*bl + al*bh) + al*bl
	return p, e
}

func split(a float64) (hi, lo float64) {
	c := float64(splitter * a)
	hi = c - (c - a)
	lo = a - hi
	return hi, lo
}

// Vector forms of the same transformations, lane by lane.

func twoSumVec(a, b hwy.Vec[float64]) (s, e hwy.Vec[float64]) {
	s = hwy.Add(a, b)
	bb := hwy.Sub(s, a)
	e = hwy.Add(hwy.Sub(a, hwy.Sub(s, bb)), hwy.Sub(b, bb))
	return s, e
}

func twoProdVec(a, b hwy.Vec[float64]) (p, e hwy.Vec[float64]) {
	p = hwy.Mul(a, b)
	ah, al := splitVec(a)
	bh, bl := splitVec(b)
	e = hwy.Sub(hwy.Mul(ah, bh), p)
	e = hwy.Add(e, hwy.Mul(ah, bl))
	e = hwy.Add(e, hwy.Mul(al, bh))
	e = hwy.Add(e, hwy.Mul(al, bl))
	return p, e
}

// twoProdFMA is twoProd on tiers with fused multiply-add: the error term is
// a single FMA.
func twoProdFMA(a, b hwy.Vec[float64]) (p, e hwy.Vec[float64]) {
	p = hwy.Mul(a, b)
	e = hwy.FMA(a, b, hwy.Neg(p))
	return p, e
}

func splitVec(a hwy.Vec[float64]) (hi, lo hwy.Vec[float64]) {
	c := hwy.Mul(hwy.Set(a.NumLanes(), float64(splitter)), a)
	hi = hwy.Sub(c, hwy.Sub(c, a))
	lo = hwy.Sub(a, hi)
	return hi, lo
}

// foldLanes folds per-lane sums and errors into one value, in lane order.
func foldLanes(sum, err hwy.Vec[float64]) compensated {
	var c compensated
	errs := err.Data()
	for i, s := range sum.Data() {
		c = combineCompensated(c, compensated{sum: s, err: errs[i]})
	}
	return c
}

// loadFloat64 loads one register of x widened to float64 lanes. float32
// values widen exactly.
func loadFloat64[T hwy.Floats](x []T) hwy.Vec[float64] {
	return hwy.ConvertTo[float64](hwy.Load(x))
}
