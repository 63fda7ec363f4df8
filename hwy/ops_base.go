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

package hwy

import (
	"math"
	"math/bits"
)

// This file provides the pure Go implementations of the vector operations.
// Each op works lane by lane over a register-sized Vec; the compiler keeps
// the fixed-size lane array on the stack.

// Load creates a vector from the first len(src) elements of src, up to
// MaxVecLanes. Routines pass exactly one register's worth of elements.
func Load[T Lanes](src []T) Vec[T] {
	var v Vec[T]
	v.n = copy(v.data[:], src)
	return v
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	copy(dst, v.data[:v.n])
}

// Set creates a vector of the given lane count with all lanes set to value.
func Set[T Lanes](lanes int, value T) Vec[T] {
	v := Zero[T](lanes)
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Zero creates a vector of the given lane count with all lanes set to zero.
func Zero[T Lanes](lanes int) Vec[T] {
	return Vec[T]{n: min(max(lanes, 0), MaxVecLanes)}
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] + b.data[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] - b.data[i]
	}
	return r
}

// Mul performs element-wise multiplication. Each product is rounded to T;
// the compiler never fuses it into a following Add.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = T(a.data[i] * b.data[i])
	}
	return r
}

// Neg negates every lane.
func Neg[T Lanes](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range r.n {
		r.data[i] = -v.data[i]
	}
	return r
}

// MulAdd computes a*b + c with the product rounded before the addition.
func MulAdd[T Lanes](a, b, c Vec[T]) Vec[T] {
	return Add(Mul(a, b), c)
}

// FMA performs fused multiply-add: a*b + c rounded once.
// Only call it from routines gated on FeatureFMA.
func FMA[T Floats](a, b, c Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n, c.n)}
	for i := range r.n {
		r.data[i] = T(math.FMA(float64(a.data[i]), float64(b.data[i]), float64(c.data[i])))
	}
	return r
}

// ConvertTo converts every lane of v to type D. Narrow-to-wide integer
// conversions sign or zero extend as Go conversions do.
func ConvertTo[D, T Lanes](v Vec[T]) Vec[D] {
	r := Vec[D]{n: v.n}
	for i := range r.n {
		r.data[i] = D(v.data[i])
	}
	return r
}

// PopCount returns the number of set bits in each lane.
func PopCount[T UnsignedInts](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range r.n {
		r.data[i] = T(bits.OnesCount64(uint64(v.data[i])))
	}
	return r
}

// ReduceSum sums all lanes.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for i := range v.n {
		sum += v.data[i]
	}
	return sum
}

// Equal performs element-wise equality comparison.
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	m := Mask[T]{n: min(a.n, b.n)}
	for i := range m.n {
		if a.data[i] == b.data[i] {
			m.bits |= 1 << uint(i)
		}
	}
	return m
}
