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

// Copy copies all of src into dst in parallel and returns len(src).
// dst must hold at least len(src) elements; otherwise nothing is written and
// the error matches parallel.ErrPrecondition.
func Copy[T hwy.Lanes](e *parallel.Engine, src, dst []T) (int, error) {
	e = engineOrDefault(e)
	return parallel.Apply(e, "copy", len(src), parallel.MinLen(len(dst), false), copyLadder(src, dst))
}

// CopyTruncate copies min(len(src), len(dst)) elements from src to dst in
// parallel and returns the number copied. A short dst shrinks the operation
// once instead of failing it.
func CopyTruncate[T hwy.Lanes](e *parallel.Engine, src, dst []T) (int, error) {
	e = engineOrDefault(e)
	return parallel.Apply(e, "copy", len(src), parallel.MinLen(len(dst), true), copyLadder(src, dst))
}

func copyLadder[T hwy.Lanes](src, dst []T) parallel.Ladder[struct{}] {
	return parallel.Ladder[struct{}]{
		Routines: routines[T]("copy", hwy.FeatureNone, func(lanes int) func(begin, end int) struct{} {
			return func(begin, end int) struct{} {
				hwy.ProcessWithTail(lanes, end-begin, func(offset int) {
					i := begin + offset
					hwy.Store(hwy.Load(src[i:i+lanes]), dst[i:i+lanes])
				}, nil)
				return struct{}{}
			}
		}),
		Scalar: func(begin, end int) struct{} {
			for i := begin; i < end; i++ {
				dst[i] = src[i]
			}
			return struct{}{}
		},
		Combine: none,
	}
}

// Fill sets all elements in dst to the specified value in parallel.
func Fill[T hwy.Lanes](e *parallel.Engine, dst []T, value T) error {
	e = engineOrDefault(e)
	_, err := parallel.Apply(e, "fill", len(dst), nil, fillLadder(dst, value))
	return err
}

func fillLadder[T hwy.Lanes](dst []T, value T) parallel.Ladder[struct{}] {
	return parallel.Ladder[struct{}]{
		Routines: routines[T]("fill", hwy.FeatureNone, func(lanes int) func(begin, end int) struct{} {
			return func(begin, end int) struct{} {
				v := hwy.Set(lanes, value)
				for i := begin; i < end; i += lanes {
					hwy.Store(v, dst[i:i+lanes])
				}
				return struct{}{}
			}
		}),
		Scalar: func(begin, end int) struct{} {
			for i := begin; i < end; i++ {
				dst[i] = value
			}
			return struct{}{}
		},
		Combine: none,
	}
}
