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

// AlignDown returns the largest multiple of lanes that is <= size.
func AlignDown(size, lanes int) int {
	if lanes <= 0 {
		return 0
	}
	return size - size%lanes
}

// TailMask creates a mask of the given lane count with the first 'count'
// lanes active.
func TailMask[T Lanes](lanes, count int) Mask[T] {
	lanes = min(max(lanes, 0), MaxVecLanes)
	count = min(max(count, 0), lanes)
	m := Mask[T]{n: lanes}
	if count == MaxVecLanes {
		m.bits = ^uint64(0)
	} else {
		m.bits = 1<<uint(count) - 1
	}
	return m
}

// ProcessWithTail is a helper for processing arrays with SIMD that handles
// both full vectors and the tail (remainder) automatically.
//
// It calls:
//   - fullFn(offset) for each full vector of lanes elements
//   - tailFn(offset, count) once for the tail if size is not a multiple of
//     lanes; tailFn may be nil when the caller guarantees whole vectors
//
// Example:
//
//	lanes := hwy.LanesFor[float32](hwy.Tier256)
//	hwy.ProcessWithTail(lanes, len(data),
//	    func(offset int) {
//	        v := hwy.Load(data[offset : offset+lanes])
//	        hwy.Store(hwy.Add(v, v), output[offset:])
//	    },
//	    func(offset, count int) {
//	        for i := offset; i < offset+count; i++ {
//	            output[i] = data[i] + data[i]
//	        }
//	    },
//	)
func ProcessWithTail(lanes, size int, fullFn func(offset int), tailFn func(offset, count int)) {
	full := AlignDown(size, lanes)
	for offset := 0; offset < full; offset += lanes {
		fullFn(offset)
	}
	if remaining := size - full; remaining > 0 && tailFn != nil {
		tailFn(full, remaining)
	}
}
