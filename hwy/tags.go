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

import "unsafe"

// LanesFor returns the number of T values that fit in one register of tier t.
//
// For example, with Tier256 (32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - int8: 32/1 = 32 lanes
//
// TierScalar always reports 1.
func LanesFor[T Lanes](t Tier) int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	width := t.Width()
	if width == 0 || elementSize == 0 {
		return 1
	}
	return width / elementSize
}

// MaxLanes returns the lane count of the widest tier in the detected
// snapshot for type T.
func MaxLanes[T Lanes]() int {
	return LanesFor[T](Detect().Best())
}
