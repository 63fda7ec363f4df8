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

// vectorTiers lists the tiers kernels provide routines for, widest first.
var vectorTiers = []hwy.Tier{hwy.Tier512, hwy.Tier256, hwy.Tier128}

// routines builds one routine per vector tier for element type T. build
// receives the tier's lane count and returns the routine body.
func routines[T hwy.Lanes, R any](name string, req hwy.Feature, build func(lanes int) func(begin, end int) R) []parallel.Routine[R] {
	out := make([]parallel.Routine[R], 0, len(vectorTiers))
	for _, t := range vectorTiers {
		lanes := hwy.LanesFor[T](t)
		out = append(out, parallel.Routine[R]{
			Name:     name + "/" + t.String(),
			Tier:     t,
			Requires: req,
			Lanes:    lanes,
			Run:      build(lanes),
		})
	}
	return out
}

func engineOrDefault(e *parallel.Engine) *parallel.Engine {
	if e == nil {
		return parallel.Default()
	}
	return e
}

func none(struct{}, struct{}) struct{} { return struct{}{} }
