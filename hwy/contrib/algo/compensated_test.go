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
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajroetker/go-lanes/hwy"
)

func exactSum(vals ...float64) *big.Float {
	s := new(big.Float).SetPrec(4096)
	for _, v := range vals {
		s.Add(s, new(big.Float).SetFloat64(v))
	}
	return s
}

func exactProd(a, b float64) *big.Float {
	return new(big.Float).SetPrec(4096).Mul(new(big.Float).SetFloat64(a), new(big.Float).SetFloat64(b))
}

func TestTwoSumExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for range 1000 {
		a := (rng.Float64() - 0.5) * math.Pow(2, float64(rng.IntN(80)-40))
		b := (rng.Float64() - 0.5) * math.Pow(2, float64(rng.IntN(80)-40))
		s, e := twoSum(a, b)
		assert.Zero(t, exactSum(a, b).Cmp(exactSum(s, e)), "twoSum(%v, %v)", a, b)
	}
}

func TestTwoProdExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for range 1000 {
		a := (rng.Float64() - 0.5) * math.Pow(2, float64(rng.IntN(80)-40))
		b := (rng.Float64() - 0.5) * math.Pow(2, float64(rng.IntN(80)-40))

		p, e := twoProd(a, b)
		assert.Zero(t, exactProd(a, b).Cmp(exactSum(p, e)), "twoProd(%v, %v)", a, b)

		va, vb := hwy.Set(4, a), hwy.Set(4, b)
		for name, prod := range map[string]func(x, y hwy.Vec[float64]) (hwy.Vec[float64], hwy.Vec[float64]){
			"dekker": twoProdVec,
			"fma":    twoProdFMA,
		} {
			vp, ve := prod(va, vb)
			assert.Equal(t, p, vp.Data()[3], name)
			assert.Equal(t, e, ve.Data()[3], name)
		}
	}
}

func TestCompensatedRecoversLostBits(t *testing.T) {
	// 1 + 1e-16 + ... loses every small term in a plain float64 sum.
	c := compensated{}.add(1)
	for range 1000 {
		c = c.add(1e-16)
	}
	assert.InEpsilon(t, 1+1e-13, c.value(), 1e-15)

	split := combineCompensated(compensated{}.add(1).add(1e-16), compensated{}.add(1e-16))
	assert.Equal(t, 1+2e-16, split.value())
}
