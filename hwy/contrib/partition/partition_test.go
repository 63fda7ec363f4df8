// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package partition

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    []Segment
	}{
		{"even", 8, 4, []Segment{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"truncated_last", 10, 4, []Segment{{0, 3}, {3, 6}, {6, 9}, {9, 10}}},
		{"single_worker", 5, 1, []Segment{{0, 5}}},
		{"n_smaller_than_workers", 3, 5, []Segment{{0, 1}, {1, 2}, {2, 3}, {3, 3}, {3, 3}}},
		{"early_exhaustion", 5, 4, []Segment{{0, 2}, {2, 4}, {4, 5}, {5, 5}}},
		{"zero", 0, 3, []Segment{{0, 0}, {0, 0}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.n, tt.workers)
			if err != nil {
				t.Fatalf("Compute(%d, %d): %v", tt.n, tt.workers, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compute(%d, %d) mismatch (-want +got):\n%s", tt.n, tt.workers, diff)
			}
		})
	}
}

// TestComputeTiles checks the tiling property over a grid of sizes: no gaps,
// no overlaps, union is [0, n), count never exceeds workers.
func TestComputeTiles(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 7, 63, 64, 65, 1000, 1023, 1 << 16}
	workers := []int{1, 2, 3, 4, 7, 8, 16, 64, 100}

	for _, n := range sizes {
		for _, w := range workers {
			segs, err := Compute(n, w)
			if err != nil {
				t.Fatalf("Compute(%d, %d): %v", n, w, err)
			}
			if len(segs) > w {
				t.Fatalf("Compute(%d, %d): %d segments", n, w, len(segs))
			}

			next := 0
			covered := 0
			for i, s := range segs {
				if s.Begin != next {
					t.Fatalf("Compute(%d, %d): segment %d %v does not start at %d", n, w, i, s, next)
				}
				if s.End < s.Begin {
					t.Fatalf("Compute(%d, %d): segment %d %v is inverted", n, w, i, s)
				}
				covered += s.Len()
				next = s.End
			}
			if next != n || covered != n {
				t.Fatalf("Compute(%d, %d): covered %d ending at %d", n, w, covered, next)
			}
		}
	}
}

func TestComputeLargeN(t *testing.T) {
	n := math.MaxInt - 3
	segs, err := Compute(n, 4)
	if err != nil {
		t.Fatal(err)
	}
	if last := segs[len(segs)-1]; last.End != n {
		t.Errorf("last segment = %v, want end %d", last, n)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    error
	}{
		{"negative_n", -1, 4, ErrNegativeLength},
		{"zero_workers", 10, 0, ErrNoWorkers},
		{"negative_workers", 10, -2, ErrNoWorkers},
		{"too_many_segments", 10, MaxSegments + 1, ErrTooManySegments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Compute(tt.n, tt.workers)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if segs != nil {
				t.Errorf("segs = %v, want nil", segs)
			}
		})
	}
}

func TestNonEmpty(t *testing.T) {
	segs, _ := Compute(3, 6)
	got := NonEmpty(segs)
	want := []Segment{{0, 1}, {1, 2}, {2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NonEmpty mismatch (-want +got):\n%s", diff)
	}

	if got := NonEmpty(nil); len(got) != 0 {
		t.Errorf("NonEmpty(nil) = %v", got)
	}
}

func TestSegment(t *testing.T) {
	s := Segment{Begin: 3, End: 9}
	if s.Len() != 6 || s.Empty() {
		t.Errorf("%v: Len=%d Empty=%v", s, s.Len(), s.Empty())
	}
	if got := s.String(); got != "[3,9)" {
		t.Errorf("String() = %q", got)
	}
	if !(Segment{4, 4}).Empty() {
		t.Error("[4,4) should be empty")
	}
}

func BenchmarkCompute(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Compute(1_000_000, 64)
	}
}
