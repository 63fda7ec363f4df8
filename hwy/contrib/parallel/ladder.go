package parallel

import (
	"cmp"
	"slices"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/partition"
)

// Routine is one tier's implementation of a kernel. Run is only ever called
// with a range whose length is a positive multiple of Lanes.
type Routine[R any] struct {
	Name     string
	Tier     hwy.Tier
	Requires hwy.Feature
	Lanes    int
	Run      func(begin, end int) R
}

// Ladder is a kernel: its tier routines, a scalar fallback and the way
// partial results combine.
//
// Scalar must process [begin, end) one element at a time with the same
// semantics as every routine. Combine must be associative; Zero is its
// identity and the value an empty segment reduces to.
type Ladder[R any] struct {
	Routines []Routine[R]
	Scalar   func(begin, end int) R
	Combine  func(a, b R) R
	Zero     R
}

// Step records one stretch of a segment and the routine that handles it.
type Step struct {
	Routine string
	Tier    hwy.Tier
	Seg     partition.Segment
}

// Widest sorts routines widest tier first, keeping the given order among
// routines of the same tier.
func Widest[R any](routines ...Routine[R]) []Routine[R] {
	out := slices.Clone(routines)
	slices.SortStableFunc(out, func(a, b Routine[R]) int {
		return cmp.Compare(b.Tier, a.Tier)
	})
	return out
}

// walk visits the stretches of seg in order. Each routine whose tier and
// feature are available takes the largest whole-chunk prefix of what is
// left; the scalar fallback takes the rest.
func (l *Ladder[R]) walk(caps hwy.CapabilitySet, seg partition.Segment, visit func(r *Routine[R], s partition.Segment)) {
	cursor := seg.Begin
	for i := range l.Routines {
		r := &l.Routines[i]
		if r.Run == nil || r.Lanes <= 0 || !caps.Has(r.Tier, r.Requires) {
			continue
		}
		whole := hwy.AlignDown(seg.End-cursor, r.Lanes)
		if whole == 0 {
			continue
		}
		end := cursor + whole
		visit(r, partition.Segment{Begin: cursor, End: end})
		cursor = end
	}
	if cursor < seg.End {
		visit(nil, partition.Segment{Begin: cursor, End: seg.End})
	}
}

// Process runs the kernel over seg and returns the combined result.
func (l *Ladder[R]) Process(caps hwy.CapabilitySet, seg partition.Segment) R {
	acc := l.Zero
	l.walk(caps, seg, func(r *Routine[R], s partition.Segment) {
		if r == nil {
			acc = l.Combine(acc, l.Scalar(s.Begin, s.End))
			return
		}
		acc = l.Combine(acc, r.Run(s.Begin, s.End))
	})
	return acc
}

// Steps returns the dispatch plan Process would follow, without running it.
func (l *Ladder[R]) Steps(caps hwy.CapabilitySet, seg partition.Segment) []Step {
	var steps []Step
	l.walk(caps, seg, func(r *Routine[R], s partition.Segment) {
		if r == nil {
			steps = append(steps, Step{Routine: "scalar", Tier: hwy.TierScalar, Seg: s})
			return
		}
		steps = append(steps, Step{Routine: r.Name, Tier: r.Tier, Seg: s})
	})
	return steps
}
