// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package partition splits an index range into contiguous segments, one per
// worker.
//
// The split is the same one ParallelFor has always used: every segment is
// ceil(n/workers) long except the last non-empty one, which ends exactly at
// n. When n < workers the trailing segments are empty.
//
//	segs, err := partition.Compute(10, 4)
//	// [0,3) [3,6) [6,9) [9,10)
package partition

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeLength is returned when the element count is negative.
	ErrNegativeLength = errors.New("partition: negative element count")

	// ErrNoWorkers is returned when the worker count is not positive.
	ErrNoWorkers = errors.New("partition: worker count must be positive")

	// ErrTooManySegments is returned when the segment table itself would not
	// fit in memory.
	ErrTooManySegments = errors.New("partition: too many segments")
)

// MaxSegments bounds the segment table allocated by Compute.
const MaxSegments = 1 << 20

// Segment is the half-open index range [Begin, End).
type Segment struct {
	Begin int
	End   int
}

// Len returns the number of indices in the segment.
func (s Segment) Len() int {
	return s.End - s.Begin
}

// Empty reports whether the segment contains no indices.
func (s Segment) Empty() bool {
	return s.End <= s.Begin
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}

// Compute splits [0, n) into exactly workers ordered, disjoint, contiguous
// segments whose union is [0, n).
func Compute(n, workers int) ([]Segment, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoWorkers, workers)
	}
	if workers > MaxSegments {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySegments, workers, MaxSegments)
	}

	// Calculate chunk size (ensure all items are covered). Written as
	// n/w + (n%w != 0) so n close to MaxInt cannot overflow.
	size := n / workers
	if n%workers != 0 {
		size++
	}

	segs := make([]Segment, workers)
	begin := 0
	for i := range segs {
		end := n
		if size <= math.MaxInt-begin {
			end = min(begin+size, n)
		}
		segs[i] = Segment{Begin: begin, End: end}
		begin = end
	}
	return segs, nil
}

// NonEmpty returns the segments that contain at least one index, in order.
func NonEmpty(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if !s.Empty() {
			out = append(out, s)
		}
	}
	return out
}
