package parallel

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-lanes/hwy/contrib/partition"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// Reduce runs the reduction l over [0, n) and returns the combined result.
// On any failure it logs, and returns l.Zero with the error.
func Reduce[R any](e *Engine, op string, n int, validate Validator, l Ladder[R]) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = l.Zero, e.unknown(op, n, r)
		}
	}()

	n, segs, err := e.prepare(op, n, validate)
	if err != nil {
		e.logger.opFailed(op, n, err)
		return l.Zero, err
	}

	caps := e.caps
	agg := NewAggregator(op, len(segs), l.Combine, l.Zero)
	for _, seg := range segs {
		agg.Add(workerpool.Submit(e.pool, func() R {
			return l.Process(caps, seg)
		}))
	}

	result, err = agg.Wait()
	if err != nil {
		e.logger.opFailed(op, n, err)
		return l.Zero, err
	}
	return result, nil
}

// Apply runs the side-effecting kernel l over [0, n) and returns how many
// elements were processed, which is smaller than n only when validation
// shrank the operation. Each task reports Done; the operation succeeds only
// if every submitted task did.
func Apply(e *Engine, op string, n int, validate Validator, l Ladder[struct{}]) (processed int, err error) {
	defer func() {
		if r := recover(); r != nil {
			processed, err = 0, e.unknown(op, n, r)
		}
	}()

	n, segs, err := e.prepare(op, n, validate)
	if err != nil {
		e.logger.opFailed(op, n, err)
		return 0, err
	}

	caps := e.caps
	agg := NewAggregator(op, len(segs), Sum[int], 0)
	for _, seg := range segs {
		agg.Add(workerpool.Submit(e.pool, func() int {
			l.Process(caps, seg)
			return Done
		}))
	}

	total, err := agg.Wait()
	if err == nil && total != len(segs)*Done {
		err = &IncompleteError{Op: op, Expected: len(segs), Resolved: total / Done}
	}
	if err != nil {
		e.logger.opFailed(op, n, err)
		return 0, err
	}
	return n, nil
}

// prepare validates n and returns the non-empty segments to submit.
func (e *Engine) prepare(op string, n int, validate Validator) (int, []partition.Segment, error) {
	if n < 0 {
		return n, nil, fmt.Errorf("%w: %s: negative length %d", ErrPrecondition, op, n)
	}

	usable, err := Plan(n, validate)
	if err != nil {
		return n, nil, err
	}

	segs, err := partition.Compute(usable, e.workers)
	if err != nil {
		if errors.Is(err, partition.ErrTooManySegments) {
			return n, nil, fmt.Errorf("%w: %w", ErrResourceExhausted, err)
		}
		return n, nil, err
	}
	return usable, partition.NonEmpty(segs), nil
}

// unknown reports a panic recovered on the calling goroutine. Panics inside
// tasks never get here: the pool publishes them on the future and the
// aggregator reports the operation incomplete.
func (e *Engine) unknown(op string, n int, r any) error {
	err := fmt.Errorf("%w: %s: %v", ErrUnknown, op, r)
	e.logger.opFailed(op, n, err)
	return err
}
