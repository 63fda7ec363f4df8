package parallel

import (
	"errors"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// Done is the result every task of a side-effecting operation returns.
const Done = 1

// Aggregator merges the futures of one operation.
type Aggregator[R any] struct {
	op       string
	expected int
	combine  func(a, b R) R
	zero     R
	futures  []*workerpool.Future[R]
}

// NewAggregator creates an Aggregator for an operation that submitted
// expected tasks.
func NewAggregator[R any](op string, expected int, combine func(a, b R) R, zero R) *Aggregator[R] {
	return &Aggregator[R]{
		op:       op,
		expected: expected,
		combine:  combine,
		zero:     zero,
		futures:  make([]*workerpool.Future[R], 0, max(expected, 0)),
	}
}

// Add registers the next future in submission order.
func (a *Aggregator[R]) Add(f *workerpool.Future[R]) {
	a.futures = append(a.futures, f)
}

// Wait blocks on every future in submission order and combines the
// successful results. It returns an *IncompleteError and the zero value
// unless exactly the expected number of futures resolved successfully.
// Failed segments are never retried.
func (a *Aggregator[R]) Wait() (R, error) {
	acc := a.zero
	resolved := 0
	var errs []error

	for _, f := range a.futures {
		v, err := f.Get()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		acc = a.combine(acc, v)
		resolved++
	}

	if resolved != a.expected {
		return a.zero, &IncompleteError{
			Op:       a.op,
			Expected: a.expected,
			Resolved: resolved,
			cause:    errors.Join(errs...),
		}
	}
	return acc, nil
}

// Sum is the combining function of sum and count reductions.
func Sum[T ~int | hwy.Lanes](a, b T) T {
	return a + b
}
