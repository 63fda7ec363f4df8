package parallel

import (
	"errors"
	"fmt"
)

// Verdict is the outcome of validating an operation before submission.
type Verdict int

const (
	// VerdictOK lets the operation run on the requested size.
	VerdictOK Verdict = iota

	// VerdictShrink asks to rerun validation once on a smaller usable size.
	VerdictShrink

	// VerdictFatal rejects the operation.
	VerdictFatal
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictShrink:
		return "shrink"
	case VerdictFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Check is what a Validator returns.
type Check struct {
	Verdict Verdict
	Usable  int
	Err     error
}

// Accept lets the operation run.
func Accept() Check { return Check{Verdict: VerdictOK} }

// Shrink asks for the operation to run on usable elements instead.
func Shrink(usable int) Check { return Check{Verdict: VerdictShrink, Usable: usable} }

// Reject refuses the operation with err.
func Reject(err error) Check { return Check{Verdict: VerdictFatal, Err: err} }

// Validator checks an operation of n elements before any task is submitted.
type Validator func(n int) Check

// Plan validates n and returns the size the operation should run on. A
// VerdictShrink is honoured once: the smaller size is validated again and
// must then be accepted outright.
func Plan(n int, validate Validator) (int, error) {
	if validate == nil {
		return n, nil
	}

	c := validate(n)
	switch c.Verdict {
	case VerdictOK:
		return n, nil
	case VerdictShrink:
		if c.Usable < 0 || c.Usable >= n {
			return 0, fmt.Errorf("%w: shrink from %d to %d", ErrPrecondition, n, c.Usable)
		}
		retry := validate(c.Usable)
		if retry.Verdict == VerdictOK {
			return c.Usable, nil
		}
		return 0, rejection(retry, c.Usable)
	default:
		return 0, rejection(c, n)
	}
}

func rejection(c Check, n int) error {
	if c.Err == nil {
		return fmt.Errorf("%w: %d elements (%s)", ErrPrecondition, n, c.Verdict)
	}
	if errors.Is(c.Err, ErrPrecondition) {
		return c.Err
	}
	return fmt.Errorf("%w: %w", ErrPrecondition, c.Err)
}

// MinLen returns a validator requiring a destination of at least have
// elements. When shrink is set, a short destination downgrades the
// operation to have elements instead of rejecting it.
func MinLen(have int, shrink bool) Validator {
	return func(n int) Check {
		if have >= n {
			return Accept()
		}
		if shrink {
			return Shrink(have)
		}
		return Reject(&PreconditionError{Required: n, Available: have})
	}
}
