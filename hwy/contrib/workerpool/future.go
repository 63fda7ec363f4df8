// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// Future is the result slot of one submitted task. It is resolved exactly
// once, either with a value or with an error.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Resolved returns a future already holding v.
func Resolved[R any](v R) *Future[R] {
	f := newFuture[R]()
	f.resolve(v)
	return f
}

// Failed returns a future already holding err.
func Failed[R any](err error) *Future[R] {
	f := newFuture[R]()
	f.fail(err)
	return f
}

func (f *Future[R]) resolve(v R) {
	f.val = v
	close(f.done)
}

func (f *Future[R]) fail(err error) {
	f.err = err
	close(f.done)
}

// Get blocks until the task has run and returns its result.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel closed once the future is resolved.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether Get would return without blocking.
func (f *Future[R]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
