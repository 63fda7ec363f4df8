// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed is carried by futures submitted after Close.
	ErrPoolClosed = errors.New("workerpool: pool closed")

	// ErrNilTask is carried by futures submitted with a nil function.
	ErrNilTask = errors.New("workerpool: nil task")

	// ErrTaskPanicked matches every *PanicError.
	ErrTaskPanicked = errors.New("workerpool: task panicked")
)

// PanicError is the failure published to a future whose task panicked.
// The worker that ran the task keeps running.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v", e.Value)
}

// Is reports whether target is ErrTaskPanicked.
func (e *PanicError) Is(target error) bool {
	return target == ErrTaskPanicked
}
