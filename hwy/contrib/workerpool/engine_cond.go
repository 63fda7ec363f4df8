// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"log/slog"
	"runtime"
	"sync"
)

// compactAt is the consumed-prefix length after which the FIFO slice is
// shifted down instead of growing further.
const compactAt = 1024

// condQueue is the EngineCond queue: one mutex, one condition variable, one
// running flag and a slice FIFO.
type condQueue struct {
	mu      sync.Mutex
	cond    sync.Cond
	tasks   []func()
	head    int
	running bool

	pin    bool
	logger *slog.Logger
}

func newCondQueue(cfg config) *condQueue {
	q := &condQueue{
		running: true,
		pin:     cfg.pin,
		logger:  cfg.logger,
	}
	q.cond.L = &q.mu
	return q
}

func (q *condQueue) push(task func()) bool {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	q.cond.Signal()
	return true
}

// next blocks until a task is available or the queue is shut down and
// drained. ok is false only in the latter case.
func (q *condQueue) next() (task func(), ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.tasks) && q.running {
		q.cond.Wait()
	}
	if q.head == len(q.tasks) {
		return nil, false
	}

	task = q.tasks[q.head]
	q.tasks[q.head] = nil
	q.head++

	switch {
	case q.head == len(q.tasks):
		q.tasks = q.tasks[:0]
		q.head = 0
	case q.head >= compactAt && q.head*2 >= len(q.tasks):
		n := copy(q.tasks, q.tasks[q.head:])
		clear(q.tasks[n:])
		q.tasks = q.tasks[:n]
		q.head = 0
	}
	return task, true
}

// loop is the worker state machine: wait for work, execute it unlocked,
// repeat; return once shutdown is requested and the queue is empty.
func (q *condQueue) loop(id int, ready func()) {
	runtime.LockOSThread()
	if q.pin {
		// A pinned thread is never handed back to the scheduler: exiting
		// while still locked makes the runtime terminate it.
		if err := pinThread(id % runtime.NumCPU()); err != nil {
			q.logger.Debug("workerpool: pin failed", "worker", id, "error", err)
		}
	} else {
		defer runtime.UnlockOSThread()
	}

	ready()

	for {
		task, ok := q.next()
		if !ok {
			return
		}
		task()
	}
}

func (q *condQueue) close() {
	q.mu.Lock()
	q.running = false
	q.mu.Unlock()

	q.cond.Broadcast()
}
