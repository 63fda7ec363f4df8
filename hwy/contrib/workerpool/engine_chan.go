// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import "sync"

// chanQueue is the EngineChan queue. Submitters hand tasks to a dispatcher
// goroutine that keeps an unbounded backlog and feeds the buffered work
// channel the workers range over.
type chanQueue struct {
	in   chan func()
	work chan func()

	submitMu sync.RWMutex
	closed   bool
}

func newChanQueue(numWorkers int) *chanQueue {
	q := &chanQueue{
		in: make(chan func()),
		// Buffer enough for all workers to have pending work
		work: make(chan func(), numWorkers*2),
	}
	go q.dispatch()
	return q
}

// dispatch forwards tasks in FIFO order. It closes work once the intake is
// closed and the backlog is flushed, which ends every worker loop.
func (q *chanQueue) dispatch() {
	var backlog []func()
	in := q.in

	for in != nil || len(backlog) > 0 {
		var out chan func()
		var head func()
		if len(backlog) > 0 {
			out = q.work
			head = backlog[0]
		}

		select {
		case task, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			backlog = append(backlog, task)
		case out <- head:
			backlog[0] = nil
			backlog = backlog[1:]
		}
	}
	close(q.work)
}

func (q *chanQueue) push(task func()) bool {
	q.submitMu.RLock()
	defer q.submitMu.RUnlock()

	if q.closed {
		return false
	}
	q.in <- task
	return true
}

func (q *chanQueue) loop(_ int, ready func()) {
	ready()
	for task := range q.work {
		task()
	}
}

func (q *chanQueue) close() {
	q.submitMu.Lock()
	defer q.submitMu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.in)
	}
}
