// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, fixed-size worker pool with a
// single FIFO task queue. Workers are spawned once, parked while idle and
// reused across every parallel operation, so no operation pays for spawning
// goroutines or allocating channels per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	f := workerpool.Submit(pool, func() int64 {
//	    return sumRange(0, 1024)
//	})
//	total, err := f.Get()
//
// Default returns the process-wide pool sized to the detected logical core
// count; Shutdown closes it.
package workerpool

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/partition"
)

// queue is the engine behind a Pool.
type queue interface {
	// push enqueues task, returning false once the queue is shut down.
	push(task func()) bool
	// loop is the body of one worker. It calls ready exactly once before
	// taking the first task.
	loop(id int, ready func())
	// close stops accepting tasks and wakes every idle worker. Tasks already
	// queued still run.
	close()
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
// A Pool must not be copied.
type Pool struct {
	_ noCopy

	numWorkers int
	engine     Engine
	q          queue
	logger     *slog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Workers   int
	Engine    Engine
	Submitted uint64
	Completed uint64
	Panicked  uint64
	Rejected  uint64
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// New returns only after every worker has started, so the first Submit
// never races an unstarted worker.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int, opts ...Option) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pool{
		numWorkers: numWorkers,
		engine:     cfg.engine,
		logger:     cfg.logger,
	}
	switch cfg.engine {
	case EngineChan:
		p.q = newChanQueue(numWorkers)
	default:
		p.engine = EngineCond
		p.q = newCondQueue(cfg)
	}

	var ready sync.WaitGroup
	ready.Add(numWorkers)
	p.wg.Add(numWorkers)

	// Spawn persistent workers
	for i := range numWorkers {
		go func() {
			defer p.wg.Done()
			p.q.loop(i, ready.Done)
		}()
	}
	ready.Wait()

	p.logger.Debug("workerpool: started", "workers", numWorkers, "engine", p.engine)
	return p
}

var (
	defaultOnce sync.Once
	defaultPool atomic.Pointer[Pool]
)

// Default returns the process-wide pool, creating it on first use. It has
// one worker per logical core reported by hwy.Detect unless HWY_WORKERS
// overrides the count; HWY_POOL_ENGINE selects the engine.
func Default() *Pool {
	defaultOnce.Do(func() {
		n := envWorkers()
		if n == 0 {
			n = hwy.Detect().LogicalCores
		}
		defaultPool.Store(New(n, WithEngine(envEngine())))
	})
	return defaultPool.Load()
}

// Shutdown closes the process-wide pool if it was ever created. It is safe
// to call more than once. Futures obtained from Default afterwards fail with
// ErrPoolClosed.
func Shutdown() {
	if p := defaultPool.Load(); p != nil {
		p.Close()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Engine returns the engine the pool runs on.
func (p *Pool) Engine() Engine {
	return p.engine
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.numWorkers,
		Engine:    p.engine,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
		Rejected:  p.rejected.Load(),
	}
}

// Close shuts down the worker pool. All pending work will complete before
// Close returns. Calling Close multiple times is safe; concurrent callers
// all block until the workers have exited.
//
// Close must not be called from inside a task.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.q.close()
		p.wg.Wait()
		p.logger.Debug("workerpool: stopped", "workers", p.numWorkers,
			"completed", p.completed.Load(), "panicked", p.panicked.Load())
	})
}

// Submit enqueues fn and returns its future immediately. Submit never waits
// for fn to run. A panic in fn is recovered and published as a *PanicError;
// the worker survives. On a closed pool the returned future already holds
// ErrPoolClosed.
func Submit[R any](p *Pool, fn func() R) *Future[R] {
	if fn == nil {
		return Failed[R](ErrNilTask)
	}

	f := newFuture[R]()
	p.submitted.Add(1)

	ok := p.q.push(func() {
		defer func() {
			if r := recover(); r != nil {
				err := &PanicError{Value: r, Stack: debug.Stack()}
				p.panicked.Add(1)
				p.logger.Error("workerpool: task panicked", "panic", fmt.Sprint(r))
				f.fail(err)
			}
		}()
		v := fn()
		p.completed.Add(1)
		f.resolve(v)
	})
	if !ok {
		p.rejected.Add(1)
		f.fail(ErrPoolClosed)
	}
	return f
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes. A panic in fn is re-raised in the caller.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Determine number of workers to use (don't use more workers than items)
	workers := min(p.numWorkers, n)

	// For very small n, just run sequentially
	if workers == 1 {
		fn(0, n)
		return
	}

	segs, err := partition.Compute(n, workers)
	if err != nil {
		fn(0, n)
		return
	}

	type pending struct {
		seg partition.Segment
		f   *Future[struct{}]
	}
	futures := make([]pending, 0, len(segs))
	for _, s := range segs {
		if s.Empty() {
			continue
		}
		futures = append(futures, pending{seg: s, f: Submit(p, func() struct{} {
			fn(s.Begin, s.End)
			return struct{}{}
		})})
	}

	var panicked *PanicError
	for _, pf := range futures {
		_, err := pf.f.Get()
		switch e := err.(type) {
		case nil:
		case *PanicError:
			if panicked == nil {
				panicked = e
			}
		default:
			// Closed underneath us: run the segment here.
			fn(pf.seg.Begin, pf.seg.End)
		}
	}
	if panicked != nil {
		panic(panicked)
	}
}
