// Package parallel runs data-parallel operations over the worker pool.
//
// Every operation follows the same shape:
//
//  1. validate the destination before anything is submitted (see Plan),
//  2. split [0, n) into one segment per worker (see partition.Compute),
//  3. submit one task per non-empty segment; inside the task a Ladder walks
//     the tiers from widest to narrowest, running each tier's Routine over
//     whole lane-sized chunks, and finishes the remainder with a scalar loop,
//  4. wait for every future in submission order and merge the per-segment
//     results (see Aggregator), failing with ErrIncompleteExecution if any
//     task did not resolve.
//
// Kernels built on the package must be safe to run concurrently on disjoint
// segments, idempotent when re-run on the same segment, and must provide a
// scalar fallback that accepts every input the kernel accepts.
package parallel

import (
	"sync"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/workerpool"
)

// Engine binds a capability snapshot to a worker pool. An Engine is
// immutable; derive variants with ScalarOnly or New.
type Engine struct {
	caps    hwy.CapabilitySet
	pool    *workerpool.Pool
	workers int
	logger  *Logger
}

type config struct {
	caps       *hwy.CapabilitySet
	pool       *workerpool.Pool
	workers    int
	logger     *Logger
	scalarOnly bool
}

// Option configures an Engine.
type Option func(*config)

// WithCapabilities replaces the detected snapshot. The set is normalized so
// the ladder stays monotone.
func WithCapabilities(c hwy.CapabilitySet) Option {
	return func(cfg *config) {
		n := c.Normalized()
		cfg.caps = &n
	}
}

// WithPool runs tasks on p instead of workerpool.Default.
func WithPool(p *workerpool.Pool) Option {
	return func(cfg *config) {
		cfg.pool = p
	}
}

// WithWorkers sets how many segments an operation is split into. The
// default is the pool's worker count.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// WithLogger sets the logger operation failures are reported to.
func WithLogger(l *Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithScalarOnly restricts every kernel to its scalar routine. Use it when a
// reduction must be exact beyond the ceiling of its narrow-lane accumulators.
func WithScalarOnly() Option {
	return func(cfg *config) {
		cfg.scalarOnly = true
	}
}

// New creates an Engine. Without options it uses hwy.Detect, the default
// pool and one segment per pool worker.
func New(opts ...Option) *Engine {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		pool:    cfg.pool,
		workers: cfg.workers,
		logger:  cfg.logger,
	}
	if cfg.caps != nil {
		e.caps = *cfg.caps
	} else {
		e.caps = hwy.Detect()
	}
	if cfg.scalarOnly {
		e.caps = e.caps.Capped(hwy.TierScalar)
	}
	if e.pool == nil {
		e.pool = workerpool.Default()
	}
	if e.workers <= 0 {
		e.workers = e.pool.NumWorkers()
	}
	if e.logger == nil {
		e.logger = NewLogger(nil)
	}
	return e
}

var defaultEngine = sync.OnceValue(func() *Engine { return New() })

// Default returns the process-wide Engine built on hwy.Detect and
// workerpool.Default.
func Default() *Engine {
	return defaultEngine()
}

// Capabilities returns the snapshot tasks dispatch against.
func (e *Engine) Capabilities() hwy.CapabilitySet {
	return e.caps
}

// Workers returns the number of segments operations are split into.
func (e *Engine) Workers() int {
	return e.workers
}

// Pool returns the pool tasks are submitted to.
func (e *Engine) Pool() *workerpool.Pool {
	return e.pool
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger {
	return e.logger
}

// ScalarOnly returns a copy of e that dispatches every task to the scalar
// routine.
func (e *Engine) ScalarOnly() *Engine {
	c := *e
	c.caps = e.caps.Capped(hwy.TierScalar)
	return &c
}
