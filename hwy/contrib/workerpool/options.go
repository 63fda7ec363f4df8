// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Engine selects the queue and thread strategy behind a Pool. Both engines
// satisfy the same contract; they differ only in the primitives used.
type Engine int

const (
	// EngineCond runs each worker on its own locked OS thread and parks idle
	// workers on a condition variable guarding a slice FIFO.
	EngineCond Engine = iota

	// EngineChan runs workers as ordinary goroutines fed from a channel, with
	// an unbounded intake so Submit never waits for a free worker.
	EngineChan
)

func (e Engine) String() string {
	switch e {
	case EngineCond:
		return "cond"
	case EngineChan:
		return "chan"
	default:
		return "unknown"
	}
}

// ParseEngine parses the names accepted by HWY_POOL_ENGINE.
func ParseEngine(s string) (Engine, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cond", "native", "thread":
		return EngineCond, true
	case "chan", "channel", "portable":
		return EngineChan, true
	default:
		return EngineCond, false
	}
}

type config struct {
	engine Engine
	pin    bool
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		engine: EngineCond,
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Pool.
type Option func(*config)

// WithEngine selects the pool engine. The default is EngineCond.
func WithEngine(e Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithPinning pins worker i to CPU i mod NumCPU. Only EngineCond workers own
// an OS thread, so the option is ignored by EngineChan. Pinning is a no-op
// outside Linux.
func WithPinning(pin bool) Option {
	return func(c *config) {
		c.pin = pin
	}
}

// WithLogger sets the logger for lifecycle events and task panics.
// A nil logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		c.logger = l
	}
}

// envWorkers returns HWY_WORKERS, or 0 when unset or invalid.
func envWorkers() int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("HWY_WORKERS")))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// envEngine returns HWY_POOL_ENGINE, or EngineCond when unset or invalid.
func envEngine() Engine {
	e, _ := ParseEngine(os.Getenv("HWY_POOL_ENGINE"))
	return e
}
