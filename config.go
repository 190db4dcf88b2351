// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"os"
	"strconv"
)

// defaultArenaBytes and defaultQueueSlots are the build-time defaults
// for C_B and C_Q, overridable at process Init via environment
// variables.
const (
	defaultArenaBytes = 1_000_000
	defaultQueueSlots = 1_000_000
)

const (
	envArenaBytes = "QUICKLOG_ARENA_BYTES"
	envQueueSlots = "QUICKLOG_QUEUE_SLOTS"
)

// config holds the settings Init uses to build the process-wide
// logger. It is built up by applying Options over a defaulted value,
// the way the iris logger's Config is defaulted field by field.
type config struct {
	arenaBytes int
	queueSlots int
	minLevel   Level
	sink       Sink
	clock      Clock
	err        error // set by an Option that can fail, e.g. WithFlushIntoFile
}

func defaultConfig() config {
	arenaBytes := defaultArenaBytes
	if v, ok := envInt(envArenaBytes); ok {
		arenaBytes = v
	}
	queueSlots := defaultQueueSlots
	if v, ok := envInt(envQueueSlots); ok {
		queueSlots = v
	}
	return config{
		arenaBytes: arenaBytes,
		queueSlots: queueSlots,
		minLevel:   LevelInfo,
		sink:       StdoutSink,
		clock:      SystemClock{},
	}
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Option configures Init.
type Option func(*config)

// WithArenaCapacity overrides C_B, the byte arena's capacity.
func WithArenaCapacity(bytes int) Option {
	return func(c *config) { c.arenaBytes = bytes }
}

// WithQueueCapacity overrides C_Q, the record queue's slot count.
func WithQueueCapacity(slots int) Option {
	return func(c *config) { c.queueSlots = slots }
}

// WithMinLevel sets the initial minimum log level.
func WithMinLevel(l Level) Option {
	return func(c *config) { c.minLevel = l }
}

// WithSink installs the initial sink.
func WithSink(s Sink) Option {
	return func(c *config) { c.sink = s }
}

// WithClock installs the clock collaborator.
func WithClock(clk Clock) Option {
	return func(c *config) { c.clock = clk }
}

// WithFlushIntoFile opens path as a FileSink and installs it, the way
// WithSink installs a caller-built Sink directly. Since an Option has
// no error return of its own, a failure to open path is recorded on
// config and surfaced by New/Init once every Option has run, rather
// than panicking mid-configuration.
func WithFlushIntoFile(path string) Option {
	return func(c *config) {
		f, err := NewFileSink(path)
		if err != nil {
			c.err = err
			return
		}
		c.sink = f
	}
}
