// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"context"
	"sync"
)

var (
	initOnce sync.Once
	global   *Logger
	initErr  error
)

// Init builds the process-wide Logger exactly once: the arena, the
// record queue, the clock and the sink are all installed on the first
// call, and every later call returns the same Logger (opts are
// ignored on later calls, matching sync.Once's semantics).
//
// Calling the package-level Tracef/Debugf/.../Errorf, Flush or
// FlushContext before Init panics: there is no sensible default arena
// or queue size to fall back to silently.
func Init(opts ...Option) (*Logger, error) {
	initOnce.Do(func() {
		global, initErr = New(opts...)
	})
	return global, initErr
}

// Default returns the process-wide Logger installed by Init, or nil
// if Init has not been called yet.
func Default() *Logger {
	return global
}

func mustDefault() *Logger {
	if global == nil {
		panic("quicklog: Init must be called before logging")
	}
	return global
}

// Tracef, Debugf, Infof, Warnf and Errorf log through the process-wide
// Logger installed by Init. Panics if Init has not been called.
//
// Each calls mustDefault().log directly rather than going through the
// matching Logger method, keeping the call stack between here and
// callerMeta the same depth as the Logger-method path so the captured
// file and line still point at the caller of this function.
func Tracef(template string, args ...Arg) error {
	return mustDefault().log(LevelTrace, template, args, nil)
}
func Debugf(template string, args ...Arg) error {
	return mustDefault().log(LevelDebug, template, args, nil)
}
func Infof(template string, args ...Arg) error {
	return mustDefault().log(LevelInfo, template, args, nil)
}
func Warnf(template string, args ...Arg) error {
	return mustDefault().log(LevelWarn, template, args, nil)
}
func Errorf(template string, args ...Arg) error {
	return mustDefault().log(LevelError, template, args, nil)
}

// Flush drains the process-wide Logger installed by Init. Panics if
// Init has not been called.
func Flush() error { return mustDefault().Flush() }

// FlushContext runs a cooperating drainer against the process-wide
// Logger installed by Init until ctx is cancelled. Panics if Init has
// not been called.
func FlushContext(ctx context.Context, sink Sink) error {
	return mustDefault().FlushContext(ctx, sink)
}
