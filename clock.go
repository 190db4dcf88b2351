// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"time"

	timecache "github.com/agilira/go-timecache"
)

// Clock is the external collaborator the core consumes opaquely: a
// nanosecond timestamp source. The core never inspects the value
// beyond passing it through to the drain-time formatter, which renders
// it as nanoseconds since the Unix epoch. Both SystemClock and
// CachedClock read wall-clock time; neither is monotonic.
type Clock interface {
	Now() int64
}

// SystemClock calls time.Now() directly. It is the default.
type SystemClock struct{}

// Now returns the current wall-clock time as nanoseconds since the
// Unix epoch. time.Now's monotonic reading is not used.
func (SystemClock) Now() int64 {
	return time.Now().UnixNano()
}

// CachedClock amortizes the cost of reading the system clock on the
// hot path by delegating to timecache.CachedTime, the same amortized
// clock source the iris logger defaults TimeFn to. The cache's
// refresh cadence and storage are both owned by go-timecache; Now
// just converts its result to nanoseconds.
type CachedClock struct{}

// NewCachedClock returns a CachedClock.
func NewCachedClock() *CachedClock {
	return &CachedClock{}
}

// Now returns timecache.CachedTime() as nanoseconds since the epoch.
func (CachedClock) Now() int64 {
	return timecache.CachedTime().UnixNano()
}
