// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package arena implements the byte arena that backs deferred log
// argument encoding: a fixed-capacity circular byte buffer with a
// single producer (the calling thread, via Reserve) and a single
// consumer (the drainer, via ReleaseThrough).
//
// The cursor discipline mirrors a Lamport SPSC ring buffer: the
// producer owns head and caches its last observed tail, the consumer
// owns tail and only ever stores it. Unlike a slot ring,
// positions here are byte offsets and a reservation can span any
// number of bytes up to the full capacity.
package arena

import (
	"code.hybscloud.com/atomix"

	"github.com/arbie-trading/quicklog/internal/cachepad"
)

// skipMarker tags a pad-to-end byte written when a reservation would
// otherwise straddle the physical end of the buffer. It is written for
// diagnostic visibility only; release accounting uses logical offsets
// and never re-scans the buffer for markers.
const skipMarker = 0xFF

// ErrOverflow is returned by Reserve when the requested size cannot fit
// without overwriting un-drained bytes.
type ErrOverflow struct {
	Requested int
	Occupied  uint64
	Capacity  uint64
}

func (e *ErrOverflow) Error() string {
	return "arena: overflow"
}

// Arena is a fixed-capacity circular byte buffer, process-singleton.
type Arena struct {
	_          cachepad.Line
	head       atomix.Uint64 // producer's logical write cursor (monotonic byte count)
	_          cachepad.Line
	cachedTail uint64 // producer's cached view of tail
	_          cachepad.Line
	tail       atomix.Uint64 // consumer's logical release cursor
	_          cachepad.Line
	cachedHead uint64 // consumer-side slot for a cached head; no method reads or writes it
	_          cachepad.Line
	buf        []byte
	capacity   uint64
}

// New creates an Arena with the given capacity in bytes.
// Panics if capacity is less than 1.
func New(capacity int) *Arena {
	if capacity < 1 {
		panic("arena: capacity must be >= 1")
	}
	return &Arena{
		buf:      make([]byte, capacity),
		capacity: uint64(capacity),
	}
}

// Capacity returns the arena's byte capacity.
func (a *Arena) Capacity() int {
	return int(a.capacity)
}

// Window is a mutable, exclusively-borrowed contiguous region of the
// arena. It is released either by deriving Stores from it (the normal
// path) or by an explicit Abandon.
//
// A Window's bytes stay readable until the drainer releases through
// its End. It may be passed to Abandon only before the next call to
// Reserve on the same Arena.
type Window struct {
	a        *Arena
	start    uint64 // logical offset, post-padding
	n        int
	prevHead uint64 // head before this reservation, for Abandon
}

// Bytes returns the writable region of the window.
func (w Window) Bytes() []byte {
	off := w.start % w.a.capacity
	return w.a.buf[off : off+uint64(w.n)]
}

// Start returns the window's logical start offset. Stores derived from
// this window record byte ranges relative to this offset.
func (w Window) Start() uint64 {
	return w.start
}

// Len returns the window's length in bytes.
func (w Window) Len() int {
	return w.n
}

// End returns the window's logical end offset, the value a record
// should pass to ReleaseThrough once it has been fully drained.
func (w Window) End() uint64 {
	return w.start + uint64(w.n)
}

// Slice returns the sub-region of the window's bytes starting at
// relative offset off with length n. Used by selective encoders that
// pack several fields into one reservation.
func (w Window) Slice(off, n int) []byte {
	b := w.Bytes()
	return b[off : off+n]
}

// Sub returns a Window over the sub-region starting at relative offset
// off with length n, sharing the parent's arena. Composite encoders
// (Optional, Slice, selective struct encoders) use it to hand a nested
// value its own sub-window within one top-level reservation. A Sub
// window cannot be passed to Abandon; only the Window returned
// directly by Reserve can.
func (w Window) Sub(off, n int) Window {
	return Window{a: w.a, start: w.start + uint64(off), n: n}
}

// Reserve advances head by n bytes and returns a Window over them, or
// ErrOverflow if the reservation does not fit. Reserve never blocks.
//
// If the physical tail of the buffer cannot hold n contiguous bytes,
// Reserve pads to the end with a one-byte skip marker and serves the
// window from physical offset 0 instead of splitting it. The pad bytes
// count as occupied until released: on a non-empty arena Reserve fails
// when occupied+pad+n exceeds the capacity, while an empty arena
// accepts any n up to the capacity.
func (a *Arena) Reserve(n int) (Window, error) {
	if n < 0 || uint64(n) > a.capacity {
		return Window{}, &ErrOverflow{Requested: n, Capacity: a.capacity}
	}

	head := a.head.LoadRelaxed()
	physOffset := head % a.capacity

	var padding uint64
	if physOffset+uint64(n) > a.capacity {
		padding = a.capacity - physOffset
	}
	advance := padding + uint64(n)

	occupied := head - a.cachedTail
	if occupied+advance > a.capacity {
		a.cachedTail = a.tail.LoadAcquire()
		occupied = head - a.cachedTail
		// An empty arena holds no live bytes for the pad to overwrite,
		// so any n up to the capacity fits there, padded or not.
		if occupied > 0 && occupied+advance > a.capacity {
			return Window{}, &ErrOverflow{Requested: n, Occupied: occupied, Capacity: a.capacity}
		}
	}

	if padding > 0 {
		a.buf[physOffset] = skipMarker
	}

	start := head + padding
	a.head.StoreRelease(start + uint64(n))
	return Window{a: a, start: start, n: n, prevHead: head}, nil
}

// Abandon rolls back the reservation made by the immediately preceding
// Reserve call, restoring head to its value before that call. Callers
// must invoke Abandon immediately after Reserve, before any subsequent
// Reserve on the same Arena; this holds for the front-end adapter,
// which reserves once per callsite and either commits or abandons
// before returning.
func (a *Arena) Abandon(w Window) {
	a.head.StoreRelease(w.prevHead)
}

// ReleaseThrough moves tail to offset, reclaiming all arena bytes up to
// and including the record that ends there. Called only by the
// drainer, after the record owning those bytes has been fully emitted.
func (a *Arena) ReleaseThrough(offset uint64) {
	a.tail.StoreRelease(offset)
}

// CurrentHead returns the current logical write cursor. The front-end
// adapter uses it as the release offset of a record that reserved no
// arena bytes.
func (a *Arena) CurrentHead() uint64 {
	return a.head.LoadAcquire()
}

// Occupied returns the number of bytes currently reserved but not yet
// released. Intended for tests and diagnostics, not the hot path.
func (a *Arena) Occupied() uint64 {
	return a.head.LoadAcquire() - a.tail.LoadAcquire()
}
