// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring provides the bounded single-producer single-consumer
// queue that hands log records from the callsite to the drain loop.
//
// It is a direct generalization of a Lamport ring buffer with cached
// index optimization: the producer caches the consumer's dequeue index
// and vice versa, cutting cross-core cache line traffic to the common
// case of a single atomic load per operation.
package ring

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"github.com/arbie-trading/quicklog/internal/cachepad"
)

// ErrWouldBlock is returned by Enqueue when the ring is full and by
// Dequeue when the ring is empty. It is an alias of [iox.ErrWouldBlock]
// so that callers across the module treat arena and queue backpressure
// the same way.
var ErrWouldBlock = iox.ErrWouldBlock

// SPSC is a bounded ring of T, single producer, single consumer. The
// backing buffer's physical size is rounded up to the next power of 2
// so that masking replaces modulo on both the hot enqueue and dequeue
// paths, but limit still enforces the capacity the caller actually
// asked for: a ring built with New(1_000_000) has room for exactly
// 1,000,000 live elements even though its buffer holds 1,048,576, so
// the boundary a caller was promised does not silently grow just
// because it happened to round up.
type SPSC[T any] struct {
	_          cachepad.Line
	head       atomix.Uint64 // consumer reads from here
	_          cachepad.Line
	cachedTail uint64
	_          cachepad.Line
	tail       atomix.Uint64 // producer writes here
	_          cachepad.Line
	cachedHead uint64
	_          cachepad.Line
	buffer     []T
	mask       uint64
	limit      uint64
}

// New creates a ring with the given capacity. The backing buffer is
// rounded up to the next power of 2, but Cap, Enqueue and Dequeue all
// honor capacity itself, not the rounded-up buffer size. Panics if
// capacity < 1.
func New[T any](capacity int) *SPSC[T] {
	if capacity < 1 {
		panic("ring: capacity must be >= 1")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
		limit:  uint64(capacity),
	}
}

// Enqueue adds an element to the ring (producer only). Returns
// ErrWouldBlock without blocking if the ring already holds limit
// elements.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead >= q.limit {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead >= q.limit {
			return ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) without blocking if the ring is
// empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Cap returns the ring's capacity, as requested by New, not the
// rounded-up size of its backing buffer.
func (q *SPSC[T]) Cap() int {
	return int(q.limit)
}

func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
