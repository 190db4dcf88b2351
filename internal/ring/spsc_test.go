// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring_test

import (
	"errors"
	"testing"

	"github.com/arbie-trading/quicklog/internal/ring"
)

func TestSPSCFIFOOrder(t *testing.T) {
	q := ring.New[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestSPSCNonPow2Capacity confirms Cap and the enqueue boundary honor
// the capacity New was actually asked for, not the rounded-up size of
// the backing buffer: a ring built with 5 holds a 5th element and
// rejects a 6th, even though its buffer is sized 8.
func TestSPSCNonPow2Capacity(t *testing.T) {
	q := ring.New[int](5)
	if q.Cap() != 5 {
		t.Fatalf("Cap: got %d, want 5", q.Cap())
	}

	for i := range 5 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Enqueue past requested capacity: got %v, want ErrWouldBlock", err)
	}

	for i := range 5 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}
}

func TestSPSCRefillAfterDrain(t *testing.T) {
	q := ring.New[int](4)

	for round := 0; round < 3; round++ {
		for i := range 4 {
			v := round*10 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d Enqueue(%d): %v", round, i, err)
			}
		}
		for i := range 4 {
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d Dequeue(%d): %v", round, i, err)
			}
			if val != round*10+i {
				t.Fatalf("round %d Dequeue(%d): got %d, want %d", round, i, val, round*10+i)
			}
		}
	}
}
