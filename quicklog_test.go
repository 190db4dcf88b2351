// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/arbie-trading/quicklog"
	"github.com/arbie-trading/quicklog/logfield"
	"github.com/arbie-trading/quicklog/serialize"
)

// captureSink is safe for concurrent Write: TestFlushContextDrainsUntilCancelled
// reads lines from the test goroutine while a drainer goroutine writes them.
type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *captureSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

func newTestLogger(t *testing.T, opts ...quicklog.Option) (*quicklog.Logger, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	base := []quicklog.Option{
		quicklog.WithArenaCapacity(4096),
		quicklog.WithQueueCapacity(64),
		quicklog.WithMinLevel(quicklog.LevelTrace),
		quicklog.WithSink(sink),
	}
	l, err := quicklog.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, sink
}

// TestHelloWorld covers a callsite with no arguments at all: the
// message passes through untouched and needs no arena reservation.
func TestHelloWorld(t *testing.T) {
	l, sink := newTestLogger(t)

	if err := l.Infof("hello world"); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(sink.lines) != 1 {
		t.Fatalf("want 1 line, got %d: %v", len(sink.lines), sink.lines)
	}
	if !strings.Contains(sink.lines[0], "hello world") {
		t.Fatalf("line %q does not contain message", sink.lines[0])
	}
	if !strings.Contains(sink.lines[0], "[INFO]") {
		t.Fatalf("line %q missing level tag", sink.lines[0])
	}
}

// TestCloneDeferredInteger covers the clone-defer strategy
// interpolated positionally into a template.
func TestCloneDeferredInteger(t *testing.T) {
	l, sink := newTestLogger(t)

	x := 10
	if err := l.Infof("value of some_var: {}", quicklog.Value(x)); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(sink.lines) != 1 {
		t.Fatalf("want 1 line, got %d", len(sink.lines))
	}
	if !strings.HasSuffix(sink.lines[0], "value of some_var: 10") {
		t.Fatalf("line %q does not end with expected text", sink.lines[0])
	}
}

// TestOrderAggregateSerialize covers the serialize strategy end to end
// through a real Logger and Flush, exercising logfield's selective
// encoder for a struct with an Optional field.
func TestOrderAggregateSerialize(t *testing.T) {
	l, sink := newTestLogger(t)

	price := serialize.Flt[float64]{V: 100.5}
	order := logfield.New("Order",
		logfield.F("id", serialize.Int[int64]{V: 42}),
		logfield.F("price", serialize.Optional[serialize.Flt[float64]]{Value: &price}),
		logfield.F("size", serialize.Flt[float64]{V: 10}),
	)

	if err := l.Infof("order placed: {}", quicklog.Serialize(order)); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "Order { id: 42, price: Some(100.5), size: 10.0 }"
	if len(sink.lines) != 1 || !strings.HasSuffix(sink.lines[0], want) {
		t.Fatalf("line %v does not end with %q", sink.lines, want)
	}
}

// TestSequenceSerialize covers a Slice of fixed-width elements.
func TestSequenceSerialize(t *testing.T) {
	l, sink := newTestLogger(t)

	seq := serialize.Slice[serialize.Int[int32]]{Items: []serialize.Int[int32]{{V: 100}, {V: 200}, {V: 300}}}
	if err := l.Infof("batch: {}", quicklog.Serialize(seq)); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "batch: [100, 200, 300]"
	if len(sink.lines) != 1 || !strings.HasSuffix(sink.lines[0], want) {
		t.Fatalf("line %v does not end with %q", sink.lines, want)
	}
}

// TestQueueFullDropsRecord exercises the boundary where the record
// queue has no free slot: Infof reports QueueFull (an ErrWouldBlock)
// and the record is dropped rather than blocking.
func TestQueueFullDropsRecord(t *testing.T) {
	l, sink := newTestLogger(t, quicklog.WithQueueCapacity(4))

	var lastErr error
	for i := 0; i < 64; i++ {
		lastErr = l.Infof("filler")
		if lastErr != nil {
			break
		}
	}

	if lastErr == nil {
		t.Fatal("want QueueFull once the ring saturates, got nil")
	}
	if !quicklog.IsWouldBlock(lastErr) {
		t.Fatalf("want ErrWouldBlock-compatible error, got %v", lastErr)
	}
	var qerr *quicklog.Error
	if ok := asQuicklogError(lastErr, &qerr); !ok || qerr.Kind != quicklog.QueueFull {
		t.Fatalf("want Kind QueueFull, got %v", lastErr)
	}

	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(sink.lines) == 0 {
		t.Fatal("want some records to have been queued before saturation")
	}
}

// TestQueueCapacityHonorsNonPow2Request covers §8's boundary for a
// queue capacity that is not a power of 2: the record queue's backing
// buffer rounds up internally, but the logger must still accept
// exactly the requested number of records before reporting QueueFull,
// not the rounded-up buffer size.
func TestQueueCapacityHonorsNonPow2Request(t *testing.T) {
	const requested = 10
	l, sink := newTestLogger(t, quicklog.WithQueueCapacity(requested))

	for i := 0; i < requested; i++ {
		if err := l.Infof("filler"); err != nil {
			t.Fatalf("Infof(%d): %v", i, err)
		}
	}

	err := l.Infof("one too many")
	if !quicklog.IsWouldBlock(err) {
		t.Fatalf("want QueueFull at the requested boundary, got %v", err)
	}

	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(sink.lines) != requested {
		t.Fatalf("want %d drained lines, got %d", requested, len(sink.lines))
	}
}

// TestArenaOverflowDropsRecord exercises the boundary where the byte
// arena has no room for a reservation: Infof reports ArenaOverflow and
// the record is dropped without any bytes leaking from the attempt.
func TestArenaOverflowDropsRecord(t *testing.T) {
	l, _ := newTestLogger(t, quicklog.WithArenaCapacity(64), quicklog.WithQueueCapacity(1024))

	big := serialize.Text(strings.Repeat("x", 128))
	err := l.Infof("{}", quicklog.Serialize(big))
	if err == nil {
		t.Fatal("want ArenaOverflow for an oversized reservation")
	}
	if !quicklog.IsWouldBlock(err) {
		t.Fatalf("want ErrWouldBlock-compatible error, got %v", err)
	}
	var qerr *quicklog.Error
	if ok := asQuicklogError(err, &qerr); !ok || qerr.Kind != quicklog.ArenaOverflow {
		t.Fatalf("want Kind ArenaOverflow, got %v", err)
	}

	// The arena must still be usable afterwards: the failed reservation
	// must not have left head advanced past what was actually committed.
	small := 7
	if err := l.Infof("{}", quicklog.Value(small)); err != nil {
		t.Fatalf("Infof after overflow: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func asQuicklogError(err error, target **quicklog.Error) bool {
	qe, ok := err.(*quicklog.Error)
	if !ok {
		return false
	}
	*target = qe
	return true
}

// TestFlushIsIdempotentWhenEmpty covers §8's idempotence requirement:
// flushing an empty queue twice in a row does nothing on the second
// call.
func TestFlushIsIdempotentWhenEmpty(t *testing.T) {
	l, sink := newTestLogger(t)

	if err := l.Flush(); err != nil {
		t.Fatalf("first Flush: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(sink.lines) != 0 {
		t.Fatalf("want no lines from an empty queue, got %v", sink.lines)
	}
}

// TestBelowMinLevelDoesNoWork confirms a callsite under the filter
// never reaches the sink.
func TestBelowMinLevelDoesNoWork(t *testing.T) {
	l, sink := newTestLogger(t, quicklog.WithMinLevel(quicklog.LevelWarn))

	if err := l.Infof("should be filtered"); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(sink.lines) != 0 {
		t.Fatalf("want no lines below the minimum level, got %v", sink.lines)
	}
}

// TestStructuredFields covers the named-field form.
func TestStructuredFields(t *testing.T) {
	l, sink := newTestLogger(t)

	if err := l.InfoFields("request completed",
		quicklog.Named("status", quicklog.Value(200)),
		quicklog.Named("retries", quicklog.Value(0)),
	); err != nil {
		t.Fatalf("InfoFields: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "request completed status=200 retries=0"
	if len(sink.lines) != 1 || !strings.HasSuffix(sink.lines[0], want) {
		t.Fatalf("line %v does not end with %q", sink.lines, want)
	}
}
