// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/iox"

	"github.com/arbie-trading/quicklog/internal/ring"
)

// Flush drains every record currently queued, formatting and writing
// each as one line to the logger's sink, and returns once the queue is
// empty. It may be called from the producer's own goroutine or from a
// separate drainer goroutine or timer, as long as only one goroutine
// drains the Logger.
//
// Calling Flush again with nothing queued is a no-op: it observes
// ErrWouldBlock on the first Dequeue and returns nil immediately.
func (l *Logger) Flush() error {
	for {
		rec, err := l.queue.Dequeue()
		if err != nil {
			if errors.Is(err, ring.ErrWouldBlock) {
				return nil
			}
			return err
		}

		line := formatLine(rec)
		writeErr := l.sink.Write(line)
		l.arena.ReleaseThrough(rec.ArenaEnd)
		if writeErr != nil {
			return newError(SinkError, writeErr)
		}
	}
}

// FlushContext drains into sink until ctx is cancelled, the way a
// cooperating drainer goroutine runs for the life of the process
// instead of being polled on a timer. Unlike Flush, it does not return
// when the queue runs dry: it backs off and retries, using the same
// iox.Backoff{}.Wait()/Reset() pattern the teacher package documents
// for its own Dequeue retry loops, so an idle logger does not spin the
// drainer goroutine at full CPU.
//
// sink is taken as a parameter rather than read from the Logger so a
// caller can drain into a different destination than the one
// installed for ad hoc Flush calls, e.g. a rotated file sink.
func (l *Logger) FlushContext(ctx context.Context, sink Sink) error {
	backoff := iox.Backoff{}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := l.queue.Dequeue()
		if err != nil {
			if errors.Is(err, ring.ErrWouldBlock) {
				backoff.Wait()
				continue
			}
			return err
		}
		backoff.Reset()

		line := formatLine(rec)
		writeErr := sink.Write(line)
		l.arena.ReleaseThrough(rec.ArenaEnd)
		if writeErr != nil {
			return newError(SinkError, writeErr)
		}
	}
}

// formatLine renders a record as "timestamp [LEVEL] file:line message".
func formatLine(rec LogRecord) string {
	ts := time.Unix(0, rec.Timestamp).UTC().Format(time.RFC3339Nano)
	return fmt.Sprintf("%s [%s] %s:%d %s", ts, rec.Level, rec.Meta.File, rec.Meta.Line, rec.Materialize())
}
