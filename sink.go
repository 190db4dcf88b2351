// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"io"
	"os"
)

// Sink is the external collaborator that receives finished lines. The
// drain loop is the only caller; the producer never touches a Sink,
// so a Sink that blocks (a slow file) only ever blocks the drainer.
type Sink interface {
	Write(line string) error
}

// WriterSink adapts an io.Writer to the Sink contract, appending a
// trailing newline to each line.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w as a Sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes line followed by a newline.
func (s *WriterSink) Write(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// StdoutSink writes lines to os.Stdout.
var StdoutSink Sink = NewWriterSink(os.Stdout)

// FileSink writes lines to a file opened with append semantics.
type FileSink struct {
	*WriterSink
	f *os.File
}

// NewFileSink opens path for appending (creating it if necessary) and
// returns a Sink backed by it. Call Close when the sink is no longer
// needed.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{WriterSink: NewWriterSink(f), f: f}, nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	return s.f.Close()
}

// nullSink discards every line. Used for benchmarks and tests where
// the point is to measure the core, not I/O.
type nullSink struct{}

// Write discards line and always succeeds.
func (nullSink) Write(line string) error { return nil }

// NullSink is a Sink that discards everything written to it.
var NullSink Sink = nullSink{}
