// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog_test

import (
	"strings"
	"testing"

	"github.com/arbie-trading/quicklog"
)

// TestInitIsOneShot confirms a second Init call returns the same
// Logger rather than rebuilding one from the later options.
func TestInitIsOneShot(t *testing.T) {
	sink := &captureSink{}
	first, err := quicklog.Init(quicklog.WithSink(sink), quicklog.WithMinLevel(quicklog.LevelTrace))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	otherSink := &captureSink{}
	second, err := quicklog.Init(quicklog.WithSink(otherSink))
	if err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if first != second {
		t.Fatal("second Init returned a different Logger")
	}

	if err := quicklog.Infof("hello from the process-wide logger"); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := quicklog.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(sink.lines) != 1 || !strings.Contains(sink.lines[0], "hello from the process-wide logger") {
		t.Fatalf("want the line through the first sink, got %v (other sink %v)", sink.lines, otherSink.lines)
	}
}
