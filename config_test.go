// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arbie-trading/quicklog"
)

// TestWithFlushIntoFileWritesLines covers the Option wiring path for
// NewFileSink: Flush should append formatted lines to the file it
// opened rather than whatever the default sink would be.
func TestWithFlushIntoFileWritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quicklog.log")

	l, err := quicklog.New(
		quicklog.WithArenaCapacity(4096),
		quicklog.WithQueueCapacity(64),
		quicklog.WithMinLevel(quicklog.LevelTrace),
		quicklog.WithFlushIntoFile(path),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := l.Infof("hello file sink"); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello file sink") {
		t.Fatalf("file content %q does not contain the logged line", data)
	}
}

// TestWithFlushIntoFileSurfacesOpenError covers the error-threading
// path: a path that cannot be opened (inside a file, not a directory)
// must surface from New rather than panicking or being silently
// ignored.
func TestWithFlushIntoFileSurfacesOpenError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-directory")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	badPath := filepath.Join(blocker, "quicklog.log")

	_, err := quicklog.New(
		quicklog.WithArenaCapacity(4096),
		quicklog.WithQueueCapacity(64),
		quicklog.WithFlushIntoFile(badPath),
	)
	if err == nil {
		t.Fatal("want an error opening a file sink under a non-directory path")
	}
}
