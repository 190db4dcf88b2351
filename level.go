// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import "code.hybscloud.com/atomix"

// Level is the total order trace < debug < info < warn < error. Each
// Logger's minimum level filter discards below-threshold callsites
// before any arena work, so the check must be a single relaxed load.
type Level uint32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String renders the level tag used in a drained line's prefix.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// levelFilter is a Logger's minimum level, backed by a plain
// atomic word so the hot-path check is one relaxed load.
type levelFilter struct {
	min atomix.Uint32
}

func (f *levelFilter) set(l Level) {
	f.min.StoreRelease(uint32(l))
}

func (f *levelFilter) enabled(l Level) bool {
	return uint32(l) >= f.min.LoadRelaxed()
}
