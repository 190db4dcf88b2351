// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"fmt"

	"code.hybscloud.com/iox"
)

// Kind classifies a producer- or drain-side failure.
type Kind int

const (
	// ArenaOverflow means a reservation could not fit without
	// overwriting un-drained bytes. The caller's record is dropped;
	// the arena window reserved for it (if any) is rolled back.
	ArenaOverflow Kind = iota
	// QueueFull means the record queue had no free slot. The arena
	// window already reserved for the callsite is released.
	QueueFull
	// SinkError means the sink's Write returned an error during
	// drain. The record's arena bytes are released regardless.
	SinkError
	// DecodeMismatch means a decoder read a different number of bytes
	// than its encoder wrote, a programmer error in a type's Serialize
	// implementation. No code path in this module reports this Kind:
	// decoders do not compare the bytes they read with what their
	// encoder wrote.
	DecodeMismatch
)

func (k Kind) String() string {
	switch k {
	case ArenaOverflow:
		return "arena overflow"
	case QueueFull:
		return "queue full"
	case SinkError:
		return "sink error"
	case DecodeMismatch:
		return "decode mismatch"
	default:
		return "unknown"
	}
}

// Error is the coded error type producer- and drain-side failures
// report. It follows the teacher package's sentinel-plus-predicate
// style (see [ErrWouldBlock], [IsWouldBlock]): Kind is inspectable
// directly, and errors.Is still works against the wrapped cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quicklog: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("quicklog: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ArenaOverflow and QueueFull as [ErrWouldBlock]: both mean
// "this callsite's record was dropped, try again later," the same
// control-flow signal the teacher's queue uses for a full or empty
// ring. Other kinds (SinkError, DecodeMismatch) are real failures and
// never match.
func (e *Error) Is(target error) bool {
	if target == ErrWouldBlock {
		return e.Kind == ArenaOverflow || e.Kind == QueueFull
	}
	return false
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// ErrWouldBlock is the alias [iox.ErrWouldBlock] that both ArenaOverflow
// and QueueFull errors match through [Error.Is]: from the caller's point
// of view, both are "try again later, this was not a failure" signals,
// not unexpected errors.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err is an ArenaOverflow or QueueFull
// condition (or any other [iox.ErrWouldBlock]-compatible error).
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a
// failure). Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or any other semantic signal.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
