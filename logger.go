// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"runtime"
	"strings"

	"github.com/arbie-trading/quicklog/internal/arena"
	"github.com/arbie-trading/quicklog/internal/ring"
	"github.com/arbie-trading/quicklog/serialize"
)

// Logger is the front-end adapter: the object callsites log through.
// Its hot path (log) does at most one arena reservation and one queue
// enqueue, both wait-free from the caller's point of view, and returns
// without ever touching the sink.
type Logger struct {
	arena *arena.Arena
	queue *ring.SPSC[LogRecord]
	clock Clock
	sink  Sink
	level levelFilter
}

// New builds a standalone Logger from opts. Unlike [Init], New never
// touches the process-wide singleton: call it directly when a test or
// a library wants its own Logger instead of sharing the process-wide
// one.
func New(opts ...Option) (*Logger, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	l := &Logger{
		arena: arena.New(c.arenaBytes),
		queue: ring.New[LogRecord](c.queueSlots),
		clock: c.clock,
		sink:  c.sink,
	}
	l.level.set(c.minLevel)
	return l, nil
}

// SetMinLevel changes the minimum level callsites are filtered against.
// Safe to call concurrently with logging.
func (l *Logger) SetMinLevel(level Level) {
	l.level.set(level)
}

// SetSink installs a new sink for subsequent Flush calls. The drain
// loop is the only other reader of the sink, so this is safe to call
// between Flush calls but not concurrently with one.
func (l *Logger) SetSink(s Sink) {
	l.sink = s
}

// Tracef, Debugf, Infof, Warnf and Errorf record a callsite at the
// given level under the positional form: each "{}" in template is
// replaced, in order, by the Text() of the matching arg's Store once
// the record is drained. Below the logger's minimum level, the call
// does no arena or queue work at all.
func (l *Logger) Tracef(template string, args ...Arg) error {
	return l.log(LevelTrace, template, args, nil)
}

func (l *Logger) Debugf(template string, args ...Arg) error {
	return l.log(LevelDebug, template, args, nil)
}

func (l *Logger) Infof(template string, args ...Arg) error {
	return l.log(LevelInfo, template, args, nil)
}

func (l *Logger) Warnf(template string, args ...Arg) error {
	return l.log(LevelWarn, template, args, nil)
}

func (l *Logger) Errorf(template string, args ...Arg) error {
	return l.log(LevelError, template, args, nil)
}

// TraceFields, DebugFields, InfoFields, WarnFields and ErrorFields
// record a callsite under the structured field form: message first,
// then each field rendered as "name=value" in the order given.
func (l *Logger) TraceFields(message string, fields ...NamedArg) error {
	return l.log(LevelTrace, message, nil, fields)
}

func (l *Logger) DebugFields(message string, fields ...NamedArg) error {
	return l.log(LevelDebug, message, nil, fields)
}

func (l *Logger) InfoFields(message string, fields ...NamedArg) error {
	return l.log(LevelInfo, message, nil, fields)
}

func (l *Logger) WarnFields(message string, fields ...NamedArg) error {
	return l.log(LevelWarn, message, nil, fields)
}

func (l *Logger) ErrorFields(message string, fields ...NamedArg) error {
	return l.log(LevelError, message, nil, fields)
}

// log is the single hot path every public method above funnels
// through: level check, size sum, one reservation, sub-window encode
// of each argument, materializer closure, enqueue. Any failure past
// the reservation rolls the reservation back before returning, so a
// dropped record never leaks arena bytes.
func (l *Logger) log(level Level, template string, args []Arg, fields []NamedArg) error {
	if !l.level.enabled(level) {
		return nil
	}

	file, line := callerMeta()
	meta := &StaticMeta{File: file, Line: line, Template: template}

	total := 0
	for _, a := range args {
		total += a.size
	}
	for _, f := range fields {
		total += f.Arg.size
	}

	if len(args) == 0 && len(fields) == 0 {
		rec := LogRecord{
			Timestamp:   l.clock.Now(),
			Level:       level,
			Meta:        meta,
			Materialize: func() string { return template },
			ArenaEnd:    l.arena.CurrentHead(),
		}
		if err := l.queue.Enqueue(&rec); err != nil {
			return newError(QueueFull, err)
		}
		return nil
	}

	window, err := l.arena.Reserve(total)
	if err != nil {
		return newError(ArenaOverflow, err)
	}

	argStores := make([]serialize.Store, len(args))
	off := 0
	for i, a := range args {
		argStores[i] = a.encode(window.Sub(off, a.size))
		off += a.size
	}

	fieldNames := make([]string, len(fields))
	fieldStores := make([]serialize.Store, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.Name
		fieldStores[i] = f.Arg.encode(window.Sub(off, f.Arg.size))
		off += f.Arg.size
	}

	rec := LogRecord{
		Timestamp:   l.clock.Now(),
		Level:       level,
		Meta:        meta,
		Materialize: materializer(template, argStores, fieldNames, fieldStores),
		ArenaEnd:    window.End(),
	}

	if err := l.queue.Enqueue(&rec); err != nil {
		l.arena.Abandon(window)
		return newError(QueueFull, err)
	}
	return nil
}

// callerMeta resolves the file and line of the frame that called the
// exported method or function which in turn called log.
func callerMeta() (string, int) {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

func materializer(template string, argStores []serialize.Store, fieldNames []string, fieldStores []serialize.Store) MaterializeFunc {
	return func() string {
		var sb strings.Builder
		sb.WriteString(interpolate(template, argStores))
		for i, name := range fieldNames {
			sb.WriteByte(' ')
			sb.WriteString(name)
			sb.WriteByte('=')
			sb.WriteString(fieldStores[i].Text())
		}
		return sb.String()
	}
}

// interpolate replaces each "{}" placeholder in template, in order,
// with the Text() of the matching store. Placeholders past the last
// store and stores past the last placeholder are both left as-is: a
// mismatched template is a callsite bug, not something to paper over.
func interpolate(template string, stores []serialize.Store) string {
	if len(stores) == 0 {
		return template
	}
	var sb strings.Builder
	idx := 0
	for i := 0; i < len(template); i++ {
		if template[i] == '{' && i+1 < len(template) && template[i+1] == '}' {
			if idx < len(stores) {
				sb.WriteString(stores[idx].Text())
				idx++
				i++
				continue
			}
		}
		sb.WriteByte(template[i])
	}
	return sb.String()
}
