// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quicklog

import (
	"fmt"

	"github.com/arbie-trading/quicklog/internal/arena"
	"github.com/arbie-trading/quicklog/serialize"
)

// Arg is one callsite argument, already bound to the strategy that
// will encode it. Building an Arg never touches the arena: it only
// records how much space the value will need and how to write it once
// a window exists, so the front-end adapter can size and reserve one
// window per callsite before doing any encoding (see §4.7: partial
// callsite encoding is forbidden).
type Arg struct {
	size   int
	encode func(w arena.Window) serialize.Store
}

func argOf(v serialize.Serialize) Arg {
	return Arg{size: v.BufferSizeRequired(), encode: v.Encode}
}

// Serialize binds v under the serialize strategy: the preferred path
// for aggregates that implement the Serialize contract themselves
// (structs built with package logfield, slices, optionals, ...).
// Target callsite cost: a handful of nanoseconds.
func Serialize(v serialize.Serialize) Arg {
	return argOf(v)
}

// Value binds v under the clone-defer strategy: a byte copy of a
// small scalar into the arena, with a typed decoder resolved once at
// the callsite rather than an arbitrary producer-side closure. This
// is the default strategy for small Copy-like values.
//
// Only primitive scalar kinds qualify: storing an arbitrary Go value's
// bytes in the arena would copy any pointers it contains into a plain
// []byte the garbage collector does not scan, which is unsound the
// moment the original value's last other reference goes away. Passing
// anything else falls back to the eager-debug strategy, which copies
// already-formatted text instead of raw bytes.
func Value(v any) Arg {
	switch x := v.(type) {
	case int:
		return argOf(serialize.Int[int64]{V: int64(x)})
	case int8:
		return argOf(serialize.Int[int8]{V: x})
	case int16:
		return argOf(serialize.Int[int16]{V: x})
	case int32:
		return argOf(serialize.Int[int32]{V: x})
	case int64:
		return argOf(serialize.Int[int64]{V: x})
	case uint:
		return argOf(serialize.Uint[uint64]{V: uint64(x)})
	case uint8:
		return argOf(serialize.Uint[uint8]{V: x})
	case uint16:
		return argOf(serialize.Uint[uint16]{V: x})
	case uint32:
		return argOf(serialize.Uint[uint32]{V: x})
	case uint64:
		return argOf(serialize.Uint[uint64]{V: x})
	case float32:
		return argOf(serialize.Flt[float32]{V: x})
	case float64:
		return argOf(serialize.Flt[float64]{V: x})
	case bool:
		return argOf(serialize.Bool{V: x})
	case string:
		return argOf(serialize.Text(x))
	default:
		return Debug(v)
	}
}

// Display binds v under the eager-display strategy: v is formatted
// with fmt.Sprint at the callsite (off the arena/queue fast path) and
// the resulting text is copied into the arena. Use for values whose
// Display form is cheap to produce but that do not implement
// Serialize.
func Display(v any) Arg {
	return argOf(serialize.Text(fmt.Sprint(v)))
}

// Debug binds v under the eager-debug strategy: v is formatted with
// Go's "%+v" verb at the callsite, and the resulting text is copied
// into the arena. Use for values you want a field-by-field debug
// rendering of rather than their Display form.
func Debug(v any) Arg {
	return argOf(serialize.Text(fmt.Sprintf("%+v", v)))
}

// NamedArg binds an Arg to an explicit field name for the structured
// field form: arguments appended after the message as "name=value".
type NamedArg struct {
	Name string
	Arg  Arg
}

// Named constructs a NamedArg.
func Named(name string, a Arg) NamedArg {
	return NamedArg{Name: name, Arg: a}
}
