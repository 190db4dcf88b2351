// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logfield is the selective encoder for user-defined
// aggregates: it serializes a declared subset of a struct's fields,
// in the order they were declared, into a single arena reservation,
// and produces a decoder that replays them as
// "TypeName { field: value, ... }".
//
// A real macro front-end would expand a tagged struct definition
// straight into this shape at compile time: one constant-sized
// reservation (when every tagged field is fixed-width) and a
// straight-line sequence of field writes, with untagged fields never
// touched. Since this module has no macro front-end, [New] is the
// hand-written equivalent: callers list the tagged fields once, in
// source order, and this package does the rest.
package logfield

import (
	"strings"

	"github.com/arbie-trading/quicklog/internal/arena"
	"github.com/arbie-trading/quicklog/serialize"
)

// Field binds a tagged field's name to its serializable value.
type Field struct {
	Name  string
	Value serialize.Serialize
}

// F constructs a Field. Use it to build the argument list passed to
// [New] in the struct's declared field order.
func F(name string, v serialize.Serialize) Field {
	return Field{Name: name, Value: v}
}

// Struct is the selective encoder for one aggregate value: typeName
// plus the ordered list of its tagged fields. It implements
// [serialize.Serialize], so it can be used directly as a log argument
// under the serialize strategy.
type Struct struct {
	TypeName string
	Fields   []Field
}

// New builds a selective encoder for typeName from its tagged fields,
// in source order. Untagged fields simply have no corresponding Field
// entry: they are never read or written.
func New(typeName string, fields ...Field) Struct {
	return Struct{TypeName: typeName, Fields: fields}
}

// BufferSizeRequired is the sum of the tagged fields' required sizes.
// When every field is fixed-width this sum is effectively a constant
// for a given typeName shape, letting the front-end adapter reserve
// exactly one window per struct instead of probing field by field.
func (s Struct) BufferSizeRequired() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Value.BufferSizeRequired()
	}
	return total
}

// Encode reserves no window of its own: it consumes w, sized by a
// prior call to BufferSizeRequired, and writes each tagged field's
// bytes sequentially into sub-windows of it. The whole struct yields a
// single Store, whose decoder keeps each field's Store and replays that
// field's decoder over the field's byte range.
func (s Struct) Encode(w arena.Window) serialize.Store {
	type fieldDecoder struct {
		name   string
		off, n int
		store  serialize.Store
	}
	decoders := make([]fieldDecoder, 0, len(s.Fields))

	off := 0
	for _, f := range s.Fields {
		n := f.Value.BufferSizeRequired()
		store := f.Value.Encode(w.Sub(off, n))
		decoders = append(decoders, fieldDecoder{name: f.Name, off: off, n: n, store: store})
		off += n
	}

	typeName := s.TypeName
	return serialize.NewStore(w, func(b []byte) string {
		var sb strings.Builder
		sb.WriteString(typeName)
		sb.WriteString(" { ")
		for i, d := range decoders {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.name)
			sb.WriteString(": ")
			sb.WriteString(d.store.DecodeBytes(b[d.off : d.off+d.n]))
		}
		sb.WriteString(" }")
		return sb.String()
	})
}
