// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package serialize is the two-tier encoding contract the hot path
// uses to stash argument bytes in the arena and reconstruct a
// displayable fragment of them later, off the hot path, at drain time.
//
// Serialize covers variable-size values: it writes into an arena
// window and returns a Store that remembers how to decode the bytes it
// wrote. FixedWidth is the compile-time-sized refinement: its width
// does not depend on the wrapped value, which is what lets Slice pack
// fixed-width elements without per-element length prefixes. The
// selective struct encoder in package logfield does not consult it; it
// sums each field's BufferSizeRequired.
//
// Go has no const-generic byte width tied to a type parameter, so the
// per-width contract is rendered as a family of concrete wrapper types
// (Int, Uint, Flt, Bool) parameterized over the matching Go kind
// instead of a single FixedSizeSerialize[N] trait. Each wrapper's width
// is still a compile-time property: it falls out of unsafe.Sizeof on
// the wrapped type, never a runtime branch.
package serialize

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/arbie-trading/quicklog/internal/arena"
)

// DecodeFunc reconstructs a displayable text fragment from the raw
// bytes an encoder wrote. It must be pure: the same bytes always
// produce the same text, and it must not read anything beyond the
// slice it is given.
type DecodeFunc func([]byte) string

// Serialize writes a value into an arena window and returns a Store
// that can reconstruct its display text later.
type Serialize interface {
	// BufferSizeRequired is an upper bound on the bytes Encode writes.
	BufferSizeRequired() int
	// Encode writes into w and returns a Store describing the bytes
	// written. w must be at least BufferSizeRequired() bytes long.
	Encode(w arena.Window) Store
}

// FixedWidth is satisfied by types whose encoded size is a constant,
// independent of the wrapped value. Slice uses it to decide whether
// elements are packed or each carries its own length prefix.
type FixedWidth interface {
	Serialize
	Width() int
}

// Store is the `{bytes, decoder}` pair a drained record holds onto: it
// does not own the arena bytes, but it carries the coordinates needed
// to read them safely until the record that produced it is drained.
type Store struct {
	window arena.Window
	decode DecodeFunc
}

// Text decodes the Store's bytes into their display fragment.
// Idempotent: calling it twice re-reads the same bytes and returns the
// same text, since the bytes are not mutated by decoding.
func (s Store) Text() string {
	if s.decode == nil {
		return ""
	}
	return s.decode(s.window.Bytes())
}

// End returns the logical end offset of the arena bytes this Store
// reads from, for the drain loop's ReleaseThrough call.
func (s Store) End() uint64 {
	return s.window.End()
}

// newStore is the constructor encoders in this package use.
func newStore(w arena.Window, decode DecodeFunc) Store {
	return Store{window: w, decode: decode}
}

// NewStore lets a Serialize implementation in another package (such as
// a selective struct encoder) mint a Store. The decode function must
// follow the same purity rules as any in-package decoder: same bytes
// in, same text out, nothing read beyond the given slice.
func NewStore(w arena.Window, decode DecodeFunc) Store {
	return newStore(w, decode)
}

// DecodeBytes runs the Store's decoder directly against an explicit
// byte slice rather than its own window. A composite encoder defined
// in another package uses this to fold a nested Store's decoder into
// its own, once it already has the combined region's bytes in hand.
func (s Store) DecodeBytes(b []byte) string {
	if s.decode == nil {
		return ""
	}
	return s.decode(b)
}

// SignedInteger is the set of Go kinds with natural little-endian
// widths that [Int] adapts to the Serialize contract.
type SignedInteger interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInteger is the unsigned counterpart of SignedInteger.
type UnsignedInteger interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FloatKind is the set of Go floating-point kinds [Flt] adapts.
type FloatKind interface {
	~float32 | ~float64
}

// Int adapts a signed integer to the fixed-width Serialize contract.
type Int[T SignedInteger] struct{ V T }

func (n Int[T]) Width() int             { return int(unsafe.Sizeof(n.V)) }
func (n Int[T]) BufferSizeRequired() int { return n.Width() }

func (n Int[T]) Encode(w arena.Window) Store {
	putLE(w.Bytes(), uint64(n.V), n.Width())
	width := n.Width()
	return newStore(w, func(b []byte) string {
		return strconv.FormatInt(signExtend(getLE(b, width), width), 10)
	})
}

// Uint adapts an unsigned integer to the fixed-width Serialize contract.
type Uint[T UnsignedInteger] struct{ V T }

func (n Uint[T]) Width() int             { return int(unsafe.Sizeof(n.V)) }
func (n Uint[T]) BufferSizeRequired() int { return n.Width() }

func (n Uint[T]) Encode(w arena.Window) Store {
	putLE(w.Bytes(), uint64(n.V), n.Width())
	width := n.Width()
	return newStore(w, func(b []byte) string {
		return strconv.FormatUint(getLE(b, width), 10)
	})
}

// Flt adapts a floating-point value to the fixed-width Serialize
// contract. Display uses the shortest 'g' form and appends ".0" when
// that form has no decimal point or exponent, so whole numbers still
// show ".0" (10 displays as "10.0"); exponent forms such as "1e+21"
// are left as they are.
type Flt[T FloatKind] struct{ V T }

func (f Flt[T]) Width() int             { return int(unsafe.Sizeof(f.V)) }
func (f Flt[T]) BufferSizeRequired() int { return f.Width() }

func (f Flt[T]) Encode(w arena.Window) Store {
	width := f.Width()
	b := w.Bytes()
	if width == 4 {
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f.V)))
	} else {
		binary.LittleEndian.PutUint64(b, math.Float64bits(float64(f.V)))
	}
	return newStore(w, func(b []byte) string {
		var v float64
		if width == 4 {
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		} else {
			v = math.Float64frombits(binary.LittleEndian.Uint64(b))
		}
		return formatFloat(v, width)
	})
}

// Bool adapts a boolean to the fixed-width Serialize contract: one
// byte, 1 for true and 0 for false.
type Bool struct{ V bool }

func (Bool) Width() int             { return 1 }
func (Bool) BufferSizeRequired() int { return 1 }

func (n Bool) Encode(w arena.Window) Store {
	b := w.Bytes()
	if n.V {
		b[0] = 1
	} else {
		b[0] = 0
	}
	return newStore(w, func(b []byte) string {
		if b[0] != 0 {
			return "true"
		}
		return "false"
	})
}

// Ref delegates to T without copying: the arena window is still sized
// and written by T's own Encode, so Ref exists purely so callers can
// spell "pass this aggregate by reference" in the front-end adapter's
// argument list without a value copy at the call site.
type Ref[T Serialize] struct{ Ptr *T }

func (r Ref[T]) BufferSizeRequired() int { return (*r.Ptr).BufferSizeRequired() }
func (r Ref[T]) Encode(w arena.Window) Store { return (*r.Ptr).Encode(w) }

// Optional encodes a one-byte presence tag followed by T's bytes when
// Value is non-nil. An absent Optional displays as the literal "None";
// a present one as "Some(<T's display>)".
type Optional[T Serialize] struct{ Value *T }

func (o Optional[T]) BufferSizeRequired() int {
	if o.Value == nil {
		return 1
	}
	return 1 + (*o.Value).BufferSizeRequired()
}

func (o Optional[T]) Encode(w arena.Window) Store {
	b := w.Bytes()
	if o.Value == nil {
		b[0] = 0
		return newStore(w, func(b []byte) string { return "None" })
	}
	b[0] = 1
	inner := (*o.Value).Encode(w.Sub(1, w.Len()-1))
	return newStore(w, func(b []byte) string {
		if b[0] == 0 {
			return "None"
		}
		return "Some(" + inner.decode(b[1:]) + ")"
	})
}

// Slice encodes an ordered sequence: an 8-byte little-endian length
// prefix, then per-element encodings. If T is fixed-width, elements
// are packed with no per-element prefix; otherwise each element is
// preceded by its own 8-byte length prefix.
type Slice[T Serialize] struct{ Items []T }

func (s Slice[T]) fixedWidth() (int, bool) {
	var zero T
	fw, ok := any(zero).(FixedWidth)
	if !ok {
		return 0, false
	}
	return fw.Width(), true
}

func (s Slice[T]) BufferSizeRequired() int {
	total := 8
	if width, ok := s.fixedWidth(); ok {
		return total + width*len(s.Items)
	}
	for _, it := range s.Items {
		total += 8 + it.BufferSizeRequired()
	}
	return total
}

func (s Slice[T]) Encode(w arena.Window) Store {
	b := w.Bytes()
	binary.LittleEndian.PutUint64(b, uint64(len(s.Items)))
	off := 8

	type elemDecoder struct {
		off, n int
		decode DecodeFunc
	}
	decoders := make([]elemDecoder, 0, len(s.Items))

	if width, ok := s.fixedWidth(); ok {
		for _, it := range s.Items {
			store := it.Encode(w.Sub(off, width))
			decoders = append(decoders, elemDecoder{off: off, n: width, decode: store.decode})
			off += width
		}
	} else {
		for _, it := range s.Items {
			n := it.BufferSizeRequired()
			binary.LittleEndian.PutUint64(b[off:], uint64(n))
			store := it.Encode(w.Sub(off+8, n))
			decoders = append(decoders, elemDecoder{off: off + 8, n: n, decode: store.decode})
			off += 8 + n
		}
	}

	_, isFixed := s.fixedWidth()
	variableWidth := !isFixed

	return newStore(w, func(b []byte) string {
		count := int(binary.LittleEndian.Uint64(b))
		var sb strings.Builder
		sb.WriteByte('[')
		pos := 8
		for i := 0; i < count; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var n int
			if variableWidth {
				n = int(binary.LittleEndian.Uint64(b[pos:]))
				pos += 8
			} else if i < len(decoders) {
				n = decoders[i].n
			}
			if i < len(decoders) {
				sb.WriteString(decoders[i].decode(b[pos : pos+n]))
			}
			pos += n
		}
		sb.WriteByte(']')
		return sb.String()
	})
}

// Text adapts a string to the byte-string contract: an 8-byte length
// prefix followed by the raw UTF-8 bytes, displayed verbatim.
type Text string

func (t Text) BufferSizeRequired() int { return 8 + len(t) }

func (t Text) Encode(w arena.Window) Store {
	b := w.Bytes()
	binary.LittleEndian.PutUint64(b, uint64(len(t)))
	copy(b[8:], t)
	return newStore(w, func(b []byte) string {
		n := int(binary.LittleEndian.Uint64(b))
		return string(b[8 : 8+n])
	})
}

// Raw adapts a byte slice to the byte-string contract, identical to
// Text but for already-encoded bytes rather than a Go string.
type Raw []byte

func (r Raw) BufferSizeRequired() int { return 8 + len(r) }

func (r Raw) Encode(w arena.Window) Store {
	b := w.Bytes()
	binary.LittleEndian.PutUint64(b, uint64(len(r)))
	copy(b[8:], r)
	return newStore(w, func(b []byte) string {
		n := int(binary.LittleEndian.Uint64(b))
		return string(b[8 : 8+n])
	})
}

func putLE(b []byte, v uint64, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, v)
	}
}

func getLE(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

// signExtend reinterprets the low `width` bytes of u as a two's
// complement signed integer of that width, sign-extended to int64.
func signExtend(u uint64, width int) int64 {
	bits := uint(width) * 8
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

func formatFloat(v float64, width int) string {
	bitSize := 64
	if width == 4 {
		bitSize = 32
	}
	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
