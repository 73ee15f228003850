// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxBits is the widest scalar value supported. Integer values are stored as
// MaxBits wide two's complement words.
//
const MaxBits = 256

// Kind identifies the concrete variant of a hardware value.
//
type Kind uint8

// Hardware value kinds.
//
const (
	IntegerKind Kind = iota
	UnsignedKind
	SignedKind
	WireKind
	EnumKind
	ArrayKind
	RecordKind
)

var kindNames = [...]string{
	IntegerKind:  "integer",
	UnsignedKind: "unsigned",
	SignedKind:   "signed",
	WireKind:     "wire",
	EnumKind:     "enum",
	ArrayKind:    "array",
	RecordKind:   "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar returns true for the integer family (Integer, Unsigned, Signed, Wire
// and Enum).
//
func (k Kind) Scalar() bool { return k <= EnumKind }

// Value is a hardware value.
//
// Values have deep copy semantics: Clone returns an independent copy, and
// Assign copies the contents of src into the receiver in place, applying the
// receiver's masking rules.
//
type Value interface {
	// Kind returns the value's variant.
	Kind() Kind
	// Width returns the value's width in bits. Composite values report the
	// sum of their elements' widths.
	Width() int
	// Clone returns a deep copy of the value.
	Clone() Value
	// Equal reports structural equality.
	Equal(v Value) bool
	// Accepts reports whether src can be assigned to the receiver.
	Accepts(src Value) bool
	// Assign copies src into the receiver. It fails with ErrTypeIncompatible
	// if the receiver does not accept src.
	Assign(src Value) error

	String() string
}

// Span returns the minimum number of bits required to represent n distinct
// values.
//
func Span(n uint64) int {
	switch n {
	case 0:
		return 0
	case 1:
		return 1
	}
	return bits.Len64(n - 1)
}

// Upto returns the bit width needed by a value of kind k (UnsignedKind or
// SignedKind) to hold values up to max. Negative bounds are only valid for
// signed values.
//
func Upto(k Kind, max int64) (int, error) {
	switch k {
	case UnsignedKind:
		if max < 0 {
			return 0, errors.Errorf("value %d cannot be represented with an unsigned type", max)
		}
		return Span(uint64(max) + 1), nil
	case SignedKind:
		if max >= 0 {
			return Span(uint64(max) + 1), nil
		}
		return Span(uint64(-2 * max)), nil
	}
	return 0, errors.Errorf("upto not supported for %s values", k)
}

// TypeOf returns a short description of v's structural type, e.g. "u4",
// "s8", "wire", "int", "[3]u4" or "{a:u4, b:wire}".
//
func TypeOf(v Value) string {
	var b strings.Builder
	writeType(&b, v)
	return b.String()
}

func writeType(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case *Int:
		switch v.kind {
		case IntegerKind:
			b.WriteString("int")
		case UnsignedKind:
			b.WriteByte('u')
			b.WriteString(strconv.Itoa(v.nbits))
		case SignedKind:
			b.WriteByte('s')
			b.WriteString(strconv.Itoa(v.nbits))
		case WireKind:
			b.WriteString("wire")
		case EnumKind:
			b.WriteString("enum(")
			b.WriteString(strings.Join(v.def.syms, ","))
			b.WriteByte(')')
		}
	case *Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(len(v.elems)))
		b.WriteByte(']')
		if len(v.elems) > 0 {
			writeType(b, v.elems[0])
		}
	case *Record:
		b.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteByte(':')
			if hv, ok := f.Value.(Value); ok {
				writeType(b, hv)
			} else {
				b.WriteString("go")
			}
		}
		b.WriteByte('}')
	case nil:
		b.WriteString("nil")
	default:
		b.WriteString(v.Kind().String())
	}
}

func incompatible(dst, src Value) error {
	return errors.Wrapf(ErrTypeIncompatible, "cannot assign %s to %s", TypeOf(src), TypeOf(dst))
}
