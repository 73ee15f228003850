// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Int is a scalar hardware value: Integer, Unsigned, Signed, Wire or Enum.
//
// The value is held in a 256 bits two's complement word. Sized kinds are
// re-masked to their width after every mutation, and Signed values are sign
// extended to the full word so that word equality is value equality.
//
type Int struct {
	kind  Kind
	nbits int
	def   *EnumDef
	v     uint256.Int
}

func checkWidth(nbits int) int {
	if nbits < 0 {
		return 0
	}
	if nbits > MaxBits {
		panic(errors.Errorf("bit width %d exceeds %d", nbits, MaxBits))
	}
	return nbits
}

// NewInteger returns an unsized Integer.
//
func NewInteger(v int64) *Int {
	x := &Int{kind: IntegerKind, nbits: MaxBits}
	x.v.Set(word(v))
	return x
}

// NewUnsigned returns an nbits wide Unsigned value set to v mod 2^nbits.
// A negative nbits is treated as 0. NewUnsigned panics if nbits > MaxBits.
//
func NewUnsigned(v int64, nbits int) *Int {
	x := &Int{kind: UnsignedKind, nbits: checkWidth(nbits)}
	return x.Set(v)
}

// NewSigned returns an nbits wide Signed value.
//
func NewSigned(v int64, nbits int) *Int {
	x := &Int{kind: SignedKind, nbits: checkWidth(nbits)}
	return x.Set(v)
}

// NewWire returns a 1 bit Wire.
//
func NewWire(v int64) *Int {
	x := &Int{kind: WireKind, nbits: 1}
	return x.Set(v)
}

// word returns v as a sign extended 256 bits word.
func word(v int64) *uint256.Int {
	w := new(uint256.Int).SetUint64(uint64(v))
	if v < 0 {
		var hi uint256.Int
		hi.Not(&hi)
		hi.Lsh(&hi, 64)
		w.Or(w, &hi)
	}
	return w
}

// mask returns (1<<hi) - (1<<lo).
func mask(hi, lo int) *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), uint(hi))
	m.Sub(m, uint256.NewInt(1))
	if lo > 0 {
		var l uint256.Int
		l.Lsh(uint256.NewInt(1), uint(lo))
		l.Sub(&l, uint256.NewInt(1))
		m.Xor(m, &l)
	}
	return m
}

func (x *Int) constrain() *Int {
	switch x.kind {
	case IntegerKind:
	case SignedKind:
		if x.nbits == 0 {
			x.v.Clear()
			break
		}
		m := mask(x.nbits, 0)
		x.v.And(&x.v, m)
		var top uint256.Int
		top.Rsh(&x.v, uint(x.nbits-1))
		if !top.IsZero() {
			m.Not(m)
			x.v.Or(&x.v, m)
		}
	default:
		x.v.And(&x.v, mask(x.nbits, 0))
	}
	return x
}

// Kind implements Value.
func (x *Int) Kind() Kind { return x.kind }

// Width implements Value.
func (x *Int) Width() int { return x.nbits }

// EnumDef returns the enumeration definition of an Enum value, nil otherwise.
func (x *Int) EnumDef() *EnumDef { return x.def }

// Clone implements Value.
func (x *Int) Clone() Value { return x.clone() }

func (x *Int) clone() *Int {
	c := *x
	return &c
}

func (x *Int) negative() bool {
	return (x.kind == IntegerKind || x.kind == SignedKind) && x.v.Sign() < 0
}

// Equal implements Value. Scalars compare by numeric value regardless of kind.
//
func (x *Int) Equal(v Value) bool {
	y, ok := v.(*Int)
	if !ok {
		return false
	}
	return x.negative() == y.negative() && x.v.Eq(&y.v)
}

// Accepts implements Value. Integer sources are accepted by every scalar kind;
// otherwise the receiver's kind must be the source kind or a specialization of
// it (an Enum specializes Unsigned). Enum sources require the same definition.
//
func (x *Int) Accepts(src Value) bool {
	y, ok := src.(*Int)
	if !ok {
		return false
	}
	switch y.kind {
	case IntegerKind:
		return true
	case UnsignedKind:
		return x.kind == UnsignedKind || x.kind == EnumKind
	case EnumKind:
		return x.kind == EnumKind && x.def == y.def
	}
	return x.kind == y.kind
}

// Assign implements Value.
func (x *Int) Assign(src Value) error {
	if !x.Accepts(src) {
		return incompatible(x, src)
	}
	x.v.Set(&src.(*Int).v)
	x.constrain()
	return nil
}

// Set sets x to v, masked to x's width.
//
func (x *Int) Set(v int64) *Int {
	x.v.Set(word(v))
	return x.constrain()
}

// SetUint64 sets x to v, masked to x's width.
//
func (x *Int) SetUint64(v uint64) *Int {
	x.v.SetUint64(v)
	return x.constrain()
}

// SetWord sets x from a 256 bits two's complement word.
//
func (x *Int) SetWord(w *uint256.Int) *Int {
	x.v.Set(w)
	return x.constrain()
}

// Word returns a copy of the underlying two's complement word.
//
func (x *Int) Word() *uint256.Int { return x.v.Clone() }

// Int64 returns the low 64 bits of x as an int64. Signed and Integer values
// that fit in 64 bits round-trip exactly.
//
func (x *Int) Int64() int64 { return int64(x.v.Uint64()) }

// Uint64 returns the low 64 bits of x.
//
func (x *Int) Uint64() uint64 { return x.v.Uint64() }

// Bool returns true if x is not zero.
//
func (x *Int) Bool() bool { return !x.v.IsZero() }

// IsZero returns true if x is zero.
//
func (x *Int) IsZero() bool { return x.v.IsZero() }

// Big returns the numeric value of x.
//
func (x *Int) Big() *big.Int {
	b := x.v.ToBig()
	if x.negative() {
		b.Sub(b, new(big.Int).Lsh(big.NewInt(1), MaxBits))
	}
	return b
}

// Cmp compares the numeric values of x and y and returns -1, 0 or +1.
//
func (x *Int) Cmp(y *Int) int {
	xn, yn := x.negative(), y.negative()
	switch {
	case xn && !yn:
		return -1
	case !xn && yn:
		return 1
	}
	return x.v.Cmp(&y.v)
}

func (x *Int) normalize(hi, lo int) (int, int, error) {
	if lo > hi {
		return 0, 0, errors.Wrapf(ErrSliceDirection, "[%d:%d]", hi, lo)
	}
	if lo < 0 || hi > x.nbits {
		return 0, 0, errors.Wrapf(ErrSliceRange, "[%d:%d] of %s", hi, lo, TypeOf(x))
	}
	return hi, lo, nil
}

// Slice returns bits [hi:lo] of x (hi excluded) as a new value of width hi-lo.
// Integer, Unsigned and Signed slices keep their kind; Wire and Enum slices
// are Unsigned. Slice fails with ErrSliceDirection if lo > hi.
//
func (x *Int) Slice(hi, lo int) (*Int, error) {
	hi, lo, err := x.normalize(hi, lo)
	if err != nil {
		return nil, err
	}
	r := &Int{kind: x.kind, nbits: hi - lo}
	switch x.kind {
	case IntegerKind:
		r.nbits = MaxBits
	case WireKind, EnumKind:
		r.kind = UnsignedKind
	}
	r.v.And(&x.v, mask(hi, lo))
	r.v.Rsh(&r.v, uint(lo))
	return r.constrain(), nil
}

// Bit returns bit i of x.
//
func (x *Int) Bit(i int) bool {
	if i < 0 || i >= MaxBits {
		return false
	}
	var t uint256.Int
	t.Rsh(&x.v, uint(i))
	return t.Uint64()&1 != 0
}

// SetSlice writes y, masked to hi-lo bits, into bits [hi:lo] of x. Other bits
// are left untouched.
//
func (x *Int) SetSlice(hi, lo int, y *Int) error {
	hi, lo, err := x.normalize(hi, lo)
	if err != nil {
		return err
	}
	m := mask(hi, lo)
	var ins uint256.Int
	ins.Lsh(&y.v, uint(lo))
	ins.And(&ins, m)
	m.Not(m)
	x.v.And(&x.v, m)
	x.v.Or(&x.v, &ins)
	x.constrain()
	return nil
}

// SetBit sets bit i of x.
//
func (x *Int) SetBit(i int, b bool) error {
	var v int64
	if b {
		v = 1
	}
	return x.SetSlice(i+1, i, NewInteger(v))
}

func integer(w *uint256.Int) *Int {
	return &Int{kind: IntegerKind, nbits: MaxBits, v: *w}
}

// Add returns the Integer x + y.
func (x *Int) Add(y *Int) *Int { return integer(new(uint256.Int).Add(&x.v, &y.v)) }

// Sub returns the Integer x - y.
func (x *Int) Sub(y *Int) *Int { return integer(new(uint256.Int).Sub(&x.v, &y.v)) }

// Mul returns the Integer x * y.
func (x *Int) Mul(y *Int) *Int { return integer(new(uint256.Int).Mul(&x.v, &y.v)) }

// Neg returns the Integer -x.
func (x *Int) Neg() *Int { return integer(new(uint256.Int).Neg(&x.v)) }

// And returns the Integer x & y.
func (x *Int) And(y *Int) *Int { return integer(new(uint256.Int).And(&x.v, &y.v)) }

// Or returns the Integer x | y.
func (x *Int) Or(y *Int) *Int { return integer(new(uint256.Int).Or(&x.v, &y.v)) }

// Xor returns the Integer x ^ y.
func (x *Int) Xor(y *Int) *Int { return integer(new(uint256.Int).Xor(&x.v, &y.v)) }

// Not returns the Integer ^x (that is -x-1).
func (x *Int) Not() *Int { return integer(new(uint256.Int).Not(&x.v)) }

// Lsh returns the Integer x << n.
func (x *Int) Lsh(n uint) *Int { return integer(new(uint256.Int).Lsh(&x.v, n)) }

// Rsh returns the Integer x >> n. The shift is arithmetic for negative values.
//
func (x *Int) Rsh(n uint) *Int {
	if x.negative() {
		return integer(new(uint256.Int).SRsh(&x.v, n))
	}
	return integer(new(uint256.Int).Rsh(&x.v, n))
}

// AddInt returns the Integer x + v.
func (x *Int) AddInt(v int64) *Int { return x.Add(NewInteger(v)) }

// Join concatenates parts, the first one being the most significant, into an
// Integer.
//
func Join(parts ...*Int) *Int {
	var r uint256.Int
	for _, p := range parts {
		r.Lsh(&r, uint(p.nbits))
		r.Or(&r, new(uint256.Int).And(&p.v, mask(p.nbits, 0)))
	}
	return integer(&r)
}

// Chop splits x into parts, the last one receiving the least significant
// bits. Each part keeps its own width and kind.
//
func Chop(x *Int, parts ...*Int) {
	v := x.v
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		p.v.Set(&v)
		p.constrain()
		v.Rsh(&v, uint(p.nbits))
	}
}

// Binary returns the width bits of x, msb first. Integer values use the
// shortest two's complement representation.
//
func (x *Int) Binary() string {
	n := x.nbits
	if x.kind == IntegerKind {
		n = x.Big().BitLen() + 1
		if !x.negative() {
			n--
		}
		if n == 0 {
			n = 1
		}
	}
	var b strings.Builder
	b.Grow(n)
	for i := n - 1; i >= 0; i-- {
		if x.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// String returns the decimal value of x, or its symbol for Enum values.
//
func (x *Int) String() string {
	if x.kind == EnumKind {
		return x.Symbol()
	}
	return x.Big().String()
}

// Repr returns a verbose representation of x in decimal, hex and binary.
//
func (x *Int) Repr() string {
	digits := (x.nbits-1)/4 + 1
	h := x.v.Hex()[2:]
	if x.kind != IntegerKind && len(h) < digits {
		h = strings.Repeat("0", digits-len(h)) + h
	}
	return "dec:" + x.Big().String() + ", hex:0x" + h + ", bin:0b" + x.Binary() + ", width:" + strconv.Itoa(x.nbits)
}
