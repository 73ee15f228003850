// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"strconv"

	"github.com/pkg/errors"
)

// EnumDef is an enumeration definition: an ordered list of distinct symbols.
// Enum values built from the same definition are mutually assignable.
//
type EnumDef struct {
	syms []string
	idx  map[string]int
}

// NewEnumDef returns a new enumeration definition.
//
func NewEnumDef(symbols ...string) (*EnumDef, error) {
	if len(symbols) == 0 {
		return nil, errors.New("empty enumeration")
	}
	d := &EnumDef{syms: append([]string(nil), symbols...), idx: make(map[string]int, len(symbols))}
	for i, s := range symbols {
		if s == "" {
			return nil, errors.New("empty enumeration symbol")
		}
		if _, ok := d.idx[s]; ok {
			return nil, errors.Errorf("duplicate enumeration symbol %q", s)
		}
		d.idx[s] = i
	}
	return d, nil
}

// MustEnumDef is like NewEnumDef but panics on error.
//
func MustEnumDef(symbols ...string) *EnumDef {
	d, err := NewEnumDef(symbols...)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of symbols in d.
func (d *EnumDef) Len() int { return len(d.syms) }

// Symbols returns a copy of d's symbols in ordinal order.
func (d *EnumDef) Symbols() []string { return append([]string(nil), d.syms...) }

// Bits returns the width of enum values built from d.
func (d *EnumDef) Bits() int { return Span(uint64(len(d.syms))) }

// MaxLen returns the length of the longest symbol.
//
func (d *EnumDef) MaxLen() int {
	n := 0
	for _, s := range d.syms {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// Ordinal returns the ordinal of sym.
//
func (d *EnumDef) Ordinal(sym string) (int, error) {
	i, ok := d.idx[sym]
	if !ok {
		return 0, errors.Wrap(ErrUnknownSymbol, sym)
	}
	return i, nil
}

// New returns a new Enum value set to sym.
//
func (d *EnumDef) New(sym string) (*Int, error) {
	i, err := d.Ordinal(sym)
	if err != nil {
		return nil, err
	}
	x := &Int{kind: EnumKind, nbits: d.Bits(), def: d}
	return x.Set(int64(i)), nil
}

// MustNew is like New but panics on error.
//
func (d *EnumDef) MustNew(sym string) *Int {
	x, err := d.New(sym)
	if err != nil {
		panic(err)
	}
	return x
}

// Symbol returns the symbolic name of an Enum value. Ordinals with no matching
// symbol, and values of other kinds, are returned in decimal.
//
func (x *Int) Symbol() string {
	if x.def != nil {
		if i := x.v.Uint64(); x.v.IsUint64() && i < uint64(len(x.def.syms)) {
			return x.def.syms[i]
		}
	}
	return strconv.FormatUint(x.v.Uint64(), 10)
}

// SetSymbol sets an Enum value to the ordinal of sym.
//
func (x *Int) SetSymbol(sym string) error {
	if x.def == nil {
		return errors.Errorf("%s value has no symbols", x.kind)
	}
	i, err := x.def.Ordinal(sym)
	if err != nil {
		return err
	}
	x.Set(int64(i))
	return nil
}

// Is returns true if x is an Enum value set to sym.
//
func (x *Int) Is(sym string) bool {
	if x.def == nil {
		return false
	}
	i, ok := x.def.idx[sym]
	return ok && x.v.IsUint64() && x.v.Uint64() == uint64(i)
}
