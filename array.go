// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"strings"

	"github.com/pkg/errors"
)

// Array is a fixed length, homogeneous sequence of hardware values.
//
type Array struct {
	elems []Value
}

// NewArray returns an array of n independent copies of seed.
//
func NewArray(n int, seed Value) *Array {
	a := &Array{elems: make([]Value, n)}
	for i := range a.elems {
		a.elems[i] = seed.Clone()
	}
	return a
}

// ArrayOf returns an array holding copies of elems. All elements must have the
// same structural type.
//
func ArrayOf(elems ...Value) (*Array, error) {
	a := &Array{elems: make([]Value, len(elems))}
	for i, e := range elems {
		if i > 0 && TypeOf(e) != TypeOf(elems[0]) {
			return nil, errors.Wrapf(ErrTypeIncompatible, "array element %d is %s, expected %s", i, TypeOf(e), TypeOf(elems[0]))
		}
		a.elems[i] = e.Clone()
	}
	return a, nil
}

// Len returns the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns element i. The returned value is a reference into a: mutating it
// mutates a.
//
func (a *Array) At(i int) Value { return a.elems[i] }

// View returns a sub-array of elements [lo:hi) sharing storage with a.
//
func (a *Array) View(lo, hi int) *Array { return &Array{elems: a.elems[lo:hi:hi]} }

// Kind implements Value.
func (a *Array) Kind() Kind { return ArrayKind }

// Width implements Value.
func (a *Array) Width() int {
	w := 0
	for _, e := range a.elems {
		w += e.Width()
	}
	return w
}

// Clone implements Value.
func (a *Array) Clone() Value {
	c := &Array{elems: make([]Value, len(a.elems))}
	for i, e := range a.elems {
		c.elems[i] = e.Clone()
	}
	return c
}

// Equal implements Value.
func (a *Array) Equal(v Value) bool {
	b, ok := v.(*Array)
	if !ok || len(a.elems) != len(b.elems) {
		return false
	}
	for i, e := range a.elems {
		if !e.Equal(b.elems[i]) {
			return false
		}
	}
	return true
}

// Accepts implements Value.
func (a *Array) Accepts(src Value) bool {
	b, ok := src.(*Array)
	if !ok || len(a.elems) != len(b.elems) {
		return false
	}
	for i, e := range a.elems {
		if !e.Accepts(b.elems[i]) {
			return false
		}
	}
	return true
}

// Assign implements Value. Elements are assigned in place.
//
func (a *Array) Assign(src Value) error {
	if !a.Accepts(src) {
		return incompatible(a, src)
	}
	b := src.(*Array)
	for i, e := range a.elems {
		if err := e.Assign(b.elems[i]); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range a.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}
