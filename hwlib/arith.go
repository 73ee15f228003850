// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// Adder is an n-bit adder with carry in and carry out.
//
type Adder struct {
	*hw.Entity
	A, B, Cin *hw.Signal
	Sum, Cout *hw.Signal
}

// NewAdder returns an n-bit unsigned adder.
//
//	Inputs: a[n], b[n], cin
//	Outputs: s[n], cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func NewAdder(parent *hw.Entity, name string, nbits int) *Adder {
	e := parent.Child(name)
	a := &Adder{
		Entity: e,
		A:      e.Input(pA, hw.NewUnsigned(0, nbits)),
		B:      e.Input(pB, hw.NewUnsigned(0, nbits)),
		Cin:    e.Input("cin", hw.NewWire(0)),
		Sum:    e.Output("s", hw.NewUnsigned(0, nbits)),
		Cout:   e.Output("cout", hw.NewWire(0)),
	}
	e.Process(func(*hw.Process) error {
		s := a.A.Int().Add(a.B.Int()).Add(a.Cin.Int())
		if err := a.Sum.SetNext(s); err != nil {
			return err
		}
		return a.Cout.SetBool(s.Bit(nbits))
	})
	return a
}

// Incrementer is an n-bit incrementer.
//
type Incrementer struct {
	*hw.Entity
	In, Out *hw.Signal
}

// Inc returns an n-bit incrementer.
//
//	Inputs: in[n]
//	Outputs: out[n]
//	Function: out = in + 1
//
func Inc(parent *hw.Entity, name string, nbits int) *Incrementer {
	e := parent.Child(name)
	n := &Incrementer{Entity: e, In: e.Input(pIn, hw.NewUnsigned(0, nbits)), Out: e.Output(pOut, hw.NewUnsigned(0, nbits))}
	e.Process(func(*hw.Process) error {
		return n.Out.SetNext(n.In.Int().AddInt(1))
	})
	return n
}
