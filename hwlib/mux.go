// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// Multiplexer is a two way multiplexer.
//
type Multiplexer struct {
	*hw.Entity
	A   *hw.Signal `hw:"in"`
	B   *hw.Signal `hw:"in"`
	Sel *hw.Signal `hw:"in,wire"`
	Out *hw.Signal `hw:"out"`
}

// Mux returns a multiplexer. The data ports have the type of seed.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(parent *hw.Entity, name string, seed hw.Value) *Multiplexer {
	e := parent.Child(name)
	m := &Multiplexer{Entity: e}
	hw.Ports(e, m, seed)
	e.Process(func(*hw.Process) error {
		if m.Sel.Bool() {
			return m.Out.SetNext(m.B.Now())
		}
		return m.Out.SetNext(m.A.Now())
	})
	return m
}

// Demultiplexer is a two way demultiplexer.
//
type Demultiplexer struct {
	*hw.Entity
	In, Sel, A, B *hw.Signal
}

// DMux returns a demultiplexer. The data ports have the type of seed, and the
// unselected output holds the value of seed.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(parent *hw.Entity, name string, seed hw.Value) *Demultiplexer {
	e := parent.Child(name)
	zero := seed.Clone()
	d := &Demultiplexer{
		Entity: e,
		In:     e.Input(pIn, seed),
		Sel:    e.Input(pSel, hw.NewWire(0)),
		A:      e.Output(pA, seed),
		B:      e.Output(pB, seed),
	}
	e.Process(func(*hw.Process) error {
		sel, idle := d.B, d.A
		if !d.Sel.Bool() {
			sel, idle = d.A, d.B
		}
		if err := sel.SetNext(d.In.Now()); err != nil {
			return err
		}
		return idle.SetNext(zero)
	})
	return d
}
