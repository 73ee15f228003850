// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable entities for ezhdl.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// common port names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
	pClk = "clk"
	pRst = "rst"
)

// Unary is a single input combinational entity.
//
type Unary struct {
	*hw.Entity
	In, Out *hw.Signal
}

// Binary is a two input combinational entity.
//
type Binary struct {
	*hw.Entity
	A, B, Out *hw.Signal
}

// Not returns a bitwise NOT gate. The ports have the type of seed.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ^in
//
func Not(parent *hw.Entity, name string, seed *hw.Int) *Unary {
	e := parent.Child(name)
	g := &Unary{Entity: e, In: e.Input(pIn, seed), Out: e.Output(pOut, seed)}
	e.Process(func(*hw.Process) error {
		return g.Out.SetNext(g.In.Int().Not())
	})
	return g
}

// other gates
type gate func(a, b *hw.Int) *hw.Int

func (g gate) mount(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	e := parent.Child(name)
	b := &Binary{Entity: e, A: e.Input(pA, seed), B: e.Input(pB, seed), Out: e.Output(pOut, seed)}
	e.Process(func(*hw.Process) error {
		return b.Out.SetNext(g(b.A.Int(), b.B.Int()))
	})
	return b
}

var (
	and  = gate(func(a, b *hw.Int) *hw.Int { return a.And(b) })
	nand = gate(func(a, b *hw.Int) *hw.Int { return a.And(b).Not() })
	or   = gate(func(a, b *hw.Int) *hw.Int { return a.Or(b) })
	nor  = gate(func(a, b *hw.Int) *hw.Int { return a.Or(b).Not() })
	xor  = gate(func(a, b *hw.Int) *hw.Int { return a.Xor(b) })
	xnor = gate(func(a, b *hw.Int) *hw.Int { return a.Xor(b).Not() })
)

// And returns a bitwise AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a & b
//
func And(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return and.mount(parent, name, seed)
}

// Nand returns a bitwise NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a & b)
//
func Nand(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return nand.mount(parent, name, seed)
}

// Or returns a bitwise OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a | b
//
func Or(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return or.mount(parent, name, seed)
}

// Nor returns a bitwise NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a | b)
//
func Nor(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return nor.mount(parent, name, seed)
}

// Xor returns a bitwise XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a ^ b
//
func Xor(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return xor.mount(parent, name, seed)
}

// Xnor returns a bitwise XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ^(a ^ b)
//
func Xnor(parent *hw.Entity, name string, seed *hw.Int) *Binary {
	return xnor.mount(parent, name, seed)
}
