// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// Register is a clocked register with a configurable number of stages.
//
type Register struct {
	*hw.Entity
	Clk, In, Out *hw.Signal
	stages       *hw.Signal
}

// DFF returns a clocked data flip flop.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(parent *hw.Entity, name string, seed hw.Value) *Register {
	return NewRegister(parent, name, seed, 1)
}

// NewRegister returns a register of depth stages. The output port follows an
// internal pipeline signal, so out lags in by depth rising edges of clk.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-depth)
//
func NewRegister(parent *hw.Entity, name string, seed hw.Value, depth int) *Register {
	e := parent.Child(name)
	r := &Register{
		Entity: e,
		Clk:    e.Input(pClk, hw.NewWire(0)),
		In:     e.Input(pIn, seed),
		Out:    e.Output(pOut, seed),
		stages: e.Pipeline("stages", seed, depth),
	}
	if err := r.Out.Connect(e, r.stages); err != nil {
		panic(err)
	}
	e.Process(hw.Always(r.Clk, hw.Rising, func(*hw.Process) error {
		return r.stages.SetNext(r.In.Now())
	}))
	return r
}
