// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// Source is a function driven output.
//
type Source struct {
	*hw.Entity
	Out *hw.Signal
}

// Input creates a function based input. f is called on every delta cycle.
//
//	Outputs: out
//	Function: out = f()
//
func Input(parent *hw.Entity, name string, seed hw.Value, f func() hw.Value) *Source {
	e := parent.Child(name)
	s := &Source{Entity: e, Out: e.Output(pOut, seed)}
	e.Process(func(*hw.Process) error {
		return s.Out.SetNext(f())
	})
	return s
}

// InputInt creates an input driven by an int64 function.
//
//	Outputs: out
//	Function: out = f()
//
func InputInt(parent *hw.Entity, name string, seed *hw.Int, f func() int64) *Source {
	return Input(parent, name, seed, func() hw.Value { return hw.NewInteger(f()) })
}

// Probe is a function based sink.
//
type Probe struct {
	*hw.Entity
	In *hw.Signal
}

// Output creates an output or probe. f is called with the value of the input
// port whenever it changes, and once at startup.
//
//	Inputs: in
//	Function: f(in)
//
func Output(parent *hw.Entity, name string, seed hw.Value, f func(hw.Value)) *Probe {
	e := parent.Child(name)
	p := &Probe{Entity: e, In: e.Input(pIn, seed)}
	first := true
	e.Process(func(*hw.Process) error {
		if first || p.In.Changed() {
			first = false
			f(p.In.Now())
		}
		return nil
	})
	return p
}

// OutputInt creates a probe reporting the input as an int64.
//
//	Inputs: in
//	Function: f(in)
//
func OutputInt(parent *hw.Entity, name string, seed *hw.Int, f func(int64)) *Probe {
	return Output(parent, name, seed, func(v hw.Value) { f(v.(*hw.Int).Int64()) })
}
