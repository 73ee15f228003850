// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import "strconv"

// An Observer is notified of signal changes at the end of each time step, once
// the delta cycles have settled.
//
type Observer interface {
	// Begin is called once before the first time step with all live signals.
	Begin(sim *Simulator, signals []*Signal) error
	// Dump is called at the end of each time step with the signals that
	// changed during that step.
	Dump(t Time, changed []*Signal) error
	// End is called once when the simulation ends.
	End(t Time) error
}

// A Controller is polled once per time step, after time has advanced. It can
// pause, stop or request dumps from the simulation.
//
type Controller interface {
	Poll(sim *Simulator) error
}

// ControllerFunc adapts a function to the Controller interface.
//
type ControllerFunc func(sim *Simulator) error

// Poll calls f(sim).
func (f ControllerFunc) Poll(sim *Simulator) error { return f(sim) }

// A Leaf is a scalar component of a signal value.
//
type Leaf struct {
	Name  string
	Value *Int
}

// Leaves flattens the committed value of s into its scalar components. Record
// fields are named "name.field" and array elements "name[i]". Record fields
// that are not hardware values are skipped.
//
func Leaves(s *Signal) []Leaf {
	return appendLeaves(nil, s.name, s.Now())
}

func appendLeaves(ls []Leaf, name string, v Value) []Leaf {
	switch x := v.(type) {
	case *Int:
		return append(ls, Leaf{Name: name, Value: x})
	case *Array:
		for i := 0; i < x.Len(); i++ {
			ls = appendLeaves(ls, name+"["+strconv.Itoa(i)+"]", x.At(i))
		}
	case *Record:
		for i := 0; i < x.Len(); i++ {
			f := x.FieldAt(i)
			if fv, ok := f.Value.(Value); ok {
				ls = appendLeaves(ls, name+"."+f.Name, fv)
			}
		}
	}
	return ls
}
