// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"github.com/pkg/errors"
)

// Direction is the direction of a signal relative to its owning entity.
//
type Direction uint8

// Signal directions.
//
const (
	Internal Direction = iota
	In
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "input"
	case Out:
		return "output"
	}
	return "signal"
}

// A Signal carries a hardware value through a pipeline of one or more cells.
// Writes go to the first cell's pending value and become visible through Now
// once committed by the delta cycle scheduler, and once they have traveled
// the whole pipeline.
//
type Signal struct {
	sim   *Simulator
	owner *Entity
	name  string
	dir   Direction
	h     handle

	driver    *Signal
	followers []*Signal

	changed    bool
	posedge    bool
	negedge    bool
	transition bool

	closed bool
}

func (s *Signal) cells() pipeline { return s.sim.arena.get(s.h) }

// Name returns the signal name.
func (s *Signal) Name() string { return s.name }

// Path returns the path of the owning entity.
func (s *Signal) Path() string { return s.owner.Path() }

// FullName returns the signal's path and name separated by a dot.
//
func (s *Signal) FullName() string { return s.owner.Path() + "." + s.name }

// Owner returns the entity that declared s.
func (s *Signal) Owner() *Entity { return s.owner }

// Dir returns the signal's direction.
func (s *Signal) Dir() Direction { return s.dir }

// Depth returns the pipeline depth of s.
func (s *Signal) Depth() int { return len(s.cells()) }

// Now returns the committed value at the output end of the pipeline. The
// returned value must not be modified.
//
func (s *Signal) Now() Value { return s.cells().tail().cur }

// Next returns the pending value of the input cell without marking it as
// written. The returned value must not be modified; use Mutate for in place
// changes.
//
func (s *Signal) Next() Value { return s.cells().head().next }

// Mutate marks the input cell as written and returns its pending value for in
// place modification, e.g.:
//
//	s.Mutate().(*ezhdl.Int).SetSlice(7, 4, v)
//
func (s *Signal) Mutate() Value {
	c := s.cells().head()
	c.pend = true
	return c.next
}

// SetNext assigns v to the input cell's pending value. It fails with
// ErrTypeIncompatible if the signal's value does not accept v.
//
func (s *Signal) SetNext(v Value) error {
	if v == nil {
		return errors.Wrapf(ErrTypeIncompatible, "%s: nil value", s.FullName())
	}
	c := s.cells().head()
	if !c.cur.Accepts(v) {
		return errors.Wrap(incompatible(c.cur, v), s.FullName())
	}
	if err := c.next.Assign(v); err != nil {
		return errors.Wrap(err, s.FullName())
	}
	c.pend = true
	return nil
}

// SetInt assigns the Integer v to the input cell.
//
func (s *Signal) SetInt(v int64) error { return s.SetNext(NewInteger(v)) }

// SetBool assigns 1 or 0 to the input cell.
//
func (s *Signal) SetBool(b bool) error {
	if b {
		return s.SetInt(1)
	}
	return s.SetInt(0)
}

// Int returns the committed value as a scalar, or nil for composite signals.
//
func (s *Signal) Int() *Int {
	v, _ := s.Now().(*Int)
	return v
}

// Int64 returns the committed scalar value. It returns 0 for composite signals.
//
func (s *Signal) Int64() int64 {
	if v := s.Int(); v != nil {
		return v.Int64()
	}
	return 0
}

// Uint64 returns the committed scalar value. It returns 0 for composite signals.
//
func (s *Signal) Uint64() uint64 {
	if v := s.Int(); v != nil {
		return v.Uint64()
	}
	return 0
}

// Bool returns true if the committed scalar value is not zero.
//
func (s *Signal) Bool() bool {
	v := s.Int()
	return v != nil && v.Bool()
}

// Changed reports whether the last delta cycle changed the signal.
func (s *Signal) Changed() bool { return s.changed }

// Posedge reports a rising edge during the last delta cycle.
func (s *Signal) Posedge() bool { return s.posedge }

// Negedge reports a falling edge during the last delta cycle.
func (s *Signal) Negedge() bool { return s.negedge }

// AnyEdge reports a rising or falling edge during the last delta cycle.
func (s *Signal) AnyEdge() bool { return s.posedge || s.negedge }

// Transition reports whether the signal changed at any point during the
// current time step.
//
func (s *Signal) Transition() bool { return s.transition }

func (s *Signal) String() string {
	return s.FullName() + "=" + s.Now().String()
}

func (s *Signal) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.sim.unregister(s)
	s.sim.arena.release(s.h)
}
