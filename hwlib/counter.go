// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/pkg/errors"
	hw "github.com/sideprojectslab/ezhdl"
)

// Counter is a synchronous modulo counter with reset.
//
type Counter struct {
	*hw.Entity
	Clk, Rst, Q *hw.Signal
	modulus     int64
}

// NewCounter returns a counter counting rising edges of clk modulo modulus.
// The output is an unsigned value just wide enough to hold modulus-1. It
// panics if modulus < 1.
//
//	Inputs: clk, rst
//	Outputs: q
//	Function: on posedge(clk): q = rst ? 0 : (q + 1) % modulus
//
func NewCounter(parent *hw.Entity, name string, modulus int64) *Counter {
	nbits, err := hw.Upto(hw.UnsignedKind, modulus-1)
	if err != nil {
		panic(errors.Wrapf(err, "counter %s: modulus %d", name, modulus))
	}
	e := parent.Child(name)
	c := &Counter{
		Entity:  e,
		Clk:     e.Input(pClk, hw.NewWire(0)),
		Rst:     e.Input(pRst, hw.NewWire(0)),
		Q:       e.Output("q", hw.NewUnsigned(0, nbits)),
		modulus: modulus,
	}
	e.Process(hw.Always(c.Clk, hw.Rising, func(*hw.Process) error {
		if c.Rst.Bool() || c.Q.Int64() == c.modulus-1 {
			return c.Q.SetInt(0)
		}
		return c.Q.SetNext(c.Q.Int().AddInt(1))
	}))
	return c
}

// Modulus returns the counter modulus.
func (c *Counter) Modulus() int64 { return c.modulus }

// BitToggler toggles its output every period rising edges of its clock.
//
type BitToggler struct {
	*hw.Entity
	Clk, Rst, Toggle *hw.Signal
	count            *hw.Signal
	period           int64
}

// NewBitToggler returns a BitToggler. Unlike Counter, its process runs on every
// delta cycle and samples the clock edge flags.
//
//	Inputs: clk, rst
//	Outputs: toggle
//	Function: on posedge(clk): toggle = !toggle every period cycles
//
func NewBitToggler(parent *hw.Entity, name string, period int64) *BitToggler {
	nbits, err := hw.Upto(hw.UnsignedKind, period-1)
	if err != nil {
		panic(errors.Wrapf(err, "toggler %s: period %d", name, period))
	}
	e := parent.Child(name)
	b := &BitToggler{
		Entity: e,
		Clk:    e.Input(pClk, hw.NewWire(0)),
		Rst:    e.Input(pRst, hw.NewWire(0)),
		Toggle: e.Output("toggle", hw.NewWire(0)),
		count:  e.Signal("counter", hw.NewUnsigned(0, nbits)),
		period: period,
	}
	e.Process(func(*hw.Process) error {
		if !b.Clk.Posedge() {
			return nil
		}
		if b.Rst.Bool() {
			if err := b.count.SetInt(0); err != nil {
				return err
			}
			return b.Toggle.SetInt(0)
		}
		if b.count.Int64() == b.period-1 {
			if err := b.count.SetInt(0); err != nil {
				return err
			}
			return b.Toggle.SetNext(b.Toggle.Int().Not())
		}
		return b.count.SetNext(b.count.Int().AddInt(1))
	})
	return b
}
