// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/sideprojectslab/ezhdl"
)

// ClockGen is a free running clock generator.
//
type ClockGen struct {
	*hw.Entity
	Clk *hw.Signal
}

// Clock returns a clock generator with the given period. The clock starts low
// and rises after half a period.
//
//	Outputs: clk
//	Function: clk = !clk every period/2
//
func Clock(parent *hw.Entity, name string, period float64, unit string) *ClockGen {
	e := parent.Child(name)
	c := &ClockGen{Entity: e, Clk: e.Output(pClk, hw.NewWire(0))}
	half := period / 2
	started := false
	e.Process(func(p *hw.Process) error {
		if started {
			if err := c.Clk.SetBool(!c.Clk.Bool()); err != nil {
				return err
			}
		}
		started = true
		return p.Wait(half, unit)
	})
	return c
}
