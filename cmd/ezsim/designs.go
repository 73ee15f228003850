// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"sort"

	"github.com/pkg/errors"
	hw "github.com/sideprojectslab/ezhdl"
	hl "github.com/sideprojectslab/ezhdl/hwlib"
)

type design struct {
	help  string
	build func(top *hw.Entity) error
}

var designs = map[string]design{
	"counter":  {"4 bit modulo 10 counter clocked at 100MHz", buildCounter},
	"toggler":  {"bit toggler with a reset pulse, toggling every 4 clock cycles", buildToggler},
	"pipeline": {"counter feeding a 3 stage register", buildPipeline},
}

func designNames() []string {
	var names []string
	for n := range designs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func connect(caller *hw.Entity, pairs ...*hw.Signal) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := pairs[i].Connect(caller, pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func buildCounter(top *hw.Entity) error {
	clk := hl.Clock(top, "clkgen", 10, "ns")
	cnt := hl.NewCounter(top, "counter", 10)
	return connect(top, cnt.Clk, clk.Clk)
}

func buildToggler(top *hw.Entity) error {
	clk := hl.Clock(top, "clkgen", 10, "ns")
	rst := top.Signal("rst", hw.NewWire(1))
	tog := hl.NewBitToggler(top, "toggler", 4)
	top.Process(hw.Sequence(
		func(p *hw.Process) error { return p.Wait(25, "ns") },
		func(p *hw.Process) error { return rst.SetInt(0) },
	))
	return connect(top, tog.Clk, clk.Clk, tog.Rst, rst)
}

func buildPipeline(top *hw.Entity) error {
	clk := hl.Clock(top, "clkgen", 10, "ns")
	cnt := hl.NewCounter(top, "counter", 16)
	reg := hl.NewRegister(top, "delay", hw.NewUnsigned(0, 4), 3)
	return connect(top, cnt.Clk, clk.Clk, reg.Clk, clk.Clk, reg.In, cnt.Q)
}

func build(name string, top *hw.Entity) error {
	d, ok := designs[name]
	if !ok {
		return errors.Errorf("unknown design %q", name)
	}
	return d.build(top)
}
