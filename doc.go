// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package ezhdl provides the necessary tools to describe digital hardware using
Go as a hardware description language and simulate it.

This includes a delta cycle simulation kernel, a family of fixed width
hardware values (Unsigned, Signed, Wire, Integer, enumerations, arrays and
records) and an API to compose entities into a design hierarchy.

Values

Scalar values are two's complement words of at most MaxBits bits. Arithmetic
on scalars yields unsized Integer values; assigning the result to a sized
value wraps it to the destination width:

	a := ezhdl.NewUnsigned(15, 4)
	a.Assign(a.AddInt(1)) // a == 0

Signals and delta cycles

Signals hold a current value and a pending next value. Writing to a signal
only changes its next value; the change becomes visible once the simulator
runs a delta cycle. A delta cycle first computes the edge flags of every
signal, then commits all pending values, so that all processes observe a
consistent state regardless of their evaluation order.

Connecting a signal to a driver makes both share the same storage: a value
committed to the driver is visible through all of its followers in the same
delta cycle.

Entity ports are declared one by one with Entity.Input and Entity.Output, or
all at once from the tagged fields of a struct with Ports.

Processes

Each entity can have one process, a Step function called by the simulator.
A step suspends its process by calling Wait, Posedge, Negedge or AnyEdge.
A step that does not suspend is called again on every delta cycle, which is
how combinational logic is written. A clock generator waits between toggles:

	top := sim.Top("top")
	clk := top.Signal("clk", ezhdl.NewWire(0))
	top.Process(func(p *ezhdl.Process) error {
		if err := clk.SetBool(!clk.Bool()); err != nil {
			return err
		}
		return p.Wait(5, "ns")
	})

Simulation

Simulator.Run resets the design, then runs delta cycles at each time step
until no signal changes anymore, notifies observers of the changes and
advances time to the next pending wake-up time.
*/
package ezhdl
