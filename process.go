// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"math"

	"github.com/pkg/errors"
)

// A Step advances a process to its next suspension point. A step suspends the
// process by calling one of Wait, Posedge, Negedge or AnyEdge before
// returning. A step that returns without suspending is called again on the
// next delta cycle, which is how combinational logic is described.
//
// A non-nil error ends the process.
//
type Step func(p *Process) error

// State is the suspension state of a process.
//
type State uint8

// Process states.
//
const (
	Running State = iota
	WaitingForTime
	WaitingForEdge
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForTime:
		return "waiting for time"
	case WaitingForEdge:
		return "waiting for edge"
	}
	return "done"
}

// Edge selects the edge an edge wait is sensitive to.
//
type Edge uint8

// Edge kinds.
//
const (
	Rising Edge = iota
	Falling
	AnyEdge
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "any"
}

// Process is the resumable behavior of an entity.
//
type Process struct {
	entity *Entity
	step   Step
	state  State
	target Time
	signal *Signal
	edge   Edge
	err    error
}

// Entity returns the entity owning p.
func (p *Process) Entity() *Entity { return p.entity }

// Now returns the current simulation time.
func (p *Process) Now() Time { return p.entity.sim.now }

// State returns the current suspension state of p.
func (p *Process) State() State { return p.state }

// Err returns the error that ended p, if any.
func (p *Process) Err() error { return p.err }

// Wait suspends p for the given duration. unit is one of "ps", "ns", "us", "ms"
// or "s".
//
func (p *Process) Wait(d float64, unit string) error {
	sim := p.entity.sim
	mult, err := unitTicks(unit, sim.resolution)
	if err != nil {
		return err
	}
	if d < 0 || math.IsNaN(d) {
		return errors.Wrapf(ErrNegativeDelay, "wait %v%s", d, unit)
	}
	p.target = sim.now + Time(math.Round(d*mult))
	sim.Schedule(p.target)
	sim.ForceRun()
	p.state = WaitingForTime
	return nil
}

// WaitTicks suspends p for n ticks of the simulation resolution.
//
func (p *Process) WaitTicks(n Time) error {
	sim := p.entity.sim
	p.target = sim.now + n
	sim.Schedule(p.target)
	sim.ForceRun()
	p.state = WaitingForTime
	return nil
}

func (p *Process) waitEdge(s *Signal, e Edge) error {
	if s == nil {
		return errors.New("edge wait on nil signal")
	}
	p.signal, p.edge = s, e
	p.entity.sim.ForceRun()
	p.state = WaitingForEdge
	return nil
}

// Posedge suspends p until a rising edge of s.
func (p *Process) Posedge(s *Signal) error { return p.waitEdge(s, Rising) }

// Negedge suspends p until a falling edge of s.
func (p *Process) Negedge(s *Signal) error { return p.waitEdge(s, Falling) }

// AnyEdge suspends p until a rising or falling edge of s.
func (p *Process) AnyEdge(s *Signal) error { return p.waitEdge(s, AnyEdge) }

// Finish ends p. Subsequent resumptions are no-ops.
//
func (p *Process) Finish() { p.state = Done }

func (p *Process) ready() bool {
	switch p.state {
	case WaitingForTime:
		return p.entity.sim.now == p.target
	case WaitingForEdge:
		switch p.edge {
		case Rising:
			return p.signal.Posedge()
		case Falling:
			return p.signal.Negedge()
		}
		return p.signal.AnyEdge()
	case Done:
		return false
	}
	return true
}

func (p *Process) resume() error {
	if !p.ready() {
		return nil
	}
	p.state = Running
	p.signal = nil
	if err := p.step(p); err != nil {
		p.state = Done
		p.err = errors.Wrapf(err, "process %s", p.entity.Path())
		return p.err
	}
	return nil
}

// Sequence returns a step running steps in order, one per resumption. The
// process finishes once the last step's suspension is over.
//
func Sequence(steps ...Step) Step {
	i := 0
	return func(p *Process) error {
		if i >= len(steps) {
			p.Finish()
			return nil
		}
		s := steps[i]
		i++
		return s(p)
	}
}

// Loop returns a step running steps in order, one per resumption, starting
// over after the last one.
//
func Loop(steps ...Step) Step {
	i := 0
	return func(p *Process) error {
		if len(steps) == 0 {
			p.Finish()
			return nil
		}
		s := steps[i]
		i = (i + 1) % len(steps)
		return s(p)
	}
}

// Always returns a step calling fn on every edge e of s. fn must not suspend
// the process.
//
func Always(s *Signal, e Edge, fn func(p *Process) error) Step {
	armed := false
	return func(p *Process) error {
		if armed {
			if err := fn(p); err != nil {
				return err
			}
		}
		armed = true
		return p.waitEdge(s, e)
	}
}
