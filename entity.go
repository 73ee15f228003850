// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"strings"

	"github.com/pkg/errors"
)

// An Entity is a node in the design hierarchy. It owns signals, child
// entities and at most one behavioral process.
//
// Custom entities usually embed *Entity:
//
//	type Inverter struct {
//		*ezhdl.Entity
//		In, Out *ezhdl.Signal
//	}
//
//	func NewInverter(parent *ezhdl.Entity, name string) *Inverter {
//		e := parent.Child(name)
//		n := &Inverter{Entity: e, In: e.Input("in", ezhdl.NewWire(0)), Out: e.Output("out", ezhdl.NewWire(0))}
//		e.Process(func(p *ezhdl.Process) error {
//			return n.Out.SetNext(n.In.Int().Not())
//		})
//		return n
//	}
//
type Entity struct {
	sim      *Simulator
	parent   *Entity
	name     string
	children []*Entity
	signals  []*Signal
	names    map[string]struct{}

	step  Step
	proc  *Process
	reset func() error

	closed bool
}

func newEntity(sim *Simulator, parent *Entity, name string) *Entity {
	if name == "" || strings.ContainsRune(name, '.') {
		panic(errors.Errorf("invalid entity name %q", name))
	}
	return &Entity{sim: sim, parent: parent, name: name, names: make(map[string]struct{})}
}

func (e *Entity) claim(name string) {
	if e.closed {
		panic(errors.Errorf("%s: entity is closed", e.Path()))
	}
	if name == "" || strings.ContainsRune(name, '.') {
		panic(errors.Errorf("%s: invalid name %q", e.Path(), name))
	}
	if _, ok := e.names[name]; ok {
		panic(errors.Errorf("%s: duplicate name %q", e.Path(), name))
	}
	e.names[name] = struct{}{}
}

// Child creates a new child entity. It panics if name is already in use in e.
//
func (e *Entity) Child(name string) *Entity {
	e.claim(name)
	c := newEntity(e.sim, e, name)
	e.children = append(e.children, c)
	return c
}

func (e *Entity) newSignal(name string, dir Direction, seed Value, depth int) *Signal {
	e.claim(name)
	if seed == nil {
		panic(errors.Errorf("%s.%s: nil seed value", e.Path(), name))
	}
	if depth < 1 {
		depth = 1
	}
	s := &Signal{sim: e.sim, owner: e, name: name, dir: dir, h: e.sim.arena.alloc(seed, depth)}
	e.signals = append(e.signals, s)
	e.sim.register(s)
	return s
}

// Signal declares an internal signal holding a copy of seed.
//
func (e *Entity) Signal(name string, seed Value) *Signal {
	return e.newSignal(name, Internal, seed, 1)
}

// Pipeline declares an internal signal with depth pipeline stages. A value
// written to the signal becomes visible through Now after depth writes.
//
func (e *Entity) Pipeline(name string, seed Value, depth int) *Signal {
	return e.newSignal(name, Internal, seed, depth)
}

// Input declares an input port.
//
func (e *Entity) Input(name string, seed Value) *Signal {
	return e.newSignal(name, In, seed, 1)
}

// Output declares an output port.
//
func (e *Entity) Output(name string, seed Value) *Signal {
	return e.newSignal(name, Out, seed, 1)
}

// Process sets the entity's behavioral process. An entity has at most one
// process; Process panics if called twice.
//
func (e *Entity) Process(step Step) {
	if e.step != nil {
		panic(errors.Errorf("%s: entity already has a process", e.Path()))
	}
	e.step = step
}

// OnReset sets a function called once before the simulation starts, after the
// reset functions of all child entities.
//
func (e *Entity) OnReset(fn func() error) { e.reset = fn }

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Parent returns the parent entity, or nil for the top level entity.
func (e *Entity) Parent() *Entity { return e.parent }

// Sim returns the simulator e belongs to.
func (e *Entity) Sim() *Simulator { return e.sim }

// Path returns the dot separated path of e from the top level entity.
//
func (e *Entity) Path() string {
	if e.parent == nil {
		return e.name
	}
	return e.parent.Path() + "." + e.name
}

// Children returns the direct child entities of e.
//
func (e *Entity) Children() []*Entity { return append([]*Entity(nil), e.children...) }

// Signals returns the signals declared by e.
//
func (e *Entity) Signals() []*Signal { return append([]*Signal(nil), e.signals...) }

// Lookup returns the signal at the given dot separated path relative to e,
// e.g. "counter.q", or nil.
//
func (e *Entity) Lookup(path string) *Signal {
	i := strings.IndexByte(path, '.')
	if i < 0 {
		for _, s := range e.signals {
			if s.name == path {
				return s
			}
		}
		return nil
	}
	for _, c := range e.children {
		if c.name == path[:i] {
			return c.Lookup(path[i+1:])
		}
	}
	return nil
}

// Close removes e, its children and their signals from the simulation. Their
// processes will not be resumed anymore.
//
func (e *Entity) Close() {
	if e.closed {
		return
	}
	for _, c := range e.children {
		c.Close()
	}
	for _, s := range e.signals {
		s.close()
	}
	if e.proc != nil {
		e.proc.state = Done
	}
	e.closed = true
}

func (e *Entity) doReset() error {
	for _, c := range e.children {
		if err := c.doReset(); err != nil {
			return err
		}
	}
	if e.reset != nil && !e.closed {
		if err := e.reset(); err != nil {
			return errors.Wrapf(err, "reset %s", e.Path())
		}
	}
	return nil
}

// run resumes the processes of e's children, then e's own process.
//
func (e *Entity) run(faults *[]error) {
	for _, c := range e.children {
		c.run(faults)
	}
	if e.step == nil || e.closed {
		return
	}
	if e.proc == nil {
		e.proc = &Process{entity: e, step: e.step}
	}
	if err := e.proc.resume(); err != nil {
		*faults = append(*faults, err)
	}
}
