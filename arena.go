// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

// A cell holds the committed and pending values of one pipeline stage.
//
type cell struct {
	cur  Value
	next Value
	pend bool
}

func newCell(seed Value) *cell {
	return &cell{cur: seed.Clone(), next: seed.Clone()}
}

// pipeline is the cell sequence of a signal. Index 0 is the input end and the
// last cell is the output end.
//
type pipeline []*cell

func (p pipeline) head() *cell { return p[0] }
func (p pipeline) tail() *cell { return p[len(p)-1] }

// staged returns the value the output cell will hold after the next commit.
// It is only meaningful when the input cell is pending.
//
func (p pipeline) staged() Value {
	if len(p) == 1 {
		return p[0].next
	}
	return p[len(p)-2].cur
}

// A handle identifies a slot in a cell arena. The generation number guards
// against using a handle whose slot has been released and reused.
//
type handle struct {
	idx int
	gen uint32
}

type slot struct {
	cells pipeline
	refs  int
	gen   uint32
}

// arena owns the cell storage of all signals in a simulation. Signals hold
// handles into the arena; connected signals hold the same handle.
//
type arena struct {
	slots []slot
	free  []int
}

func (a *arena) alloc(seed Value, depth int) handle {
	cells := make(pipeline, depth)
	for i := range cells {
		cells[i] = newCell(seed)
	}
	var i int
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		i = len(a.slots)
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[i]
	s.cells = cells
	s.refs = 1
	s.gen++
	return handle{i, s.gen}
}

func (a *arena) get(h handle) pipeline {
	s := &a.slots[h.idx]
	if s.gen != h.gen || s.cells == nil {
		panic("stale signal storage handle")
	}
	return s.cells
}

func (a *arena) retain(h handle) {
	a.slots[h.idx].refs++
}

func (a *arena) release(h handle) {
	s := &a.slots[h.idx]
	if s.gen != h.gen || s.cells == nil {
		return
	}
	s.refs--
	if s.refs <= 0 {
		s.cells = nil
		s.refs = 0
		a.free = append(a.free, h.idx)
	}
}

// live returns the number of allocated slots.
func (a *arena) live() int { return len(a.slots) - len(a.free) }
