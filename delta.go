// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"github.com/pkg/errors"
)

// isZero returns whether v is a scalar zero. ok is false for composites.
func isZero(v Value) (zero, ok bool) {
	x, ok := v.(*Int)
	if !ok {
		return false, false
	}
	return x.IsZero(), true
}

// evaluate computes the edge flags of every live signal from the pre-commit
// state. It does not modify any cell.
//
func (s *Simulator) evaluate() {
	for _, sig := range s.signals {
		p := sig.cells()
		if !p.head().pend {
			sig.changed, sig.posedge, sig.negedge = false, false, false
			continue
		}
		cur, next := p.tail().cur, p.staged()
		sig.changed = !next.Equal(cur)
		sig.posedge, sig.negedge = false, false
		if nz, ok := isZero(next); ok {
			cz, _ := isZero(cur)
			sig.posedge = !nz && cz
			sig.negedge = nz && !cz
		}
		sig.transition = sig.transition || sig.changed
	}
}

// commit shifts pipelines and copies pending values into current values. It
// returns the number of cells whose value changed. Aliased signals share
// their cells, so each cell is committed once.
//
func (s *Simulator) commit() (int, error) {
	updated := 0
	for _, sig := range s.signals {
		p := sig.cells()
		if !p.head().pend {
			continue
		}
		for i := len(p) - 1; i > 0; i-- {
			if err := p[i].next.Assign(p[i-1].cur); err != nil {
				return updated, errors.Wrapf(err, "%s: pipeline stage %d", sig.FullName(), i)
			}
			p[i].pend = true
		}
		for i, c := range p {
			if !c.pend {
				continue
			}
			if !c.next.Equal(c.cur) {
				updated++
			}
			if err := c.cur.Assign(c.next); err != nil {
				return updated, errors.Wrapf(err, "%s: pipeline stage %d", sig.FullName(), i)
			}
			c.pend = false
		}
	}
	return updated, nil
}

// Delta runs one delta cycle: all edges are evaluated before any value is
// committed. It returns the number of updated cells.
//
func (s *Simulator) Delta() (int, error) {
	s.evaluate()
	return s.commit()
}

// clearChanges resets all edge and transition flags at the end of a time step.
//
func (s *Simulator) clearChanges() {
	for _, sig := range s.signals {
		sig.changed, sig.posedge, sig.negedge, sig.transition = false, false, false, false
	}
}
