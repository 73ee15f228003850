// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"github.com/pkg/errors"
)

// Connect makes driver the driver of s: from then on both signals share the
// same storage, as do all signals already following s.
//
// caller is the entity on behalf of which the connection is made. Inputs can
// only be connected from outside their owning entity, and outputs only from
// inside it.
//
// A signal has at most one driver. Connecting s again to the same driver is a
// no-op.
//
func (s *Signal) Connect(caller *Entity, driver *Signal) error {
	if driver == nil {
		return errors.Errorf("%s: nil driver", s.FullName())
	}
	if driver.sim != s.sim {
		return errors.Errorf("%s: driver %s belongs to another simulation", s.FullName(), driver.FullName())
	}
	switch {
	case s.dir == In && caller == s.owner:
		return errors.Wrapf(ErrDirection, "input %s driven from inside %s", s.FullName(), s.owner.Path())
	case s.dir == Out && caller != s.owner:
		return errors.Wrapf(ErrDirection, "output %s driven from outside %s", s.FullName(), s.owner.Path())
	}
	if s.driver != nil && s.driver != driver {
		return errors.Wrapf(ErrMultipleDrivers, "%s already driven by %s", s.FullName(), s.driver.FullName())
	}
	for d := driver; d != nil; d = d.driver {
		if d == s {
			return errors.Wrapf(ErrConnectionLoop, "%s -> %s", driver.FullName(), s.FullName())
		}
	}
	if !s.cells().head().cur.Accepts(driver.cells().head().cur) {
		return errors.Wrapf(incompatible(s.cells().head().cur, driver.cells().head().cur),
			"%s -> %s", driver.FullName(), s.FullName())
	}

	s.driver = driver
	found := false
	for _, f := range driver.followers {
		if f == s {
			found = true
			break
		}
	}
	if !found {
		driver.followers = append(driver.followers, s)
	}
	s.repoint(driver.h)
	s.sim.log.WithField("driver", driver.FullName()).Debugf("connected %s", s.FullName())
	return nil
}

// repoint makes s and its followers use the storage identified by h.
//
func (s *Signal) repoint(h handle) {
	if s.h != h {
		s.sim.arena.retain(h)
		s.sim.arena.release(s.h)
		s.h = h
	}
	for _, f := range s.followers {
		f.repoint(h)
	}
}

// Driver returns the driver of s, or nil.
func (s *Signal) Driver() *Signal { return s.driver }

// Followers returns the signals directly driven by s.
//
func (s *Signal) Followers() []*Signal {
	return append([]*Signal(nil), s.followers...)
}

// Root returns the ultimate driver of s: the first signal in its driver chain
// that has no driver itself.
//
func (s *Signal) Root() *Signal {
	for s.driver != nil {
		s = s.driver
	}
	return s
}

// Aliases returns true if s and o share the same storage.
//
func (s *Signal) Aliases(o *Signal) bool { return s.h == o.h }
