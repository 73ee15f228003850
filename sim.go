// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FaultPolicy selects what happens when a process step returns an error.
//
type FaultPolicy uint8

// Fault policies.
//
const (
	// AbortOnFault retires the faulty process, completes the current round of
	// process resumptions and stops the simulation with the error.
	AbortOnFault FaultPolicy = iota
	// RetireOnFault retires the faulty process, logs the error and carries on.
	RetireOnFault
)

// DefaultCycleLimit is the default maximum number of delta cycles per time
// step.
//
const DefaultCycleLimit = 1000

// Options configures a Simulator. The zero value is usable.
//
type Options struct {
	// CycleLimit is the maximum number of delta cycles without reaching a
	// fixpoint before a combinational cycle is reported. Defaults to
	// DefaultCycleLimit.
	CycleLimit int
	// Resolution is the time unit of simulation ticks. Defaults to "ps".
	Resolution string
	// StopAt stops the simulation before advancing past this time. Zero means
	// no limit.
	StopAt Time
	// ForceDump makes the initial observer dump include all signals.
	ForceDump bool
	// Faults sets the process fault policy.
	Faults FaultPolicy
	// Logger defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
	// Observers are notified of signal changes at the end of each time step.
	Observers []Observer
	// Controller, if not nil, is polled once per time step.
	Controller Controller
}

// Simulator is a discrete event, delta cycle simulator.
//
// A Simulator is not safe for concurrent use; independent simulators can run
// concurrently.
//
type Simulator struct {
	opts       Options
	log        logrus.FieldLogger
	resolution uint64

	arena   arena
	signals []*Signal
	top     *Entity

	now       Time
	events    []Time
	forceRun  bool
	forceDump bool
	stop      bool
	deltas    uint64
}

// New returns a new simulator. A nil opts uses default options.
//
func New(opts *Options) (*Simulator, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.CycleLimit <= 0 {
		o.CycleLimit = DefaultCycleLimit
	}
	if o.Resolution == "" {
		o.Resolution = "ps"
	}
	res, err := Unit(o.Resolution)
	if err != nil {
		return nil, errors.Wrap(err, "resolution")
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return &Simulator{opts: o, log: o.Logger, resolution: res}, nil
}

// Top creates the top level entity. It panics if called more than once.
//
func (s *Simulator) Top(name string) *Entity {
	if s.top != nil {
		panic(errors.Errorf("top level entity already set to %s", s.top.name))
	}
	s.top = newEntity(s, nil, name)
	return s.top
}

// TopEntity returns the top level entity, or nil.
func (s *Simulator) TopEntity() *Entity { return s.top }

// Resolution returns the time unit of simulation ticks.
func (s *Simulator) Resolution() string { return s.opts.Resolution }

// Now returns the current simulation time.
func (s *Simulator) Now() Time { return s.now }

// Deltas returns the total number of delta cycles run so far.
func (s *Simulator) Deltas() uint64 { return s.deltas }

// Signals returns the live signals in registration order.
//
func (s *Simulator) Signals() []*Signal { return append([]*Signal(nil), s.signals...) }

func (s *Simulator) register(sig *Signal) { s.signals = append(s.signals, sig) }

func (s *Simulator) unregister(sig *Signal) {
	for i, v := range s.signals {
		if v == sig {
			s.signals = append(s.signals[:i], s.signals[i+1:]...)
			return
		}
	}
}

// Stop makes Run return at the end of the current time step.
func (s *Simulator) Stop() { s.stop = true }

// Stopped returns true once Stop has been called.
func (s *Simulator) Stopped() bool { return s.stop }

// ForceRun forces at least one more delta cycle in the current time step.
func (s *Simulator) ForceRun() { s.forceRun = true }

// ForceDump makes the next observer notification include all signals.
func (s *Simulator) ForceDump() { s.forceDump = true }

// Schedule adds t to the set of pending wake-up times.
//
func (s *Simulator) Schedule(t Time) {
	i := sort.Search(len(s.events), func(i int) bool { return s.events[i] >= t })
	if i < len(s.events) && s.events[i] == t {
		return
	}
	s.events = append(s.events, 0)
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = t
}

// Pending returns the pending wake-up times in increasing order.
//
func (s *Simulator) Pending() []Time { return append([]Time(nil), s.events...) }

// Advance moves the simulation time to the earliest pending wake-up time. It
// returns false if there is none, or if it lies beyond Options.StopAt.
//
func (s *Simulator) Advance() bool {
	if len(s.events) == 0 {
		return false
	}
	t := s.events[0]
	if s.opts.StopAt > 0 && t > s.opts.StopAt {
		return false
	}
	s.events = s.events[1:]
	s.now = t
	s.clearChanges()
	return true
}

// Reset runs the reset functions of all entities, children first.
//
func (s *Simulator) Reset() error {
	if s.top == nil {
		return ErrNoTop
	}
	return s.top.doReset()
}

// resume resumes every live process once. Under AbortOnFault, the first fault
// is returned once all processes have been resumed.
//
func (s *Simulator) resume() error {
	if s.top == nil {
		return nil
	}
	var faults []error
	s.top.run(&faults)
	if len(faults) == 0 {
		return nil
	}
	if s.opts.Faults == RetireOnFault {
		for _, err := range faults {
			s.log.WithField("time", s.now).Warnf("process retired: %v", err)
		}
		return nil
	}
	return faults[0]
}

// Settle runs delta cycles at the current time until no value changes and no
// extra cycle has been requested. Each cycle resumes every process once, then
// runs the delta cycle scheduler. Settle returns the number of delta cycles
// run and fails with ErrCombinationalCycle if the fixpoint is not reached
// within Options.CycleLimit cycles.
//
func (s *Simulator) Settle() (int, error) {
	count := 0
	for {
		if err := s.resume(); err != nil {
			return count, err
		}
		updated, err := s.Delta()
		s.deltas++
		count++
		if err != nil {
			return count, err
		}
		if updated == 0 && !s.forceRun {
			return count, nil
		}
		if count > s.opts.CycleLimit {
			return count, errors.Wrapf(ErrCombinationalCycle, "no fixpoint after %d delta cycles at %s", s.opts.CycleLimit, s.now.Format(s.opts.Resolution))
		}
		s.forceRun = false
	}
}

func (s *Simulator) begin() error {
	for _, o := range s.opts.Observers {
		if err := o.Begin(s, s.Signals()); err != nil {
			return errors.Wrap(err, "observer")
		}
	}
	return nil
}

func (s *Simulator) dump(force bool) error {
	if len(s.opts.Observers) == 0 {
		return nil
	}
	var ch []*Signal
	for _, sig := range s.signals {
		if force || sig.transition {
			ch = append(ch, sig)
		}
	}
	for _, o := range s.opts.Observers {
		if err := o.Dump(s.now, ch); err != nil {
			return errors.Wrap(err, "observer")
		}
	}
	return nil
}

func (s *Simulator) end() error {
	var first error
	for _, o := range s.opts.Observers {
		if err := o.End(s.now); err != nil && first == nil {
			first = errors.Wrap(err, "observer")
		}
	}
	return first
}

// Run resets the design and runs the simulation until no wake-up is pending,
// the stop time is reached or Stop is called.
//
func (s *Simulator) Run() (err error) {
	if s.top == nil {
		return ErrNoTop
	}
	s.log.WithField("top", s.top.Path()).Info("simulation started")
	if err = s.Reset(); err != nil {
		return err
	}
	if err = s.begin(); err != nil {
		return err
	}
	defer func() {
		if e := s.end(); err == nil {
			err = e
		}
		s.log.WithFields(logrus.Fields{
			"time":   s.now.Format(s.opts.Resolution),
			"deltas": s.deltas,
		}).Info("simulation ended")
	}()

	if err = s.dump(s.opts.ForceDump); err != nil {
		return err
	}
	for !s.stop {
		n, err := s.Settle()
		if err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"time": s.now, "deltas": n}).Debug("settled")
		force := s.forceDump
		s.forceDump = false
		if err = s.dump(force); err != nil {
			return err
		}
		if s.stop || !s.Advance() {
			break
		}
		if s.opts.Controller != nil {
			if err = s.opts.Controller.Poll(s); err != nil {
				return errors.Wrap(err, "controller")
			}
		}
	}
	return nil
}
