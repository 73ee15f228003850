// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing entities.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	hw "github.com/sideprojectslab/ezhdl"
)

// ClockPort is the name of the input port CompareEntities drives as a clock.
//
const ClockPort = "clk"

type logWriter struct{ tb testing.TB }

func (w logWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Logger returns a logrus logger writing to the test log.
//
func Logger(tb testing.TB) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(logWriter{tb})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// New returns a new simulator logging to the test log and its top level
// entity.
//
func New(tb testing.TB, opts *hw.Options) (*hw.Simulator, *hw.Entity) {
	tb.Helper()
	var o hw.Options
	if opts != nil {
		o = *opts
	}
	if o.Logger == nil {
		o.Logger = Logger(tb)
	}
	sim, err := hw.New(&o)
	if err != nil {
		tb.Fatal(err)
	}
	return sim, sim.Top("top")
}

// Settle runs delta cycles until the design is stable and fails the test on
// error.
//
func Settle(tb testing.TB, sim *hw.Simulator) int {
	tb.Helper()
	n, err := sim.Settle()
	if err != nil {
		tb.Fatal(err)
	}
	return n
}

// Step advances the simulation to the next wake-up time and settles it. It
// returns false if no wake-up time is pending.
//
func Step(tb testing.TB, sim *hw.Simulator) bool {
	tb.Helper()
	if !sim.Advance() {
		return false
	}
	Settle(tb, sim)
	return true
}

// Tick drives a rising edge on clk and settles the design, then brings clk
// back low and settles again.
//
func Tick(tb testing.TB, sim *hw.Simulator, clk *hw.Signal) {
	tb.Helper()
	Set(tb, clk, 1)
	Settle(tb, sim)
	Set(tb, clk, 0)
	Settle(tb, sim)
}

// Set writes v to s and fails the test on error.
//
func Set(tb testing.TB, s *hw.Signal, v int64) {
	tb.Helper()
	if err := s.SetInt(v); err != nil {
		tb.Fatal(err)
	}
}

// Expect fails the test if the committed value of s is not v.
//
func Expect(tb testing.TB, s *hw.Signal, v int64) {
	tb.Helper()
	if got := s.Int64(); got != v {
		tb.Errorf("%s = %d, expected %d", s.FullName(), got, v)
	}
}

func ports(e *hw.Entity, dir hw.Direction) []*hw.Signal {
	var ps []*hw.Signal
	for _, s := range e.Signals() {
		if s.Dir() == dir {
			ps = append(ps, s)
		}
	}
	return ps
}

// Builder builds an entity as a child of parent.
//
type Builder func(parent *hw.Entity, name string) *hw.Entity

// CompareEntities builds two entities and compares their outputs given the
// same inputs. Both entities must have the same input and output ports, and
// all inputs must be scalars. An input port named ClockPort is pulsed after
// the other inputs have been set.
//
func CompareEntities(t *testing.T, build1, build2 Builder) {
	t.Helper()

	sim, top := New(t, nil)
	e1, e2 := build1(top, "dut1"), build2(top, "dut2")

	in1, in2 := ports(e1, hw.In), ports(e2, hw.In)
	out1, out2 := ports(e1, hw.Out), ports(e2, hw.Out)

	// compare interfaces
	if len(in1) != len(in2) {
		t.Fatalf("%s has %d inputs, %s has %d", e1.Path(), len(in1), e2.Path(), len(in2))
	}
	if len(out1) != len(out2) {
		t.Fatalf("%s has %d outputs, %s has %d", e1.Path(), len(out1), e2.Path(), len(out2))
	}
	for i := range in1 {
		if in1[i].Name() != in2[i].Name() || hw.TypeOf(in1[i].Now()) != hw.TypeOf(in2[i].Now()) {
			t.Fatalf("input %d: %s %s != %s %s", i, in1[i].Name(), hw.TypeOf(in1[i].Now()), in2[i].Name(), hw.TypeOf(in2[i].Now()))
		}
	}
	for i := range out1 {
		if out1[i].Name() != out2[i].Name() || hw.TypeOf(out1[i].Now()) != hw.TypeOf(out2[i].Now()) {
			t.Fatalf("output %d: %s %s != %s %s", i, out1[i].Name(), hw.TypeOf(out1[i].Now()), out2[i].Name(), hw.TypeOf(out2[i].Now()))
		}
	}

	// shared drivers
	var clk *hw.Signal
	var data []*hw.Signal
	for i, in := range in1 {
		if in.Int() == nil {
			t.Fatalf("input %s is not a scalar", in.FullName())
		}
		d := top.Signal(in.Name(), in.Now())
		for _, s := range []*hw.Signal{in, in2[i]} {
			if err := s.Connect(top, d); err != nil {
				t.Fatal(err)
			}
		}
		if in.Name() == ClockPort {
			clk = d
		} else {
			data = append(data, d)
		}
	}

	if err := sim.Reset(); err != nil {
		t.Fatal(err)
	}
	Settle(t, sim)

	apply := func() {
		t.Helper()
		Settle(t, sim)
		if clk != nil {
			Tick(t, sim, clk)
		}
	}
	errString := func(o int) string {
		var b strings.Builder
		for _, d := range data {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Name())
			b.WriteRune('=')
			b.WriteString(d.Now().String())
		}
		return fmt.Sprintf("\nGiven %s\n%s = %v, %s = %v", b.String(), out1[o].FullName(), out1[o].Now(), out2[o].FullName(), out2[o].Now())
	}
	check := func() {
		t.Helper()
		for o := range out1 {
			if !out1[o].Now().Equal(out2[o].Now()) {
				t.Fatal(errString(o))
			}
		}
	}

	// random testing
	bits := 0
	for _, d := range data {
		bits += d.Now().Width()
	}
	iter := bits
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	// try all 0
	for _, d := range data {
		Set(t, d, 0)
	}
	apply()
	check()

	// try all 1
	for _, d := range data {
		Set(t, d, -1)
	}
	apply()
	check()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < iter; i++ {
		for _, d := range data {
			Set(t, d, rnd.Int63())
		}
		apply()
		check()
	}

	elapsed := time.Since(start)
	t.Logf("%d signals. %d delta cycles in %v", len(sim.Signals()), sim.Deltas(), elapsed)
}
