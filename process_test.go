package ezhdl_test

import (
	"testing"

	"github.com/pkg/errors"
	hw "github.com/sideprojectslab/ezhdl"
	"github.com/sideprojectslab/ezhdl/hwtest"
)

// clock makes e toggle s every half ticks, starting with a rising edge at 0.
//
func clock(e *hw.Entity, s *hw.Signal, half hw.Time) {
	e.Process(func(p *hw.Process) error {
		if err := s.SetBool(!s.Bool()); err != nil {
			return err
		}
		return p.WaitTicks(half)
	})
}

func run(t *testing.T, sim *hw.Simulator) {
	t.Helper()
	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestProcess_sequence(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{Resolution: "ns"})
	x := top.Signal("x", hw.NewUnsigned(0, 4))
	var seen []hw.Time
	top.Process(hw.Sequence(
		func(p *hw.Process) error { return p.Wait(10, "ns") },
		func(p *hw.Process) error { seen = append(seen, p.Now()); return x.SetInt(1) },
		func(p *hw.Process) error { return p.Wait(0.005, "us") },
		func(p *hw.Process) error { seen = append(seen, p.Now()); return x.SetInt(2) },
	))
	run(t, sim)
	hwtest.Expect(t, x, 2)
	if len(seen) != 2 || seen[0] != 10 || seen[1] != 15 {
		t.Fatalf("steps ran at %v, expected [10 15]", seen)
	}
	if sim.Now() != 15 || len(sim.Pending()) != 0 {
		t.Fatalf("ended at %d with %v pending", sim.Now(), sim.Pending())
	}
}

func TestProcess_loop(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{StopAt: 100})
	x := top.Signal("x", hw.NewUnsigned(0, 8))
	top.Process(hw.Loop(
		func(p *hw.Process) error { return p.WaitTicks(10) },
		func(p *hw.Process) error { return x.SetNext(x.Int().AddInt(1)) },
	))
	run(t, sim)
	hwtest.Expect(t, x, 10)
	if sim.Now() != 100 {
		t.Fatalf("stopped at %d", sim.Now())
	}
}

func TestProcess_edges(t *testing.T) {
	td := []struct {
		edge hw.Edge
		n    int
	}{
		{hw.Rising, 3},
		{hw.Falling, 2},
		{hw.AnyEdge, 5},
	}
	for _, d := range td {
		t.Run(d.edge.String(), func(t *testing.T) {
			sim, top := hwtest.New(t, &hw.Options{StopAt: 20})
			clk := top.Signal("clk", hw.NewWire(0))
			clock(top, clk, 5)
			n := 0
			top.Child("cnt").Process(hw.Always(clk, d.edge, func(p *hw.Process) error {
				n++
				return nil
			}))
			run(t, sim)
			if n != d.n {
				t.Fatalf("%d edges, expected %d", n, d.n)
			}
		})
	}
}

func TestProcess_edgeWait(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{StopAt: 40})
	clk := top.Signal("clk", hw.NewWire(0))
	clock(top, clk, 5)
	var at []hw.Time
	top.Child("w").Process(hw.Loop(
		func(p *hw.Process) error { return p.Negedge(clk) },
		func(p *hw.Process) error { at = append(at, p.Now()); return p.Posedge(clk) },
		func(p *hw.Process) error { at = append(at, p.Now()); return p.AnyEdge(clk) },
		func(p *hw.Process) error { at = append(at, p.Now()); return nil },
	))
	run(t, sim)
	// negedge 5, posedge 10, any 15, then back to negedge 25, posedge 30, any 35
	exp := []hw.Time{5, 10, 15, 25, 30, 35}
	if len(at) != len(exp) {
		t.Fatalf("woke up at %v, expected %v", at, exp)
	}
	for i := range exp {
		if at[i] != exp[i] {
			t.Fatalf("woke up at %v, expected %v", at, exp)
		}
	}
}

func TestProcess_waitErrors(t *testing.T) {
	td := []struct {
		name string
		step hw.Step
		err  error
	}{
		{"negative", func(p *hw.Process) error { return p.Wait(-1, "ns") }, hw.ErrNegativeDelay},
		{"unit", func(p *hw.Process) error { return p.Wait(1, "fs") }, hw.ErrUnsupportedTimeUnit},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			sim, top := hwtest.New(t, nil)
			top.Process(d.step)
			if err := sim.Run(); errors.Cause(err) != d.err {
				t.Fatalf("got error %v, expected %v", err, d.err)
			}
		})
	}
}

func TestProcess_abort(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	x := top.Signal("x", hw.NewWire(0))
	errBad := errors.New("bad")
	top.Child("bad").Process(func(p *hw.Process) error { return errBad })
	top.Process(func(p *hw.Process) error {
		if err := x.SetInt(1); err != nil {
			return err
		}
		p.Finish()
		return nil
	})
	if err := sim.Run(); errors.Cause(err) != errBad {
		t.Fatalf("got error %v", err)
	}
	// the faulty process does not prevent the others from running
	if v := x.Next().(*hw.Int).Int64(); v != 1 {
		t.Fatal("round not completed")
	}
}

func TestProcess_retire(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{Faults: hw.RetireOnFault, StopAt: 50})
	x := top.Signal("x", hw.NewUnsigned(0, 8))
	calls := 0
	top.Child("bad").Process(func(p *hw.Process) error {
		calls++
		return errors.New("bad")
	})
	top.Process(hw.Loop(
		func(p *hw.Process) error { return p.WaitTicks(10) },
		func(p *hw.Process) error { return x.SetNext(x.Int().AddInt(1)) },
	))
	run(t, sim)
	if calls != 1 {
		t.Fatalf("retired process called %d times", calls)
	}
	hwtest.Expect(t, x, 5)
}

func TestProcess_finish(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	x := top.Signal("x", hw.NewUnsigned(0, 8))
	calls := 0
	// combinational: called again as long as x changes
	top.Process(func(p *hw.Process) error {
		calls++
		if calls == 3 {
			p.Finish()
		}
		return x.SetNext(x.Int().AddInt(1))
	})
	run(t, sim)
	if calls != 3 {
		t.Fatalf("process called %d times", calls)
	}
	hwtest.Expect(t, x, 3)
}
