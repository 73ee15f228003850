package ezhdl_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
	hw "github.com/sideprojectslab/ezhdl"
	"github.com/sideprojectslab/ezhdl/hwtest"
)

func TestNew_resolution(t *testing.T) {
	if _, err := hw.New(&hw.Options{Resolution: "fs"}); errors.Cause(err) != hw.ErrUnsupportedTimeUnit {
		t.Fatalf("got %v", err)
	}
	sim, err := hw.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Resolution() != "ps" {
		t.Fatalf("default resolution %s", sim.Resolution())
	}
}

func TestSimulator_noTop(t *testing.T) {
	sim, err := hw.New(&hw.Options{Logger: hwtest.Logger(t)})
	if err != nil {
		t.Fatal(err)
	}
	if err = sim.Run(); err != hw.ErrNoTop {
		t.Fatalf("got %v", err)
	}
	if err = sim.Reset(); err != hw.ErrNoTop {
		t.Fatalf("got %v", err)
	}
}

func TestSimulator_schedule(t *testing.T) {
	sim, _ := hwtest.New(t, &hw.Options{StopAt: 25})
	for _, tm := range []hw.Time{30, 10, 20, 10} {
		sim.Schedule(tm)
	}
	if p := sim.Pending(); !reflect.DeepEqual(p, []hw.Time{10, 20, 30}) {
		t.Fatalf("pending %v", p)
	}
	if !sim.Advance() || sim.Now() != 10 {
		t.Fatalf("advanced to %d", sim.Now())
	}
	if !sim.Advance() || sim.Now() != 20 {
		t.Fatalf("advanced to %d", sim.Now())
	}
	if sim.Advance() {
		t.Fatal("advanced past the stop time")
	}
	if sim.Now() != 20 || len(sim.Pending()) != 1 {
		t.Fatalf("now %d, pending %v", sim.Now(), sim.Pending())
	}
}

func TestSimulator_reset(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	var order []string
	a := top.Child("a")
	b := a.Child("b")
	c := top.Child("c")
	for _, e := range []*hw.Entity{top, a, b, c} {
		e := e
		e.OnReset(func() error { order = append(order, e.Name()); return nil })
	}
	if err := sim.Reset(); err != nil {
		t.Fatal(err)
	}
	if exp := []string{"b", "a", "c", "top"}; !reflect.DeepEqual(order, exp) {
		t.Fatalf("reset order %v, expected %v", order, exp)
	}

	errReset := errors.New("reset failed")
	c.OnReset(func() error { return errReset })
	if err := sim.Run(); errors.Cause(err) != errReset {
		t.Fatalf("got %v", err)
	}
}

func TestSimulator_stop(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	top.Process(hw.Sequence(
		func(p *hw.Process) error { return p.WaitTicks(10) },
		func(p *hw.Process) error { p.Entity().Sim().Stop(); return p.WaitTicks(10) },
	))
	run(t, sim)
	if !sim.Stopped() || sim.Now() != 10 {
		t.Fatalf("stopped at %d", sim.Now())
	}
}

func TestSimulator_cycle(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{CycleLimit: 10})
	x := top.Signal("x", hw.NewWire(0))
	top.Process(func(p *hw.Process) error { return x.SetBool(!x.Bool()) })
	err := sim.Run()
	if errors.Cause(err) != hw.ErrCombinationalCycle {
		t.Fatalf("got %v", err)
	}
	if sim.Deltas() <= 10 {
		t.Fatalf("only %d delta cycles", sim.Deltas())
	}
}

func TestSimulator_settle(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	// a chain of three inverters settles in three delta cycles, plus one to
	// detect the fixpoint
	s := []*hw.Signal{top.Signal("s0", hw.NewWire(0))}
	for i := 1; i <= 3; i++ {
		in, out := s[i-1], top.Child("inv"+string(rune('0'+i))).Signal("out", hw.NewWire(0))
		out.Owner().Process(func(p *hw.Process) error { return out.SetBool(!in.Bool()) })
		s = append(s, out)
	}
	if n := hwtest.Settle(t, sim); n != 4 {
		t.Fatalf("settled in %d delta cycles", n)
	}
	hwtest.Expect(t, s[3], 1)
	hwtest.Set(t, s[0], 1)
	hwtest.Settle(t, sim)
	hwtest.Expect(t, s[3], 0)
}

type recorder struct {
	begin []string
	dumps []string
	end   hw.Time
}

func (r *recorder) Begin(sim *hw.Simulator, signals []*hw.Signal) error {
	for _, s := range signals {
		r.begin = append(r.begin, s.FullName())
	}
	return nil
}

func (r *recorder) Dump(t hw.Time, changed []*hw.Signal) error {
	var names []string
	for _, s := range changed {
		names = append(names, s.Name())
	}
	r.dumps = append(r.dumps, t.Format("ps")+":"+strings.Join(names, ","))
	return nil
}

func (r *recorder) End(t hw.Time) error {
	r.end = t
	return nil
}

func TestSimulator_observers(t *testing.T) {
	td := []struct {
		name  string
		force bool
		exp   []string
	}{
		{"changes", false, []string{"0ps:", "0ps:clk", "5ps:clk", "10ps:clk"}},
		{"force", true, []string{"0ps:clk,idle", "0ps:clk", "5ps:clk", "10ps:clk"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			r := new(recorder)
			sim, top := hwtest.New(t, &hw.Options{StopAt: 10, ForceDump: d.force, Observers: []hw.Observer{r}})
			clk := top.Signal("clk", hw.NewWire(0))
			top.Signal("idle", hw.NewWire(0))
			clock(top, clk, 5)
			run(t, sim)
			if !reflect.DeepEqual(r.begin, []string{"top.clk", "top.idle"}) {
				t.Fatalf("begin: %v", r.begin)
			}
			if !reflect.DeepEqual(r.dumps, d.exp) {
				t.Fatalf("dumps: %v, expected %v", r.dumps, d.exp)
			}
			if r.end != 10 {
				t.Fatalf("ended at %d", r.end)
			}
		})
	}
}

func TestSimulator_controller(t *testing.T) {
	r := new(recorder)
	ctl := hw.ControllerFunc(func(sim *hw.Simulator) error {
		switch sim.Now() {
		case 5:
			sim.ForceDump()
		case 15:
			sim.Stop()
		}
		return nil
	})
	sim, top := hwtest.New(t, &hw.Options{Observers: []hw.Observer{r}, Controller: ctl})
	clk := top.Signal("clk", hw.NewWire(0))
	top.Signal("idle", hw.NewWire(0))
	clock(top, clk, 5)
	run(t, sim)
	exp := []string{"0ps:", "0ps:clk", "5ps:clk,idle", "10ps:clk"}
	if !reflect.DeepEqual(r.dumps, exp) {
		t.Fatalf("dumps: %v, expected %v", r.dumps, exp)
	}
	// stopped as soon as time advanced to 15
	if sim.Now() != 15 || r.end != 15 {
		t.Fatalf("stopped at %d", sim.Now())
	}

	errCtl := errors.New("controller failed")
	sim, top = hwtest.New(t, &hw.Options{Controller: hw.ControllerFunc(func(*hw.Simulator) error { return errCtl })})
	clock(top, top.Signal("clk", hw.NewWire(0)), 5)
	if err := sim.Run(); errors.Cause(err) != errCtl {
		t.Fatalf("got %v", err)
	}
}

func TestLeaves(t *testing.T) {
	_, top := hwtest.New(t, nil)
	s := top.Signal("r", hw.NewRecord("r",
		hw.Field{Name: "valid", Value: hw.NewWire(1)},
		hw.Field{Name: "data", Value: hw.NewArray(2, hw.NewUnsigned(3, 4))},
		hw.Field{Name: "note", Value: "skipped"},
	))
	var names []string
	for _, l := range hw.Leaves(s) {
		names = append(names, l.Name+"="+l.Value.String())
	}
	exp := []string{"r.valid=1", "r.data[0]=3", "r.data[1]=3"}
	if !reflect.DeepEqual(names, exp) {
		t.Fatalf("got %v, expected %v", names, exp)
	}
}

func TestParseTime(t *testing.T) {
	td := []struct {
		in  string
		res string
		t   hw.Time
	}{
		{"10ns", "ps", 10000},
		{"2.5 us", "ns", 2500},
		{"100", "ns", 100},
		{"1.5ns", "ns", 2},
		{"1ps", "ns", 0},
		{"1e3ps", "ns", 1},
		{"1s", "ms", 1000},
	}
	for _, d := range td {
		got, err := hw.ParseTime(d.in, d.res)
		if err != nil {
			t.Errorf("%s: %v", d.in, err)
			continue
		}
		if got != d.t {
			t.Errorf("ParseTime(%q, %q) = %d, expected %d", d.in, d.res, got, d.t)
		}
	}
	for _, in := range []string{"", "ns", "10 fs", "1ns2", "-1ns"} {
		if _, err := hw.ParseTime(in, "ps"); err == nil {
			t.Errorf("ParseTime(%q): expected an error", in)
		}
	}
	if _, err := hw.ParseTime("1ns", "fs"); errors.Cause(err) != hw.ErrUnsupportedTimeUnit {
		t.Errorf("got %v", err)
	}
}

func TestUnit(t *testing.T) {
	for u, exp := range map[string]uint64{"ps": 1, "ns": 1e3, "us": 1e6, "ms": 1e9, "s": 1e12} {
		if got, err := hw.Unit(u); err != nil || got != exp {
			t.Errorf("Unit(%s) = %d, %v", u, got, err)
		}
	}
	if hw.Time(1500).Format("ps") != "1500ps" {
		t.Fatal("bad format")
	}
}
