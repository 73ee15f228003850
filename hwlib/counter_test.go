package hwlib_test

import (
	"testing"

	hw "github.com/sideprojectslab/ezhdl"
	hl "github.com/sideprojectslab/ezhdl/hwlib"
	"github.com/sideprojectslab/ezhdl/hwtest"
)

func TestCounter(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	clk := top.Signal("clk", hw.NewWire(0))
	rst := top.Signal("rst", hw.NewWire(0))
	c := hl.NewCounter(top, "cnt", 10)
	connect(t, top, c.Clk, clk)
	connect(t, top, c.Rst, rst)
	if w := c.Q.Now().Width(); w != 4 {
		t.Fatalf("counter width = %d, expected 4", w)
	}
	hwtest.Settle(t, sim)

	for n := 1; n <= 25; n++ {
		hwtest.Tick(t, sim, clk)
		hwtest.Expect(t, c.Q, int64(n%10))
	}

	hwtest.Set(t, rst, 1)
	hwtest.Tick(t, sim, clk)
	hwtest.Expect(t, c.Q, 0)
	hwtest.Tick(t, sim, clk)
	hwtest.Expect(t, c.Q, 0)
	hwtest.Set(t, rst, 0)
	hwtest.Tick(t, sim, clk)
	hwtest.Expect(t, c.Q, 1)
}

func TestCounter_falling(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	clk := top.Signal("clk", hw.NewWire(1))
	c := hl.NewCounter(top, "cnt", 4)
	connect(t, top, c.Clk, clk)
	hwtest.Settle(t, sim)

	// falling edges do not count
	hwtest.Set(t, clk, 0)
	hwtest.Settle(t, sim)
	hwtest.Expect(t, c.Q, 0)
	hwtest.Set(t, clk, 1)
	hwtest.Settle(t, sim)
	hwtest.Expect(t, c.Q, 1)
}

func TestBitToggler(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	clk := top.Signal("clk", hw.NewWire(0))
	b := hl.NewBitToggler(top, "tog", 3)
	connect(t, top, b.Clk, clk)
	hwtest.Settle(t, sim)

	var got []int64
	for i := 0; i < 7; i++ {
		hwtest.Tick(t, sim, clk)
		got = append(got, b.Toggle.Int64())
	}
	exp := []int64{0, 0, 1, 1, 1, 0, 0}
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("toggle sequence %v, expected %v", got, exp)
		}
	}
}

func TestClockCounter(t *testing.T) {
	sim, top := hwtest.New(t, &hw.Options{Resolution: "ns", StopAt: 100})
	clk := hl.Clock(top, "clk", 10, "ns")
	c := hl.NewCounter(top, "cnt", 16)
	connect(t, top, c.Clk, clk.Clk)

	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	if sim.Now() != 100 {
		t.Fatalf("simulation stopped at %d, expected 100", sim.Now())
	}
	// rising edges at 5, 15, ..., 95
	hwtest.Expect(t, c.Q, 10)
}
