package hwlib_test

import (
	"testing"
	"testing/quick"

	hw "github.com/sideprojectslab/ezhdl"
	hl "github.com/sideprojectslab/ezhdl/hwlib"
	"github.com/sideprojectslab/ezhdl/hwtest"
)

func TestDFF(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	clk := top.Signal("clk", hw.NewWire(0))
	in := top.Signal("in", hw.NewUnsigned(0, 4))
	dff := hl.DFF(top, "dff", hw.NewUnsigned(0, 4))
	connect(t, top, dff.Clk, clk)
	connect(t, top, dff.In, in)
	hwtest.Settle(t, sim)

	var prev int64
	for i := int64(15); i >= 0; i-- {
		hwtest.Set(t, in, i)
		hwtest.Settle(t, sim)
		if got := dff.Out.Int64(); got != prev {
			t.Fatalf("bad output for input %d before clock: expected out = %d, got %d", i, prev, got)
		}
		hwtest.Tick(t, sim, clk)
		if got := dff.Out.Int64(); got != i {
			t.Fatalf("bad output for input %d after clock: expected out = %d, got %d", i, i, got)
		}
		prev = i
	}
}

func TestRegister_depth(t *testing.T) {
	const depth = 3
	sim, top := hwtest.New(t, nil)
	clk := top.Signal("clk", hw.NewWire(0))
	in := top.Signal("in", hw.NewUnsigned(0, 8))
	r := hl.NewRegister(top, "reg", hw.NewUnsigned(0, 8), depth)
	connect(t, top, r.Clk, clk)
	connect(t, top, r.In, in)
	if d := r.Out.Depth(); d != depth {
		t.Fatalf("output depth = %d, expected %d", d, depth)
	}
	hwtest.Settle(t, sim)

	var hist []int64
	f := func(v uint8) bool {
		hwtest.Set(t, in, int64(v))
		hwtest.Tick(t, sim, clk)
		hist = append(hist, int64(v))
		exp := int64(0)
		if len(hist) >= depth {
			exp = hist[len(hist)-depth]
		}
		return r.Out.Int64() == exp
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestAdder(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	a := hl.NewAdder(top, "add", 8)
	f := func(x, y uint8, cin bool) bool {
		c := int64(0)
		if cin {
			c = 1
		}
		hwtest.Set(t, a.A, int64(x))
		hwtest.Set(t, a.B, int64(y))
		hwtest.Set(t, a.Cin, c)
		hwtest.Settle(t, sim)
		sum := int64(x) + int64(y) + c
		return a.Sum.Int64() == sum&0xff && a.Cout.Bool() == (sum > 0xff)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestInc(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	n := hl.Inc(top, "inc", 4)
	for i := int64(0); i < 16; i++ {
		hwtest.Set(t, n.In, i)
		hwtest.Settle(t, sim)
		hwtest.Expect(t, n.Out, (i+1)&15)
	}
}
