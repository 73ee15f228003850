package vcd_test

import (
	"bytes"
	"strings"
	"testing"

	hw "github.com/sideprojectslab/ezhdl"
	hl "github.com/sideprojectslab/ezhdl/hwlib"
	"github.com/sideprojectslab/ezhdl/hwtest"
	"github.com/sideprojectslab/ezhdl/vcd"
)

func body(t *testing.T, out string) string {
	t.Helper()
	i := strings.Index(out, "$enddefinitions $end\n")
	if i < 0 {
		t.Fatalf("missing end of definitions in:\n%s", out)
	}
	return out[i+len("$enddefinitions $end\n"):]
}

func TestWriter_clock(t *testing.T) {
	td := []struct {
		name  string
		force bool
		exp   string
	}{
		{"changes", false, "#5\n1!\n#10\n0!\n#15\n1!\n#20\n0!\n"},
		{"forced", true, "#0\n0!\n#5\n1!\n#10\n0!\n#15\n1!\n#20\n0!\n"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			var buf bytes.Buffer
			sim, top := hwtest.New(t, &hw.Options{
				Resolution: "ns",
				StopAt:     20,
				ForceDump:  d.force,
				Observers:  []hw.Observer{vcd.New(&buf)},
			})
			hl.Clock(top, "gen", 10, "ns")
			if err := sim.Run(); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, s := range []string{
				"$timescale 1 ns $end\n",
				"$scope module top $end\n$scope module gen $end\n$var wire 1 ! clk $end\n$upscope $end\n$upscope $end\n",
			} {
				if !strings.Contains(out, s) {
					t.Fatalf("missing %q in:\n%s", s, out)
				}
			}
			if b := body(t, out); b != d.exp {
				t.Fatalf("got:\n%s\nexpected:\n%s", b, d.exp)
			}
		})
	}
}

func TestWriter_aliases(t *testing.T) {
	var buf bytes.Buffer
	sim, top := hwtest.New(t, &hw.Options{Observers: []hw.Observer{vcd.New(&buf)}})
	x := top.Signal("x", hw.NewUnsigned(0, 4))
	top.Signal("r", hw.NewRecord("pkt",
		hw.Field{Name: "valid", Value: hw.NewWire(0)},
		hw.Field{Name: "len", Value: hw.NewUnsigned(0, 3)},
		hw.Field{Name: "tag", Value: "x"},
	))
	dut := top.Child("dut")
	in := dut.Input("in", hw.NewUnsigned(0, 4))
	if err := in.Connect(top, x); err != nil {
		t.Fatal(err)
	}
	top.Process(hw.Sequence(func(p *hw.Process) error {
		if err := x.SetInt(5); err != nil {
			return err
		}
		return p.WaitTicks(1)
	}))
	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{
		"$var integer 4 ! x $end\n",
		"$var wire 1 \" r.valid $end\n",
		"$var integer 3 # r.len $end\n",
		"$scope module dut $end\n$var integer 4 ! in $end\n",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("missing %q in:\n%s", s, out)
		}
	}
	if b, exp := body(t, out), "#0\nb0101 !\n#1\n"; b != exp {
		t.Fatalf("got:\n%s\nexpected:\n%s", b, exp)
	}
}
