package ezhdl_test

import (
	"testing"

	hw "github.com/sideprojectslab/ezhdl"
	"github.com/sideprojectslab/ezhdl/hwtest"
)

type mux4 struct {
	A    [4]*hw.Signal `hw:"in"`
	B    [4]*hw.Signal `hw:"in"`
	S    *hw.Signal    `hw:"in,wire,sel"`
	Out  [4]*hw.Signal `hw:"out"`
	Cnt  *hw.Signal    `hw:"sig,u3"`
	skip *hw.Signal
}

func TestPorts(t *testing.T) {
	sim, top := hwtest.New(t, nil)
	e := top.Child("m")
	m := new(mux4)
	hw.Ports(e, m, hw.NewWire(0))
	e.Process(func(p *hw.Process) error {
		src := m.A
		if m.S.Bool() {
			src = m.B
		}
		for i, s := range src {
			if err := m.Out[i].SetNext(s.Now()); err != nil {
				return err
			}
		}
		return nil
	})
	if m.skip != nil {
		t.Fatal("untagged field set")
	}
	td := []struct {
		path string
		dir  hw.Direction
		typ  string
	}{
		{"m.a[0]", hw.In, "wire"},
		{"m.b[3]", hw.In, "wire"},
		{"m.sel", hw.In, "wire"},
		{"m.out[2]", hw.Out, "wire"},
		{"m.cnt", hw.Internal, "u3"},
	}
	for _, d := range td {
		s := top.Lookup(d.path)
		if s == nil {
			t.Fatalf("%s not found", d.path)
		}
		if s.Dir() != d.dir || hw.TypeOf(s.Now()) != d.typ {
			t.Fatalf("%s: got %s %s, expected %s %s", d.path, s.Dir(), hw.TypeOf(s.Now()), d.dir, d.typ)
		}
	}

	// a = 0101, b = 1010
	for i := 0; i < 4; i++ {
		hwtest.Set(t, m.A[i], int64(i&1^1))
		hwtest.Set(t, m.B[i], int64(i&1))
	}
	hwtest.Settle(t, sim)
	for i, s := range m.Out {
		hwtest.Expect(t, s, int64(i&1^1))
	}
	hwtest.Set(t, m.S, 1)
	hwtest.Settle(t, sim)
	for i, s := range m.Out {
		hwtest.Expect(t, s, int64(i&1))
	}
}

func TestPorts_errors(t *testing.T) {
	td := []struct {
		name string
		v    interface{}
	}{
		{"not a pointer", mux4{}},
		{"bad direction", &struct {
			X *hw.Signal `hw:"inout"`
		}{}},
		{"bad type", &struct {
			X *hw.Signal `hw:"in,u0"`
		}{}},
		{"bad field", &struct {
			X int `hw:"in"`
		}{}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, top := hwtest.New(t, nil)
			defer func() {
				if recover() == nil {
					t.Fatal("expected a panic")
				}
			}()
			hw.Ports(top, d.v, hw.NewWire(0))
		})
	}
}
