// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vcd writes simulation traces in Value Change Dump format.
//
package vcd

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	hw "github.com/sideprojectslab/ezhdl"
)

// integer leaves are dumped as 64 bit two's complement values.
const intBits = 64

type variable struct {
	id   string
	name string
	typ  string
	size int
}

// Writer is an ezhdl.Observer writing value changes to an io.Writer.
//
type Writer struct {
	w      *bufio.Writer
	c      io.Closer
	date   time.Time
	vars   map[*hw.Signal][]*variable
	nextID int
	last   hw.Time
	dumped bool
	err    error
}

// New returns a Writer writing to w. If w implements io.Closer, it is closed
// by End.
//
func New(w io.Writer) *Writer {
	vw := &Writer{w: bufio.NewWriter(w), date: time.Now(), vars: make(map[*hw.Signal][]*variable)}
	if c, ok := w.(io.Closer); ok {
		vw.c = c
	}
	return vw
}

// Create creates the named file and returns a Writer writing to it.
//
func Create(name string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrap(err, "vcd")
	}
	return New(f), nil
}

// identifier codes use the printable ASCII range
func code(n int) string {
	var b []byte
	for {
		b = append(b, byte('!'+n%94))
		n /= 94
		if n == 0 {
			break
		}
		n--
	}
	return string(b)
}

func (w *Writer) write(parts ...string) {
	if w.err != nil {
		return
	}
	for _, p := range parts {
		if _, err := w.w.WriteString(p); err != nil {
			w.err = errors.Wrap(err, "vcd")
			return
		}
	}
}

func leafVar(l hw.Leaf) (typ string, size int) {
	switch l.Value.Kind() {
	case hw.WireKind:
		return "wire", 1
	case hw.EnumKind:
		return "string", 1
	case hw.IntegerKind:
		return "integer", intBits
	}
	return "integer", l.Value.Width()
}

type scope struct {
	name     string
	children []*scope
	vars     []*variable
}

func (s *scope) child(name string) *scope {
	for _, c := range s.children {
		if c.name == name {
			return c
		}
	}
	c := &scope{name: name}
	s.children = append(s.children, c)
	return c
}

func (w *Writer) writeScope(s *scope) {
	w.write("$scope module ", s.name, " $end\n")
	for _, v := range s.vars {
		w.write("$var ", v.typ, " ", strconv.Itoa(v.size), " ", v.id, " ", v.name, " $end\n")
	}
	for _, c := range s.children {
		w.writeScope(c)
	}
	w.write("$upscope $end\n")
}

// Begin implements ezhdl.Observer. It writes the VCD header and variable
// definitions for all signals. Connected signals sharing the same storage
// share the same identifier code.
//
func (w *Writer) Begin(sim *hw.Simulator, signals []*hw.Signal) error {
	w.write("$date\n\t", w.date.Format(time.RFC1123), "\n$end\n")
	w.write("$version\n\tezhdl\n$end\n")
	w.write("$timescale 1 ", sim.Resolution(), " $end\n")

	root := &scope{}
	groups := make(map[*hw.Signal][]*variable)
	for _, s := range signals {
		sc := root
		for _, n := range strings.Split(s.Path(), ".") {
			sc = sc.child(n)
		}
		shared, ok := groups[s.Root()]
		var vars []*variable
		for i, l := range hw.Leaves(s) {
			typ, size := leafVar(l)
			v := &variable{name: l.Name, typ: typ, size: size}
			if ok && i < len(shared) {
				v.id = shared[i].id
			} else {
				v.id = code(w.nextID)
				w.nextID++
			}
			vars = append(vars, v)
			sc.vars = append(sc.vars, v)
		}
		// only the first signal of a group of connected signals dumps values
		if !ok && len(vars) > 0 {
			groups[s.Root()] = vars
			w.vars[s] = vars
		}
	}
	for _, c := range root.children {
		w.writeScope(c)
	}
	w.write("$enddefinitions $end\n")
	return w.err
}

func (w *Writer) value(v *variable, x *hw.Int) {
	switch v.typ {
	case "wire":
		if x.Bool() {
			w.write("1", v.id, "\n")
		} else {
			w.write("0", v.id, "\n")
		}
	case "string":
		w.write("s", x.Symbol(), " ", v.id, "\n")
	default:
		if x.Kind() == hw.IntegerKind {
			w.write("b", strconv.FormatUint(x.Uint64(), 2), " ", v.id, "\n")
		} else {
			w.write("b", x.Binary(), " ", v.id, "\n")
		}
	}
}

// Dump implements ezhdl.Observer.
//
func (w *Writer) Dump(t hw.Time, changed []*hw.Signal) error {
	var out []*hw.Signal
	for _, s := range changed {
		if _, ok := w.vars[s]; ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return w.err
	}
	if !w.dumped || t != w.last {
		w.write("#", strconv.FormatUint(uint64(t), 10), "\n")
	}
	w.dumped, w.last = true, t
	for _, s := range out {
		vs := w.vars[s]
		for i, l := range hw.Leaves(s) {
			if i < len(vs) {
				w.value(vs[i], l.Value)
			}
		}
	}
	return w.err
}

// End implements ezhdl.Observer. It writes the final timestamp, flushes the
// output and closes it if applicable.
//
func (w *Writer) End(t hw.Time) error {
	if !w.dumped || t != w.last {
		w.write("#", strconv.FormatUint(uint64(t), 10), "\n")
	}
	if w.err == nil {
		if err := w.w.Flush(); err != nil {
			w.err = errors.Wrap(err, "vcd")
		}
	}
	if w.c != nil {
		if err := w.c.Close(); err != nil && w.err == nil {
			w.err = errors.Wrap(err, "vcd")
		}
	}
	return w.err
}
