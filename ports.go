// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var signalType = reflect.TypeOf((*Signal)(nil))

// Ports declares signals of e from the tagged fields of the struct pointed to
// by v, and stores them in those fields.
//
// Fields must be of type *Signal or arrays of *Signal. The field tag has the
// form `hw:"dir[,type[,name]]"` where dir is "in", "out" or "sig" for input,
// output and internal signals. type is one of "wire", "int", "uN" or "sN" for
// N bits wide unsigned and signed values; if empty, the signal is seeded with
// a copy of seed. By default, the signal name is the field name in lowercase.
// Elements of arrays are named "name[i]".
//
//	type mux struct {
//		A, B *ezhdl.Signal `hw:"in"`
//		Sel  *ezhdl.Signal `hw:"in,wire"`
//		Out  *ezhdl.Signal `hw:"out"`
//	}
//
//	m := new(mux)
//	ezhdl.Ports(e, m, ezhdl.NewUnsigned(0, 8))
//
// Ports panics on malformed tags or unsupported field types.
//
func Ports(e *Entity, v interface{}, seed Value) {
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr || pv.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("%s: unsupported type %T", e.Path(), v))
	}
	sv := pv.Elem()
	typ := sv.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		name := strings.ToLower(f.Name)
		if len(tv) > 2 && tv[2] != "" {
			name = tv[2]
		}
		var dir Direction
		switch tv[0] {
		case "in":
			dir = In
		case "out":
			dir = Out
		case "sig":
			dir = Internal
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		s := seed
		if len(tv) > 1 && tv[1] != "" {
			var err error
			if s, err = scalarOf(tv[1]); err != nil {
				panic(errors.Wrapf(err, "field %q in %q", f.Name, typ.Name()))
			}
		}
		if s == nil {
			panic(errors.Errorf("no type for field %q in %q", f.Name, typ.Name()))
		}

		fv := sv.Field(i)
		switch ft := f.Type; {
		case ft == signalType:
			fv.Set(reflect.ValueOf(e.newSignal(name, dir, s, 1)))
		case ft.Kind() == reflect.Array && ft.Elem() == signalType:
			// bus
			for j := 0; j < ft.Len(); j++ {
				fv.Index(j).Set(reflect.ValueOf(e.newSignal(name+"["+strconv.Itoa(j)+"]", dir, s, 1)))
			}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
	}
}

// scalarOf returns a zero scalar for a type name as returned by TypeOf.
//
func scalarOf(typ string) (*Int, error) {
	switch typ {
	case "wire":
		return NewWire(0), nil
	case "int":
		return NewInteger(0), nil
	}
	if len(typ) > 1 {
		n, err := strconv.Atoi(typ[1:])
		if err == nil && n > 0 && n <= MaxBits {
			switch typ[0] {
			case 'u':
				return NewUnsigned(0, n), nil
			case 's':
				return NewSigned(0, n), nil
			}
		}
	}
	return nil, errors.Errorf("unsupported scalar type %q", typ)
}
