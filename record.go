// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Field is a named record field. Value is usually a hardware Value; any other
// Go value is carried along and replaced wholesale on assignment.
//
type Field struct {
	Name  string
	Value interface{}
}

// Cloner may be implemented by non hardware record fields that need a deep
// copy on assignment. Other values are copied as is.
//
type Cloner interface {
	Clone() interface{}
}

// Record is a named, heterogeneous set of fields.
//
type Record struct {
	name   string
	fields []Field
	idx    map[string]int
}

// NewRecord returns a new record holding copies of the given fields. It panics
// if a field name is empty or duplicated.
//
func NewRecord(name string, fields ...Field) *Record {
	r := &Record{name: name, fields: make([]Field, len(fields)), idx: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.Name == "" {
			panic(errors.Errorf("record %s: empty field name", name))
		}
		if _, ok := r.idx[f.Name]; ok {
			panic(errors.Errorf("record %s: duplicate field %q", name, f.Name))
		}
		r.idx[f.Name] = i
		r.fields[i] = Field{f.Name, cloneAny(f.Value)}
	}
	return r
}

func cloneAny(v interface{}) interface{} {
	switch v := v.(type) {
	case Value:
		return v.Clone()
	case Cloner:
		return v.Clone()
	}
	return v
}

// Name returns the record's type name.
func (r *Record) Name() string { return r.name }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// FieldAt returns field i in declaration order.
func (r *Record) FieldAt(i int) Field { return r.fields[i] }

// Field returns the named field's value, or nil if there is no such field.
// Hardware values are returned by reference.
//
func (r *Record) Field(name string) interface{} {
	if i, ok := r.idx[name]; ok {
		return r.fields[i].Value
	}
	return nil
}

// Get returns the named field as a hardware value, or nil.
//
func (r *Record) Get(name string) Value {
	v, _ := r.Field(name).(Value)
	return v
}

// Int returns the named field as a scalar, or nil.
//
func (r *Record) Int(name string) *Int {
	v, _ := r.Field(name).(*Int)
	return v
}

// Set assigns v to the named field, following the same rules as Assign.
//
func (r *Record) Set(name string, v interface{}) error {
	i, ok := r.idx[name]
	if !ok {
		return errors.Errorf("record %s has no field %q", r.name, name)
	}
	if dst, ok := r.fields[i].Value.(Value); ok {
		src, ok := v.(Value)
		if !ok {
			return errors.Wrapf(ErrTypeIncompatible, "field %s.%s: %T is not a hardware value", r.name, name, v)
		}
		return errors.Wrapf(dst.Assign(src), "field %s.%s", r.name, name)
	}
	r.fields[i].Value = cloneAny(v)
	return nil
}

// Kind implements Value.
func (r *Record) Kind() Kind { return RecordKind }

// Width implements Value.
func (r *Record) Width() int {
	w := 0
	for _, f := range r.fields {
		if v, ok := f.Value.(Value); ok {
			w += v.Width()
		}
	}
	return w
}

// Clone implements Value.
func (r *Record) Clone() Value {
	return NewRecord(r.name, r.fields...)
}

// Equal implements Value.
func (r *Record) Equal(v Value) bool {
	o, ok := v.(*Record)
	if !ok || len(o.fields) != len(r.fields) {
		return false
	}
	for _, f := range r.fields {
		j, ok := o.idx[f.Name]
		if !ok {
			return false
		}
		of := o.fields[j].Value
		if hv, ok := f.Value.(Value); ok {
			ov, ok := of.(Value)
			if !ok || !hv.Equal(ov) {
				return false
			}
		} else if !reflect.DeepEqual(f.Value, of) {
			return false
		}
	}
	return true
}

// Accepts implements Value. Both records must have the same field names;
// hardware fields must accept their counterpart and other fields must have
// the same Go type.
//
func (r *Record) Accepts(src Value) bool {
	o, ok := src.(*Record)
	if !ok || len(o.fields) != len(r.fields) {
		return false
	}
	for _, f := range r.fields {
		j, ok := o.idx[f.Name]
		if !ok {
			return false
		}
		of := o.fields[j].Value
		if hv, ok := f.Value.(Value); ok {
			ov, ok := of.(Value)
			if !ok || !hv.Accepts(ov) {
				return false
			}
		} else if reflect.TypeOf(f.Value) != reflect.TypeOf(of) {
			return false
		}
	}
	return true
}

// Assign implements Value. Hardware fields are assigned in place, other
// fields are replaced by a copy of the source field.
//
func (r *Record) Assign(src Value) error {
	if !r.Accepts(src) {
		return incompatible(r, src)
	}
	o := src.(*Record)
	for i, f := range r.fields {
		of := o.fields[o.idx[f.Name]].Value
		if hv, ok := f.Value.(Value); ok {
			if err := hv.Assign(of.(Value)); err != nil {
				return err
			}
			continue
		}
		r.fields[i].Value = cloneAny(of)
	}
	return nil
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.name)
	b.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		fmt.Fprint(&b, f.Value)
	}
	b.WriteByte('}')
	return b.String()
}
