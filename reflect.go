// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
type Updater interface {
	Update(c *Circuit)
}

// MakePart wraps an Updater into a custom part.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be of type int and receive the pin number when the part
// is mounted. Buses must be arrays of int. Untagged fields are left alone
// and can hold the part's internal state; every mounted instance gets its
// own zero value.
//
//	type strobe struct {
//		In  int `hw:"in"`
//		Out int `hw:"out"`
//		prev bool
//	}
//
//	func (s *strobe) Update(c *pdmsim.Circuit) {
//		in := c.Get(s.In)
//		c.Set(s.Out, in && !s.prev)
//		s.prev = in
//	}
//
//	var strobeSpec = pdmsim.MakePart((*strobe)(nil))
//
// MakePart panics if t is not a pointer to a struct or if a tagged field has
// an unsupported tag or type.
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported type %q: need a pointer to a struct", typ))
	}
	typ = typ.Elem()

	sp := &PartSpec{Name: typ.Name()}
	pins := fieldPins(typ)
	for _, p := range pins {
		if p.input {
			sp.Inputs = append(sp.Inputs, p.names()...)
		} else {
			sp.Outputs = append(sp.Outputs, p.names()...)
		}
	}
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, p := range pins {
			fv := e.Field(p.field)
			if p.bus < 0 {
				fv.SetInt(int64(s.Pin(p.name)))
				continue
			}
			for i := 0; i < p.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(p.name, i))))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
	return sp
}

// fieldPin describes a tagged struct field.
type fieldPin struct {
	field int
	name  string
	input bool
	bus   int // bus width, -1 for a single pin
}

func (p fieldPin) names() []string {
	if p.bus < 0 {
		return []string{p.name}
	}
	return busPins(p.name, p.bus)
}

func fieldPins(typ reflect.Type) []fieldPin {
	var pins []fieldPin
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		p := fieldPin{field: i, name: strings.ToLower(f.Name), bus: -1}
		dir, name, _ := strings.Cut(tag, ",")
		if name != "" {
			p.name = name
		}
		switch dir {
		case "in":
			p.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		switch ft := f.Type; {
		case ft.Kind() == reflect.Int:
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			p.bus = ft.Len()
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
		pins = append(pins, p)
	}
	return pins
}
