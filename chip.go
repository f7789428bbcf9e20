// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim

import (
	"github.com/pkg/errors"
)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	notSpec := &pdmsim.PartSpec{
//		Name:    "Not",
//		Inputs:  pdmsim.IO("in"),
//		Outputs: pdmsim.IO("out"),
//		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []pdmsim.Component{
//				func(c *pdmsim.Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
// Get a NewPartFn for a PartSpec with its NewPart method:
//
//	var notGate = notSpec.NewPart
//
// or:
//
//	func Not(c string) pdmsim.Part { return notSpec.NewPart(c) }
//
// Which can the be used when building other chips:
//
//	c, _ := pdmsim.Chip("dummy", "a, b", "c, d",
//		notGate("in=a, out=c"),
//		Not("in=b, out=d"),
//	)
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a list of parts.
type Parts []Part

type chip struct {
	PartSpec // PartSpec for this chip
	parts    []Part
	// wires maps the pins of each sub part to a wire name within the chip.
	// Wire names are either chip input/output names, constants, or internal
	// wire names.
	wires []map[string]string
}

func (c *chip) mount(s *Socket) []Component {
	var cs []Component

	for i, p := range c.parts {
		sub := newSocket(s.c)
		w := c.wires[i]
		for _, k := range p.Inputs {
			if n, ok := w[k]; ok {
				sub.m[k] = s.PinOrNew(n)
			} else {
				// unconnected inputs are grounded.
				sub.m[k] = cstFalse
			}
		}
		for _, k := range p.Outputs {
			if n, ok := w[k]; ok {
				sub.m[k] = s.PinOrNew(n)
			} else {
				sub.m[k] = s.c.allocPin()
			}
		}
		cs = append(cs, p.Mount(sub)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// A 32 bits integrator could be created like this:
//
//	integ, err := pdmsim.Chip("Integrator", "clk, rst, in[32]", "out[32]",
//		hwlib.AdderN(32)("a=in, b=out, out=sum"),
//		hwlib.RegisterN(32)("clk=clk, rst=rst, load=true, in=sum, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips.
//
// Chip checks that every wire read by a part is driven by exactly one part
// output, a chip input or a constant, and that every chip output is driven.
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	wr, err := newWiring(ins, outs)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	wires := make([]map[string]string, len(parts))
	for i, p := range parts {
		if p.PartSpec == nil {
			return nil, errors.Errorf("%s: part #%d has no spec", name, i)
		}
		w, err := p.wires()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		for _, k := range p.Inputs {
			if n, ok := w[k]; ok {
				wr.read(n, pinName(p, k))
			}
		}
		for _, k := range p.Outputs {
			if n, ok := w[k]; ok {
				if err := wr.drive(n, pinName(p, k)); err != nil {
					return nil, errors.Wrap(err, name+": "+pinName(p, k)+":"+n)
				}
			}
		}
		wires[i] = w
	}
	if err := wr.check(outs); err != nil {
		return nil, errors.Wrap(err, name)
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts,
		wires,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

func pinName(p Part, pin string) string {
	return p.Name + "." + pin
}
