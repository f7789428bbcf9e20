// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

// Int64 returns the pins as an unsigned int64. Pin 0 is lsb.
func Int64(c *pdmsim.Circuit, pins []int) int64 {
	var out int64
	for bit := range pins {
		if c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SInt64 returns the pins as a two's complement signed integer. Pin 0 is lsb.
func SInt64(c *pdmsim.Circuit, pins []int) int64 {
	return wrap(Int64(c, pins), len(pins))
}

// SetInt64 sets the pins to the given int64 value. Bits that do not fit are
// discarded.
func SetInt64(c *pdmsim.Circuit, pins []int, v int64) {
	for bit := range pins {
		c.Set(pins[bit], v&(1<<uint(bit)) != 0)
	}
}

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
func Input(f func() bool) pdmsim.NewPartFn {
	p := &pdmsim.PartSpec{
		Name:    "Input",
		Inputs:  nil,
		Outputs: []string{pOut},
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			pin := s.Pin(pOut)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					c.Set(pin, f())
				},
			}
		},
	}
	return p.NewPart
}

// Output creates an output or probe. The fn function is
// called with the named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
func Output(f func(bool)) pdmsim.NewPartFn {
	p := &pdmsim.PartSpec{
		Name:    "Output",
		Inputs:  []string{pIn},
		Outputs: nil,
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			in := s.Pin(pIn)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) { f(c.Get(in)) },
			}
		},
	}
	return p.NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
func InputN(bits int, f func() int64) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Inputs:  nil,
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			pins := s.Bus(pOut, bits)
			return []pdmsim.Component{func(c *pdmsim.Circuit) {
				SetInt64(c, pins, f())
			}}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size. f receives the
// unsigned value of the bus.
//
//	Inputs: in[bits]
//	Function: f(in)
func OutputN(bits int, f func(int64)) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "OUTPUT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: nil,
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			pins := s.Bus(pIn, bits)
			return []pdmsim.Component{func(c *pdmsim.Circuit) {
				f(Int64(c, pins))
			}}
		}}).NewPart
}
