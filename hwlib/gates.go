// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

var and = pdmsim.PartSpec{
	Name:    "AND",
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Mount: func(s *pdmsim.Socket) []pdmsim.Component {
		a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
		return []pdmsim.Component{
			func(c *pdmsim.Circuit) { c.Set(out, c.Get(a) && c.Get(b)) },
		}
	},
}

// And returns a AND gate. The decimator uses it to gate clock enables.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
func And(w string) pdmsim.Part { return and.NewPart(w) }

// OrNWay returns a N-Way OR gate, typically used as a non-zero detector on a
// bus.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ... || in[n-1]
func OrNWay(ways int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "OR" + strconv.Itoa(ways) + "Way",
		Inputs:  bus(ways, pIn),
		Outputs: []string{pOut},
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			in := s.Bus(pIn, ways)
			out := s.Pin(pOut)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					c.Set(out, Int64(c, in) != 0)
				}}
		}}).NewPart
}
