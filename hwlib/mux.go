// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

// MuxN returns a bus multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel { out = b } else { out = a }
func MuxN(bits int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "Mux" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			a, b, sel := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pSel)
			out := s.Bus(pOut, bits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					src := a
					if c.Get(sel) {
						src = b
					}
					for i, p := range src {
						c.Set(out[i], c.Get(p))
					}
				}}
		}}).NewPart
}
