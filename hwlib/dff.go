// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

var dff = pdmsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pClk, pRst, pIn},
	Outputs: []string{pOut},
	Mount: func(s *pdmsim.Socket) []pdmsim.Component {
		clk := edge{pin: s.Pin(pClk)}
		rst, in, out := s.Pin(pRst), s.Pin(pIn), s.Pin(pOut)
		curOut := s.PowerOn(1) != 0
		return []pdmsim.Component{
			func(c *pdmsim.Circuit) {
				if clk.rising(c) {
					curOut = c.Get(in)
				}
				if c.Get(rst) {
					curOut = false
				}
				c.Set(out, curOut)
			}}
	}}

// DFF returns a clocked data flip flop.
//
//	Inputs: clk, rst, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
func DFF(w string) pdmsim.Part {
	return dff.NewPart(w)
}

// RegisterN returns a N-bits register with load enable.
//
//	Inputs: clk, rst, load, in[bits]
//	Outputs: out[bits]
//	Function: if load { out(t) = in(t-1) } else { out(t) = out(t-1) }
func RegisterN(bits int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "Register" + strconv.Itoa(bits),
		Inputs:  pins([]string{pClk, pRst, pLoad}, bus(bits, pIn)),
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			clk := edge{pin: s.Pin(pClk)}
			rst, load := s.Pin(pRst), s.Pin(pLoad)
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			v := s.PowerOn(bits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					if clk.rising(c) && c.Get(load) {
						v = Int64(c, in)
					}
					if c.Get(rst) {
						v = 0
					}
					SetInt64(c, out, v)
				}}
		}}).NewPart
}

// LatchN returns a N-bits transparent latch: the output follows the input
// while load is high and holds its last value while load is low.
//
//	Inputs: load, in[bits]
//	Outputs: out[bits]
//	Function: if load { out = in } else { out = out(t-1) }
func LatchN(bits int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "Latch" + strconv.Itoa(bits),
		Inputs:  pins([]string{pLoad}, bus(bits, pIn)),
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			load := s.Pin(pLoad)
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			v := s.PowerOn(bits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					if c.Get(load) {
						v = Int64(c, in)
					}
					SetInt64(c, out, v)
				}}
		}}).NewPart
}
