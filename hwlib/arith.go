// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

// AdderN returns a N-bits adder
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b), c = carry out
func AdderN(bits int) pdmsim.NewPartFn {
	adderN := &pdmsim.PartSpec{
		Name:    "Adder" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: append(bus(bits, pOut), "c"),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			a, b := s.Bus(pA, bits), s.Bus(pB, bits)
			out, cout := s.Bus(pOut, bits), s.Pin("c")
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					cc := false
					for i, o := range out {
						va, vb := c.Get(a[i]), c.Get(b[i])
						s0 := va != vb
						s := s0 != cc
						cc = va && vb || s0 && cc
						c.Set(o, s)
					}
					c.Set(cout, cc)
				}}
		}}
	return adderN.NewPart
}

// SubN returns a N-bits subtractor.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = lsb(a - b)
func SubN(bits int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "Sub" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Bus(pOut, bits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					SetInt64(c, out, Int64(c, a)-Int64(c, b))
				}}
		}}).NewPart
}

// Bipolar maps a single bit to a signed bus: +1 for a high input, -1 for a
// low one.
//
//	Inputs: in
//	Outputs: out[bits]
//	Function: if in { out = 1 } else { out = -1 }
func Bipolar(bits int) pdmsim.NewPartFn {
	return (&pdmsim.PartSpec{
		Name:    "Bipolar" + strconv.Itoa(bits),
		Inputs:  []string{pIn},
		Outputs: bus(bits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			in, out := s.Pin(pIn), s.Bus(pOut, bits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					if c.Get(in) {
						SetInt64(c, out, 1)
					} else {
						SetInt64(c, out, -1)
					}
				}}
		}}).NewPart
}

// ShiftSat returns an arithmetic right shifter with output saturation. The
// effective shift amount is base plus the unsigned value of the shift bus.
//
//	Inputs: in[bits], shift[8]
//	Outputs: out[outBits]
//	Function: out = saturate(in >> (base + shift))
func ShiftSat(bits, outBits int, base uint) pdmsim.NewPartFn {
	hi := int64(1)<<uint(outBits-1) - 1
	lo := -hi - 1
	return (&pdmsim.PartSpec{
		Name:    "ShiftSat" + strconv.Itoa(bits) + "x" + strconv.Itoa(outBits),
		Inputs:  pins(bus(bits, pIn), bus(8, pShift)),
		Outputs: bus(outBits, pOut),
		Mount: func(s *pdmsim.Socket) []pdmsim.Component {
			in, shift, out := s.Bus(pIn, bits), s.Bus(pShift, 8), s.Bus(pOut, outBits)
			return []pdmsim.Component{
				func(c *pdmsim.Circuit) {
					SetInt64(c, out, ShiftSaturate(SInt64(c, in), base+uint(Int64(c, shift)), lo, hi))
				}}
		}}).NewPart
}

// ShiftSaturate shifts v right by n bits and clamps the result to [lo, hi].
// Shift amounts of 63 and above yield 0 or -1 depending on the sign of v.
func ShiftSaturate(v int64, n uint, lo, hi int64) int64 {
	if n > 63 {
		n = 63
	}
	v >>= n
	switch {
	case v > hi:
		return hi
	case v < lo:
		return lo
	}
	return v
}

// DCBlockStep computes one output of a fixed point one-pole DC blocking
// filter, modulo 2^bits. alpha is the pole in 1/256 units.
//
//	y = x - x1 + (alpha * y1) >> 8
func DCBlockStep(x, x1, y1, alpha int64, bits int) int64 {
	return wrap(x-x1+(alpha*y1)>>8, bits)
}
