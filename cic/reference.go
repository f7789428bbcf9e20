// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cic

import (
	"github.com/galearn/pdmsim/hwlib"
)

// Reference is a software model of the decimator chip producing the same
// samples, bit for bit, as a freshly reset Core clocked with the same input.
// It runs orders of magnitude faster than the circuit and is used as a
// golden model.
type Reference struct {
	alpha int64
	shift uint8

	integ [Stages]int64
	delay [Stages]int64 // comb delay registers
	x1    int64
	y1    int64
	phase int64
	tc    bool
}

// NewReference returns a model configured with the given dc_alpha and
// scale_shift values.
func NewReference(alpha, shift uint8) *Reference {
	return &Reference{alpha: int64(alpha), shift: shift}
}

func wrap(v int64) int64 {
	return v << (64 - RegisterBits) >> (64 - RegisterBits)
}

// combs returns the outputs of the comb stages and of the DC blocker for the
// current register state.
func (r *Reference) combs() (c [Stages]int64, hp int64) {
	x := r.integ[Stages-1]
	for i := range c {
		c[i] = wrap(x - r.delay[i])
		x = c[i]
	}
	return c, hwlib.DCBlockStep(x, r.x1, r.y1, r.alpha, RegisterBits)
}

// Push clocks one PDM bit into the model and returns the sample presented on
// pcm_out along with the state of pcm_valid for that cycle.
func (r *Reference) Push(bit uint8) (int16, bool) {
	// all registers sample their inputs at the same time; decimated stages
	// latch on the edge following a valid cycle.
	if r.tc {
		c, hp := r.combs()
		r.delay[0] = r.integ[Stages-1]
		for i := 1; i < Stages; i++ {
			r.delay[i] = c[i-1]
		}
		r.x1, r.y1 = c[Stages-1], hp
	}
	x := int64(-1)
	if bit != 0 {
		x = 1
	}
	for i := Stages - 1; i > 0; i-- {
		r.integ[i] = wrap(r.integ[i] + r.integ[i-1])
	}
	r.integ[0] = wrap(r.integ[0] + x)
	r.phase = (r.phase + 1) & (Ratio - 1)
	r.tc = r.phase == 0

	if !r.tc {
		return 0, false
	}
	c, hp := r.combs()
	y := c[Stages-1]
	if r.alpha != 0 {
		y = hp
	}
	return int16(hwlib.ShiftSaturate(y, OutputShift+uint(r.shift), -1<<(PCMBits-1), 1<<(PCMBits-1)-1)), true
}

// Process runs the model over a PDM bit sequence and returns the valid
// samples.
func (r *Reference) Process(pdm []uint8) []int16 {
	out := make([]int16, 0, len(pdm)/Ratio)
	for _, b := range pdm {
		if s, ok := r.Push(b); ok {
			out = append(out, s)
		}
	}
	return out
}
