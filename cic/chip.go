// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cic implements a synchronous PDM to PCM decimation core as a
// pdmsim circuit: a 3 stage CIC decimator with a ratio of 64, an optional
// DC blocking high-pass filter and an output scale/shift stage.
//
// The core is exposed through a pin level API (Core) meant to be driven
// cycle by cycle, like a Verilog model under a test bench.
package cic

import (
	"strconv"
	"sync"

	"github.com/galearn/pdmsim"
	"github.com/galearn/pdmsim/hwlib"
)

// Core parameters.
const (
	Stages    = 3
	Ratio     = 64
	PhaseBits = 6 // log2(Ratio)

	// RegisterBits is the width of the integrator and comb registers. The
	// filter gain is Ratio^Stages = 2^18, so 32 bits leave plenty of headroom
	// for modulo arithmetic.
	RegisterBits = 32

	// OutputShift scales the filter output so that a full scale PDM input
	// yields +/- 4096 (Q12) with a zero scale_shift.
	OutputShift = 6

	ConfigBits = 8
	PCMBits    = 16
)

// Pin names of the core.
const (
	PinClk        = "clk"
	PinRst        = "rst"
	PinPDMIn      = "pdm_in"
	PinDCAlpha    = "dc_alpha"
	PinScaleShift = "scale_shift"
	PinPCMOut     = "pcm_out"
	PinPCMValid   = "pcm_valid"
)

var (
	chipOnce sync.Once
	chipFn   pdmsim.NewPartFn
	chipErr  error
)

// Chip returns the decimator chip.
//
//	Inputs: clk, rst, pdm_in, dc_alpha[8], scale_shift[8]
//	Outputs: pcm_out[16], pcm_valid
//
// dc_alpha and scale_shift are latched while rst is high and held for as long
// as rst stays low. pcm_valid is high for one cycle on every 64th rising edge
// of clk after a reset and pcm_out holds the new sample during that cycle.
func Chip() (pdmsim.NewPartFn, error) {
	chipOnce.Do(func() {
		chipFn, chipErr = buildChip()
	})
	return chipFn, chipErr
}

func buildChip() (pdmsim.NewPartFn, error) {
	regBits := strconv.Itoa(RegisterBits)

	// integrator stage: out(t) = out(t-1) + in(t-1), modulo 2^RegisterBits.
	integ, err := pdmsim.Chip("Integrator", "clk, rst, in["+regBits+"]", "out["+regBits+"]",
		hwlib.AdderN(RegisterBits)("a=in, b=out, out=sum"),
		hwlib.RegisterN(RegisterBits)("clk=clk, rst=rst, load=true, in=sum, out=out"),
	)
	if err != nil {
		return nil, err
	}
	// comb stage: out = in - d, d samples in on enabled edges.
	comb, err := pdmsim.Chip("Comb", "clk, rst, en, in["+regBits+"]", "out["+regBits+"]",
		hwlib.RegisterN(RegisterBits)("clk=clk, rst=rst, load=en, in=in, out=d"),
		hwlib.SubN(RegisterBits)("a=in, b=d, out=out"),
	)
	if err != nil {
		return nil, err
	}
	// decimation phase: pcm_valid is registered so that it rises on the edge
	// where the phase wraps around to 0.
	phase, err := pdmsim.Chip("Phase", "clk, rst", "valid",
		hwlib.AdderN(PhaseBits)("a=phase, b[0]=true, out=next, c=wrap"),
		hwlib.RegisterN(PhaseBits)("clk=clk, rst=rst, load=true, in=next, out=phase"),
		hwlib.DFF("clk=clk, rst=rst, in=wrap, out=valid"),
	)
	if err != nil {
		return nil, err
	}
	// DC blocker: x1 and y1 only load at the PCM rate when the filter is
	// on. A zero alpha bypasses the filter.
	dcBlock, err := pdmsim.Chip("DCBlock", "clk, rst, en, in["+regBits+"], alpha[8]", "out["+regBits+"]",
		hwlib.OrNWay(ConfigBits)("in=alpha, out=on"),
		hwlib.And("a=en, b=on, out=load"),
		hwlib.RegisterN(RegisterBits)("clk=clk, rst=rst, load=load, in=in, out=x1"),
		hwlib.RegisterN(RegisterBits)("clk=clk, rst=rst, load=load, in=hp, out=y1"),
		dcStepSpec.NewPart("in=in, x1=x1, y1=y1, alpha=alpha, out=hp"),
		hwlib.MuxN(RegisterBits)("a=in, b=hp, sel=on, out=out"),
	)
	if err != nil {
		return nil, err
	}

	return pdmsim.Chip("CIC3PDM",
		"clk, rst, pdm_in, dc_alpha[8], scale_shift[8]",
		"pcm_out[16], pcm_valid",
		// configuration, latched during reset
		hwlib.LatchN(ConfigBits)("load=rst, in=dc_alpha, out=alpha"),
		hwlib.LatchN(ConfigBits)("load=rst, in=scale_shift, out=shift"),
		// integrators, at the PDM rate
		hwlib.Bipolar(RegisterBits)("in=pdm_in, out=x"),
		integ("clk=clk, rst=rst, in=x, out=i1"),
		integ("clk=clk, rst=rst, in=i1, out=i2"),
		integ("clk=clk, rst=rst, in=i2, out=i3"),
		// decimation
		phase("clk=clk, rst=rst, valid=pcm_valid"),
		// combs, at the PCM rate
		comb("clk=clk, rst=rst, en=pcm_valid, in=i3, out=c1"),
		comb("clk=clk, rst=rst, en=pcm_valid, in=c1, out=c2"),
		comb("clk=clk, rst=rst, en=pcm_valid, in=c2, out=c3"),
		dcBlock("clk=clk, rst=rst, en=pcm_valid, in=c3, alpha=alpha, out=y"),
		// output stage
		hwlib.ShiftSat(RegisterBits, PCMBits, OutputShift)("in=y, shift=shift, out=pcm_out"),
	)
}
