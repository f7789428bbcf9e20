// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cic

import (
	"github.com/galearn/pdmsim"
	"github.com/galearn/pdmsim/hwlib"
	"github.com/pkg/errors"
)

// Options configures a new Core. A nil *Options is valid and uses the
// defaults: sequential evaluation and zeroed power-on state.
type Options struct {
	// Workers is forwarded to pdmsim.Options.
	Workers int
	// RandomPowerOn starts the core with pseudo-random register content
	// derived from Seed. Only a reset brings it to a known state.
	RandomPowerOn bool
	Seed          int64
}

// Core is an instance of the decimator chip mounted in its own circuit.
// Pin setters only record the new pin state; it is applied to the circuit by
// the next call to Eval.
//
// A Core is not safe for concurrent use.
type Core struct {
	c *pdmsim.Circuit

	clk     bool
	clkLine bool // clock state as seen by the circuit
	rst     bool
	pdmIn   bool
	alpha   uint8
	shift   uint8

	pcmOut   int16
	pcmValid bool
	cycles   int
}

// New returns a new core.
func New(opts *Options) (*Core, error) {
	chip, err := Chip()
	if err != nil {
		return nil, errors.Wrap(err, "build decimator chip")
	}
	var o Options
	if opts != nil {
		o = *opts
	}
	k := new(Core)
	c, err := pdmsim.NewCircuit(&pdmsim.Options{
		Workers:       o.Workers,
		RandomPowerOn: o.RandomPowerOn,
		Seed:          o.Seed,
	},
		hwlib.Input(func() bool { return k.clkLine })("out=clk"),
		hwlib.Input(func() bool { return k.rst })("out=rst"),
		hwlib.Input(func() bool { return k.pdmIn })("out=pdm_in"),
		hwlib.InputN(ConfigBits, func() int64 { return int64(k.alpha) })("out=dc_alpha"),
		hwlib.InputN(ConfigBits, func() int64 { return int64(k.shift) })("out=scale_shift"),
		chip("clk=clk, rst=rst, pdm_in=pdm_in, dc_alpha=dc_alpha, scale_shift=scale_shift, pcm_out=pcm_out, pcm_valid=pcm_valid"),
		hwlib.OutputN(PCMBits, func(v int64) { k.pcmOut = int16(v) })("in=pcm_out"),
		hwlib.Output(func(v bool) { k.pcmValid = v })("in=pcm_valid"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mount decimator chip")
	}
	k.c = c
	return k, nil
}

// SetClk sets the clk pin.
func (k *Core) SetClk(v bool) { k.clk = v }

// SetRst sets the rst pin.
func (k *Core) SetRst(v bool) { k.rst = v }

// SetPDMIn sets the pdm_in pin.
func (k *Core) SetPDMIn(v bool) { k.pdmIn = v }

// SetDCAlpha sets the dc_alpha pins.
func (k *Core) SetDCAlpha(v uint8) { k.alpha = v }

// SetScaleShift sets the scale_shift pins.
func (k *Core) SetScaleShift(v uint8) { k.shift = v }

// PCMOut returns the state of the pcm_out pins after the last Eval.
func (k *Core) PCMOut() int16 { return k.pcmOut }

// PCMValid returns the state of the pcm_valid pin after the last Eval.
func (k *Core) PCMValid() bool { return k.pcmValid }

// Eval applies the current pin states to the circuit and lets it settle.
//
// Evaluation happens in two phases: data and control inputs settle first
// with the clock line held at its previous state, then the clock line is
// updated. Inputs set before a clock edge are therefore stable when the edge
// reaches the registers.
func (k *Core) Eval() {
	k.c.Eval()
	if k.clkLine == k.clk {
		return
	}
	if k.clk {
		k.cycles++
	}
	k.clkLine = k.clk
	k.c.Eval()
}

// Cycles returns the number of rising clock edges applied to the core.
func (k *Core) Cycles() int { return k.cycles }

// Steps returns the number of simulation steps run so far.
func (k *Core) Steps() uint { return k.c.Steps() }

// Close releases the resources held by the underlying circuit.
func (k *Core) Close() error {
	k.c.Dispose()
	return nil
}
