// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strconv"
)

// Pin operation names recorded by ScriptedCore.
const (
	OpClk        = "clk"
	OpRst        = "rst"
	OpPDMIn      = "pdm_in"
	OpDCAlpha    = "dc_alpha"
	OpScaleShift = "scale_shift"
	OpEval       = "eval"
)

// Op is a pin operation performed on a ScriptedCore. Eval operations have
// a zero Value.
type Op struct {
	Pin   string
	Value int
}

func (o Op) String() string {
	if o.Pin == OpEval {
		return o.Pin
	}
	return o.Pin + "=" + strconv.Itoa(o.Value)
}

// ScriptedCore is a fake decimation core. It asserts pcm_valid on the rising
// edges selected by ValidAt and records every pin operation.
//
// Rising edges are counted from 1 after each complete reset pulse (rst
// evaluated low, high, then low). A rising edge evaluated before a complete
// reset pulse is counted in Unreset.
type ScriptedCore struct {
	// ValidAt reports whether pcm_valid is asserted on the given rising edge.
	// If nil, the core asserts pcm_valid on every 64th edge.
	ValidAt func(cycle int) bool
	// Sample returns the value presented on pcm_out for the n-th valid
	// sample, counting from 0. If nil, the sample number is used.
	Sample func(n int) int16
	// CloseErr is returned by Close.
	CloseErr error

	Ops     []Op
	Cycles  int // rising edges since the last reset pulse
	Resets  int // complete reset pulses
	Unreset int // rising edges seen without a preceding reset pulse
	Closed  bool

	clk, rst, pdmIn bool
	alpha, shift    uint8

	evalClk bool // clk at the previous Eval
	pulse   int  // reset pulse progress
	valid   bool
	out     int16
	samples int
}

// Every returns a ValidAt function asserting pcm_valid every period edges,
// at most limit times. A negative limit means no limit.
func Every(period, limit int) func(int) bool {
	return func(cycle int) bool {
		if cycle%period != 0 {
			return false
		}
		return limit < 0 || cycle/period <= limit
	}
}

func (k *ScriptedCore) record(pin string, v int) { k.Ops = append(k.Ops, Op{pin, v}) }

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SetClk implements pdm2pcm.Core.
func (k *ScriptedCore) SetClk(v bool) { k.clk = v; k.record(OpClk, b2i(v)) }

// SetRst implements pdm2pcm.Core.
func (k *ScriptedCore) SetRst(v bool) { k.rst = v; k.record(OpRst, b2i(v)) }

// SetPDMIn implements pdm2pcm.Core.
func (k *ScriptedCore) SetPDMIn(v bool) { k.pdmIn = v; k.record(OpPDMIn, b2i(v)) }

// SetDCAlpha implements pdm2pcm.Core.
func (k *ScriptedCore) SetDCAlpha(v uint8) { k.alpha = v; k.record(OpDCAlpha, int(v)) }

// SetScaleShift implements pdm2pcm.Core.
func (k *ScriptedCore) SetScaleShift(v uint8) { k.shift = v; k.record(OpScaleShift, int(v)) }

// PCMOut implements pdm2pcm.Core.
func (k *ScriptedCore) PCMOut() int16 { return k.out }

// PCMValid implements pdm2pcm.Core.
func (k *ScriptedCore) PCMValid() bool { return k.valid }

// Eval implements pdm2pcm.Core.
func (k *ScriptedCore) Eval() {
	k.record(OpEval, 0)

	// reset pulse tracking: low, high, low.
	switch {
	case !k.rst && k.pulse == 2:
		k.pulse = 1
		k.Resets++
		k.Cycles = 0
		k.samples = 0
		k.valid = false
	case !k.rst:
		k.pulse = 1
	case k.pulse >= 1:
		k.pulse = 2
	}
	if k.rst {
		k.valid = false
		k.evalClk = k.clk
		return
	}

	rising := k.clk && !k.evalClk
	k.evalClk = k.clk
	if !rising {
		return
	}
	if k.Resets == 0 {
		k.Unreset++
	}
	k.Cycles++
	validAt := k.ValidAt
	if validAt == nil {
		validAt = Every(64, -1)
	}
	k.valid = validAt(k.Cycles)
	if k.valid {
		if k.Sample != nil {
			k.out = k.Sample(k.samples)
		} else {
			k.out = int16(k.samples)
		}
		k.samples++
	}
}

// Close records that the core was released.
func (k *ScriptedCore) Close() error {
	k.Closed = true
	return k.CloseErr
}

// Count returns the number of recorded operations on the given pin.
func (k *ScriptedCore) Count(pin string) int {
	n := 0
	for _, o := range k.Ops {
		if o.Pin == pin {
			n++
		}
	}
	return n
}
