// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdm2pcm

import (
	"github.com/galearn/pdmsim/cic"
)

// Core is the pin contract of a synchronous PDM decimation core.
//
// Setters change the state of input pins; changes take effect on the next
// call to Eval. PCMOut and PCMValid report output pins as of the last Eval.
type Core interface {
	SetClk(v bool)
	SetRst(v bool)
	SetPDMIn(v bool)
	SetDCAlpha(v uint8)
	SetScaleShift(v uint8)

	PCMOut() int16
	PCMValid() bool

	// Eval advances the core's combinational and sequential state to reflect
	// the current pin values.
	Eval()
}

// NewCoreFn returns a fresh core instance. It is called once per
// conversion.
type NewCoreFn func() (Core, error)

// NewCICCore is a NewCoreFn returning a pdmsim based CIC decimator with
// default options.
func NewCICCore() (Core, error) {
	return cic.New(nil)
}

var _ Core = (*cic.Core)(nil)
