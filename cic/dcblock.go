// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cic

import (
	"github.com/galearn/pdmsim"
	"github.com/galearn/pdmsim/hwlib"
)

// dcStep is the combinational part of the DC blocker. Its state, the previous
// input x1 and output y1, lives in registers outside the part.
type dcStep struct {
	In    [RegisterBits]int `hw:"in"`
	X1    [RegisterBits]int `hw:"in"`
	Y1    [RegisterBits]int `hw:"in"`
	Alpha [ConfigBits]int   `hw:"in"`
	Out   [RegisterBits]int `hw:"out"`
}

// Update implements pdmsim.Updater.
func (d *dcStep) Update(c *pdmsim.Circuit) {
	y := hwlib.DCBlockStep(
		hwlib.SInt64(c, d.In[:]),
		hwlib.SInt64(c, d.X1[:]),
		hwlib.SInt64(c, d.Y1[:]),
		hwlib.Int64(c, d.Alpha[:]),
		RegisterBits)
	hwlib.SetInt64(c, d.Out[:], y)
}

var dcStepSpec = pdmsim.MakePart((*dcStep)(nil))
