// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for pdmsim: I/O probes,
// gates, multiplexers, arithmetic and clocked storage. These are the building
// blocks of the CIC decimator in package cic.
//
// Clocked parts have a "clk" input and update their state on its rising
// edge. Their "rst" input is an asynchronous reset: while it is high the
// part's state is held at zero regardless of the clock.
package hwlib

import (
	"strconv"

	"github.com/galearn/pdmsim"
)

// common pin names
const (
	pA     = "a"
	pB     = "b"
	pIn    = "in"
	pSel   = "sel"
	pOut   = "out"
	pClk   = "clk"
	pRst   = "rst"
	pLoad  = "load"
	pShift = "shift"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = n + "[" + strconv.Itoa(j) + "]"
		}
	}
	return b
}

// pins concatenates pin name lists.
func pins(l ...[]string) []string {
	var r []string
	for _, p := range l {
		r = append(r, p...)
	}
	return r
}

// wrap truncates v to a two's complement integer of the given bit width.
func wrap(v int64, bits int) int64 {
	s := uint(64 - bits)
	return v << s >> s
}

// edge tracks a clock pin and reports its rising edges.
type edge struct {
	pin  int
	prev bool
}

func (e *edge) rising(c *pdmsim.Circuit) bool {
	clk := c.Get(e.pin)
	r := clk && !e.prev
	e.prev = clk
	return r
}
