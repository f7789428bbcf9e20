// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions and fakes for testing circuits
// and the code driving them.
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/galearn/pdmsim"
	"github.com/galearn/pdmsim/hwlib"
)

const (
	pinClk = "clk"
	pinRst = "rst"
)

func connString(prefix string, in, out []string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(prefix)
		b.WriteString(n)
	}
	return b.String()
}

// ComparePart takes two parts and compares their outputs given the same
// random inputs over the given number of clock cycles. Both parts must have
// the same Input/Output interface.
//
// If the parts have a "clk" input, it is toggled once per half cycle and
// outputs are compared after each edge. A "rst" input is asserted during the
// first cycle and then randomly one cycle out of 16. All other inputs get
// new random values before each rising edge.
func ComparePart(t *testing.T, cycles int, part1 pdmsim.NewPartFn, part2 pdmsim.NewPartFn) {
	t.Helper()

	const seed = 1
	rnd := rand.New(rand.NewSource(seed))

	ps1, ps2 := part1(""), part2("")

	// compare specs
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))
	clk, rst := -1, -1

	var parts pdmsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		switch n {
		case pinClk:
			clk = i
		case pinRst:
			rst = i
		}
		parts = append(parts, hwlib.Input(func() bool { return inputs[k] })("out="+n))
	}
	for i, o := range ps1.Outputs {
		n := i
		parts = append(parts,
			hwlib.Output(func(b bool) { outputs[n][0] = b })("in=p1_"+o),
			hwlib.Output(func(b bool) { outputs[n][1] = b })("in=p2_"+o))
	}
	parts = append(parts,
		part1(connString("p1_", ps1.Inputs, ps1.Outputs)),
		part2(connString("p2_", ps2.Inputs, ps2.Outputs)))

	c, err := pdmsim.NewCircuit(nil, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	check := func(cycle int, when string) {
		t.Helper()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Inputs, inputs, ps1.Outputs[o], out, cycle, when))
			}
		}
	}

	c.Eval()
	for cycle := 0; cycle < cycles; cycle++ {
		for i := range inputs {
			if i != clk && i != rst {
				inputs[i] = rnd.Int63()&(1<<62) != 0
			}
		}
		if rst >= 0 {
			inputs[rst] = cycle == 0 || rnd.Intn(16) == 0
		}
		c.Eval()
		check(cycle, "input change")
		if clk < 0 {
			continue
		}
		inputs[clk] = true
		c.Eval()
		check(cycle, "rising edge")
		inputs[clk] = false
		c.Eval()
		check(cycle, "falling edge")
	}
	t.Logf("%d components, %d wires. %d steps for %d cycles", c.Size(), c.Wires(), c.Steps(), cycles)
}

func errString(names []string, inputs []bool, oname string, got [2]bool, cycle int, when string) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, inputs[i])
	}
	return fmt.Sprintf("\ncycle %d after %s: %s\nOutput %s: part1=%v, part2=%v", cycle, when, b.String(), oname, got[0], got[1])
}
