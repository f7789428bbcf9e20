// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"math/rand"
	"strconv"
	"testing"

	hw "github.com/galearn/pdmsim"
	hl "github.com/galearn/pdmsim/hwlib"
	"github.com/galearn/pdmsim/hwtest"
)

func TestDFF(t *testing.T) {
	var in, out int64
	var clk, rst bool

	dff4, err := hw.Chip("DFF4", "clk, rst, in[4]", "out[4]",
		hl.DFF("clk=clk, rst=rst, in=in[0], out=out[0]"),
		hl.DFF("clk=clk, rst=rst, in=in[1], out=out[1]"),
		hl.DFF("clk=clk, rst=rst, in=in[2], out=out[2]"),
		hl.DFF("clk=clk, rst=rst, in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	c, err := hw.NewCircuit(nil,
		hl.Input(func() bool { return clk })("out=clk"),
		hl.Input(func() bool { return rst })("out=rst"),
		hl.InputN(4, func() int64 { return in })("out=in"),
		dff4("clk=clk, rst=rst, in=in, out=out"),
		hl.OutputN(4, func(o int64) { out = o })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	var prev int64
	for i := 15; i >= 0; i-- {
		in = int64(i)
		c.Eval()
		if prev != out {
			t.Fatalf("output changed without a clock edge: expected out = %d, got %d", prev, out)
		}
		clk = true
		c.Eval()
		if int64(i) != out {
			t.Fatalf("bad output after rising edge: expected out = %d, got %d", i, out)
		}
		// change input
		in = 0
		clk = false
		c.Eval()
		if int64(i) != out {
			t.Fatalf("bad output after falling edge: expected out = %d, got %d", i, out)
		}
		prev = int64(i)
	}

	// asynchronous reset
	in = 15
	clk = true
	c.Eval()
	rst = true
	c.Eval()
	if out != 0 {
		t.Fatalf("expected out = 0 during reset, got %d", out)
	}
	clk = false
	c.Eval()
	clk = true
	c.Eval()
	if out != 0 {
		t.Fatalf("expected out = 0 while reset is held, got %d", out)
	}
}

func TestRegisterN(t *testing.T) {
	bit, err := hw.Chip("BitReg", "clk, rst, load, in", "out",
		hl.MuxN(1)("a[0]=out, b[0]=in, sel=load, out[0]=muxOut"),
		hl.DFF("clk=clk, rst=rst, in=muxOut, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	reg4, err := hw.Chip("Reg4", "clk, rst, load, in[4]", "out[4]",
		bit("clk=clk, rst=rst, load=load, in=in[0], out=out[0]"),
		bit("clk=clk, rst=rst, load=load, in=in[1], out=out[1]"),
		bit("clk=clk, rst=rst, load=load, in=in[2], out=out[2]"),
		bit("clk=clk, rst=rst, load=load, in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 256, hl.RegisterN(4), reg4)
}

// accumulator adds in to its registered output on every rising edge of clk.
func accumulator(t *testing.T, bits int) hw.NewPartFn {
	t.Helper()
	acc, err := hw.Chip("Accumulator", "clk, rst, in["+strconv.Itoa(bits)+"]", "out["+strconv.Itoa(bits)+"]",
		hl.AdderN(bits)("a=in, b=out, out=sum"),
		hl.RegisterN(bits)("clk=clk, rst=rst, load=true, in=sum, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	return acc
}

func TestLatchN(t *testing.T) {
	var load bool
	var in, out int64
	c, err := hw.NewCircuit(nil,
		hl.Input(func() bool { return load })("out=load"),
		hl.InputN(8, func() int64 { return in })("out=in"),
		hl.LatchN(8)("load=load, in=in, out=out"),
		hl.OutputN(8, func(v int64) { out = v })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	load, in = true, 42
	c.Eval()
	if out != 42 {
		t.Fatalf("expected latch to follow its input, got %d", out)
	}
	in = 7
	c.Eval()
	if out != 7 {
		t.Fatalf("expected latch to follow its input, got %d", out)
	}
	load = false
	c.Eval()
	for i := 0; i < 16; i++ {
		in = rand.Int63n(256)
		c.Eval()
		if out != 7 {
			t.Fatalf("expected latched value 7, got %d", out)
		}
	}
}

// A free running counter whose carry out is registered asserts tc on every
// 2^bits-th edge after reset.
func TestCounter_carry(t *testing.T) {
	var clk, rst, tc bool
	var out int64
	c, err := hw.NewCircuit(nil,
		hl.Input(func() bool { return clk })("out=clk"),
		hl.Input(func() bool { return rst })("out=rst"),
		hl.AdderN(3)("a=cnt, b[0]=true, out=next, c=wrap"),
		hl.RegisterN(3)("clk=clk, rst=rst, load=true, in=next, out=cnt"),
		hl.DFF("clk=clk, rst=rst, in=wrap, out=tc"),
		hl.OutputN(3, func(v int64) { out = v })("in=cnt"),
		hl.Output(func(v bool) { tc = v })("in=tc"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	rst = true
	c.Eval()
	rst = false
	c.Eval()
	if out != 0 || tc {
		t.Fatalf("after reset: expected out = 0, tc = false, got %d, %v", out, tc)
	}
	for edge := 1; edge <= 40; edge++ {
		clk = true
		c.Eval()
		if exp := int64(edge % 8); out != exp {
			t.Fatalf("edge %d: expected out = %d, got %d", edge, exp, out)
		}
		if exp := edge%8 == 0; tc != exp {
			t.Fatalf("edge %d: expected tc = %v, got %v", edge, exp, tc)
		}
		clk = false
		c.Eval()
		if exp := edge%8 == 0; tc != exp {
			t.Fatalf("edge %d, falling: expected tc = %v, got %v", edge, exp, tc)
		}
	}
}

func TestRandomPowerOn(t *testing.T) {
	var clk, rst bool
	var out int64
	for seed := int64(1); seed <= 8; seed++ {
		clk, rst = false, false
		c, err := hw.NewCircuit(&hw.Options{RandomPowerOn: true, Seed: seed},
			hl.Input(func() bool { return clk })("out=clk"),
			hl.Input(func() bool { return rst })("out=rst"),
			accumulator(t, 16)("clk=clk, rst=rst, in=true, out=acc"),
			hl.OutputN(16, func(v int64) { out = v })("in=acc"),
		)
		if err != nil {
			t.Fatal(err)
		}
		c.Eval()
		rst = true
		c.Eval()
		rst = false
		c.Eval()
		if out != 0 {
			t.Errorf("seed %d: expected 0 after reset, got %d", seed, out)
		}
		// in=true on every bit is -1.
		for i := 1; i <= 4; i++ {
			clk = true
			c.Eval()
			clk = false
			c.Eval()
			if exp := int64(-i) & 0xffff; out != exp {
				t.Errorf("seed %d, edge %d: expected %#x, got %#x", seed, i, exp, out)
			}
		}
		c.Dispose()
	}
}
