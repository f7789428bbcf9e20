// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"math"
	"testing"
	"testing/quick"

	hw "github.com/galearn/pdmsim"
	hl "github.com/galearn/pdmsim/hwlib"
)

// arith builds a circuit computing op on two 8 bits inputs.
func arith(t *testing.T, op hw.NewPartFn, a, b, out *int64) *hw.Circuit {
	t.Helper()
	c, err := hw.NewCircuit(nil,
		hl.InputN(8, func() int64 { return *a })("out=a"),
		hl.InputN(8, func() int64 { return *b })("out=b"),
		op("a=a, b=b, out=out"),
		hl.OutputN(8, func(v int64) { *out = v })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAdderN(t *testing.T) {
	var a, b, out int64
	c := arith(t, hl.AdderN(8), &a, &b, &out)
	defer c.Dispose()
	f := func(va, vb uint8) bool {
		a, b = int64(va), int64(vb)
		c.Eval()
		return out == int64(va+vb)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}

	// carry out
	var carry bool
	cc, err := hw.NewCircuit(nil,
		hl.AdderN(4)("a=true, b[0]=true, c=c"),
		hl.Output(func(v bool) { carry = v })("in=c"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Dispose()
	cc.Eval()
	if !carry {
		t.Error("expected 15 + 1 to carry out")
	}
}

func TestSubN(t *testing.T) {
	var a, b, out int64
	c := arith(t, hl.SubN(8), &a, &b, &out)
	defer c.Dispose()
	f := func(va, vb uint8) bool {
		a, b = int64(va), int64(vb)
		c.Eval()
		return out == int64(va-vb)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDCBlockStep(t *testing.T) {
	td := []struct {
		x, x1, y1, alpha int64
		bits             int
		y                int64
	}{
		{100, 0, 0, 255, 32, 100},
		{100, 100, 100, 255, 32, 99},
		{100, 100, 100, 0, 32, 0},
		{-100, -100, -100, 128, 32, -50},
		{127, -128, 0, 0, 8, -1},
	}
	for _, d := range td {
		if y := hl.DCBlockStep(d.x, d.x1, d.y1, d.alpha, d.bits); y != d.y {
			t.Errorf("DCBlockStep(%d, %d, %d, %d, %d) = %d, expected %d", d.x, d.x1, d.y1, d.alpha, d.bits, y, d.y)
		}
	}
}

func TestBipolar(t *testing.T) {
	var in bool
	var out int64
	c, err := hw.NewCircuit(nil,
		hl.Input(func() bool { return in })("out=in"),
		hl.Bipolar(8)("in=in, out=out"),
		hl.OutputN(8, func(v int64) { out = v })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.Eval()
	if out != 0xff {
		t.Errorf("low input: expected 0xff (-1), got %#x", out)
	}
	in = true
	c.Eval()
	if out != 1 {
		t.Errorf("high input: expected 1, got %d", out)
	}
}

func TestShiftSaturate(t *testing.T) {
	td := []struct {
		v      int64
		n      uint
		lo, hi int64
		r      int64
	}{
		{262144, 6, math.MinInt16, math.MaxInt16, 4096},
		{-262144, 6, math.MinInt16, math.MaxInt16, -4096},
		{262144, 0, math.MinInt16, math.MaxInt16, math.MaxInt16},
		{-262144, 0, math.MinInt16, math.MaxInt16, math.MinInt16},
		{-1, 8, math.MinInt16, math.MaxInt16, -1},
		{1, 8, math.MinInt16, math.MaxInt16, 0},
		{math.MinInt64, 255, math.MinInt16, math.MaxInt16, -1},
		{math.MaxInt64, 255, math.MinInt16, math.MaxInt16, 0},
	}
	for _, d := range td {
		if r := hl.ShiftSaturate(d.v, d.n, d.lo, d.hi); r != d.r {
			t.Errorf("ShiftSaturate(%d, %d) = %d, expected %d", d.v, d.n, r, d.r)
		}
	}
}

func TestShiftSat(t *testing.T) {
	var in, shift, out int64
	c, err := hw.NewCircuit(nil,
		hl.InputN(32, func() int64 { return in })("out=in"),
		hl.InputN(8, func() int64 { return shift })("out=shift"),
		hl.ShiftSat(32, 16, 6)("in=in, shift=shift, out=out"),
		hl.OutputN(16, func(v int64) { out = v })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	f := func(v int32, s uint8) bool {
		in, shift = int64(v), int64(s)
		c.Eval()
		exp := hl.ShiftSaturate(int64(v), 6+uint(s), math.MinInt16, math.MaxInt16)
		return int16(out) == int16(exp)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
