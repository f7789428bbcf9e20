// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim_test

import (
	"reflect"
	"testing"

	hw "github.com/galearn/pdmsim"
	hl "github.com/galearn/pdmsim/hwlib"
)

// mux4 is a custom 4 bits mux.
type mux4 struct {
	A   [4]int `hw:"in"`     // input bus "a"
	B   [4]int `hw:"in"`     // input bus "b"
	S   int    `hw:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]int `hw:"out"`    // output bus "out"
}

func (m *mux4) Update(c *hw.Circuit) {
	src := m.A
	if c.Get(m.S) {
		src = m.B
	}
	for i, p := range src {
		c.Set(m.Out[i], c.Get(p))
	}
}

// strobe has internal state: out is high for one step after in rises.
type strobe struct {
	In   int `hw:"in"`
	Out  int `hw:"out"`
	prev bool
}

func (s *strobe) Update(c *hw.Circuit) {
	in := c.Get(s.In)
	c.Set(s.Out, in && !s.prev)
	s.prev = in
}

func TestMakePart(t *testing.T) {
	sp := hw.MakePart((*mux4)(nil))
	if sp.Name != "mux4" {
		t.Errorf("expected name mux4, got %q", sp.Name)
	}
	if exp := hw.IO("a[4], b[4], sel"); !reflect.DeepEqual(sp.Inputs, exp) {
		t.Errorf("expected inputs %v, got %v", exp, sp.Inputs)
	}
	if exp := hw.IO("out[4]"); !reflect.DeepEqual(sp.Outputs, exp) {
		t.Errorf("expected outputs %v, got %v", exp, sp.Outputs)
	}

	var a, b, out int64
	var sel bool
	c, err := hw.NewCircuit(nil,
		hl.InputN(4, func() int64 { return a })("out=in_a"),
		hl.InputN(4, func() int64 { return b })("out=in_b"),
		hl.Input(func() bool { return sel })("out=in_sel"),
		sp.NewPart("a=in_a, b=in_b, sel=in_sel, out=mux_out"),
		hl.OutputN(4, func(v int64) { out = v })("in=mux_out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	a, b = 1, 15
	c.Eval()
	if out != 1 {
		t.Errorf("sel=false: expected 1, got %d", out)
	}
	sel = true
	c.Eval()
	if out != 15 {
		t.Errorf("sel=true: expected 15, got %d", out)
	}
}

func TestMakePart_state(t *testing.T) {
	sp := hw.MakePart((*strobe)(nil))
	var in bool
	var o1, o2 []bool
	c, err := hw.NewCircuit(nil,
		hl.Input(func() bool { return in })("out=in"),
		sp.NewPart("in=in, out=o1"),
		sp.NewPart("in=in, out=o2"),
		hl.Output(func(v bool) { o1 = append(o1, v) })("in=o1"),
		hl.Output(func(v bool) { o2 = append(o2, v) })("in=o2"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = true
	for i := 0; i < 4; i++ {
		c.Step()
	}
	// each instance has its own state: both see the same single pulse.
	if !reflect.DeepEqual(o1, o2) {
		t.Errorf("instances differ: %v and %v", o1, o2)
	}
	n := 0
	for _, v := range o1 {
		if v {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected a single pulse, got %v", o1)
	}
}

func TestMakePart_panics(t *testing.T) {
	for _, u := range []hw.Updater{badStruct{}, (*badTagPart)(nil), (*badTypePart)(nil)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%T: expected MakePart to panic", u)
				}
			}()
			hw.MakePart(u)
		}()
	}
}

type badStruct struct{}

func (badStruct) Update(*hw.Circuit) {}

type badTagPart struct {
	In int `hw:"inout"`
}

func (*badTagPart) Update(*hw.Circuit) {}

type badTypePart struct {
	In string `hw:"in"`
}

func (*badTypePart) Update(*hw.Circuit) {}
