// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// wires resolves the connections of a part to a map of part pin names to
// wire names in the host chip, expanding bus ranges.
func (p Part) wires() (map[string]string, error) {
	pins := make(map[string]bool, len(p.Inputs)+len(p.Outputs))
	buses := make(map[string]int)
	for _, l := range [][]string{p.Inputs, p.Outputs} {
		for _, n := range l {
			pins[n] = true
			if bus, _, ok := strings.Cut(n, "["); ok {
				buses[bus]++
			}
		}
	}

	r := make(map[string]string)
	for _, c := range p.Conns {
		pps, err := expandRange(c.PP)
		if err != nil {
			return nil, err
		}
		if len(pps) == 1 && !pins[pps[0]] {
			// whole bus
			if w, ok := buses[pps[0]]; ok {
				pps = busPins(pps[0], w)
			}
		}
		for _, pp := range pps {
			if !pins[pp] {
				return nil, errors.New("invalid pin name " + pp + " for part " + p.Name)
			}
		}
		cps, err := expandRange(c.CP)
		if err != nil {
			return nil, err
		}
		switch {
		case len(cps) == len(pps):
		case len(cps) == 1 && (cps[0] == True || cps[0] == False):
			for len(cps) < len(pps) {
				cps = append(cps, cps[0])
			}
		case len(cps) == 1 && !strings.ContainsRune(c.CP, '['):
			cps = busPins(cps[0], len(pps))
		default:
			return nil, errors.New("pin count mismatch in pin mapping: " + c.PP + "=" + c.CP)
		}
		for i, pp := range pps {
			if _, ok := r[pp]; ok {
				return nil, errors.New("pin " + pp + " of part " + p.Name + " connected more than once")
			}
			r[pp] = cps[i]
		}
	}
	return r, nil
}

func busPins(name string, bits int) []string {
	r := make([]string, bits)
	for i := range r {
		r[i] = BusPinName(name, i)
	}
	return r
}

// wiring tracks drivers and readers of the wires in a chip.
type wiring struct {
	inputs  map[string]bool
	drivers map[string]string
	readers map[string][]string
}

func newWiring(ins, outs []string) (*wiring, error) {
	wr := &wiring{
		inputs:  make(map[string]bool, len(ins)),
		drivers: make(map[string]string),
		readers: make(map[string][]string),
	}
	seen := make(map[string]bool, len(ins)+len(outs))
	for _, l := range [][]string{ins, outs} {
		for _, n := range l {
			if n == True || n == False {
				return nil, errors.New("constant " + n + " used as a chip pin name")
			}
			if seen[n] {
				return nil, errors.New("duplicate chip pin name " + n)
			}
			seen[n] = true
		}
	}
	for _, n := range ins {
		wr.inputs[n] = true
		wr.drivers[n] = "chip input"
	}
	wr.drivers[True] = "constant"
	wr.drivers[False] = "constant"
	return wr, nil
}

func (wr *wiring) read(wire string, pin string) {
	wr.readers[wire] = append(wr.readers[wire], pin)
}

func (wr *wiring) drive(wire string, pin string) error {
	switch {
	case wire == True || wire == False:
		return errors.New("output pin connected to constant " + wire + " input")
	case wr.inputs[wire]:
		return errors.New("chip input pin used as output")
	case wr.drivers[wire] != "":
		return errors.New("output pin already used as output by " + wr.drivers[wire])
	}
	wr.drivers[wire] = pin
	return nil
}

func (wr *wiring) check(outs []string) error {
	var undriven []string
	for w := range wr.readers {
		if wr.drivers[w] == "" {
			undriven = append(undriven, w)
		}
	}
	if len(undriven) > 0 {
		sort.Strings(undriven)
		w := undriven[0]
		return errors.New("pin " + wr.readers[w][0] + " connected to " + w + " which is not connected to any output")
	}
	for _, o := range outs {
		if wr.drivers[o] == "" {
			return errors.New("chip output " + o + " not connected to any part output")
		}
	}
	return nil
}
