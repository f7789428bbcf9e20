// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BusPinName returns the name of the i-th pin of a bus.
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// IO parses an input/output pin specification string and returns individual
// pin names, expanding bus declarations to individual pin names.
// For example:
//
//	IO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
// IO panics if the specification is malformed.
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseIOSpec is like IO but returns an error instead of panicking.
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		name, idx, ok := strings.Cut(item, "[")
		if !isIdent(name) {
			return nil, parseError(spec, item, "expected pin name")
		}
		if !ok {
			out = append(out, name)
			continue
		}
		if !strings.HasSuffix(idx, "]") {
			return nil, parseError(spec, item, "missing close bracket")
		}
		cnt, err := strconv.Atoi(idx[:len(idx)-1])
		if err != nil || cnt <= 0 {
			return nil, parseError(spec, item, "invalid bus size")
		}
		for i := 0; i < cnt; i++ {
			out = append(out, BusPinName(name, i))
		}
	}
	return out, nil
}

// A Connection connects a part's pin (or pin range) PP to a pin (or pin
// range) CP in its container.
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection configuration like
// "partPinA=chipPinX, partPinB=chipPinY". Pin names may designate a single
// bus pin like "in[3]" or a range like "in[0..3]".
//
// A bus pin name without brackets on the left hand side designates the
// whole bus: if "out" is a 16 bits bus of a part, "out=pcm" is the same as
// "out[0..15]=pcm[0..15]".
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	if strings.TrimSpace(c) == "" {
		return nil, nil
	}
	for _, item := range strings.Split(c, ",") {
		item = strings.TrimSpace(item)
		pp, cp, ok := strings.Cut(item, "=")
		if !ok {
			return nil, parseError(c, item, "expected '='")
		}
		pp, cp = strings.TrimSpace(pp), strings.TrimSpace(cp)
		if _, err := expandRange(pp); err != nil {
			return nil, parseError(c, item, err.Error())
		}
		if _, err := expandRange(cp); err != nil {
			return nil, parseError(c, item, err.Error())
		}
		conns = append(conns, Connection{PP: pp, CP: cp})
	}
	return conns, nil
}

// expandRange expands "bus[0..3]" to its individual pin names. Single pin
// names and single bus pins are returned as is.
func expandRange(name string) ([]string, error) {
	bus, n, ok := strings.Cut(name, "[")
	if !isIdent(bus) {
		return nil, errors.New("invalid pin name " + strconv.Quote(name))
	}
	if !ok {
		return []string{name}, nil
	}
	if !strings.HasSuffix(n, "]") {
		return nil, errors.New("no terminating ] in " + strconv.Quote(name))
	}
	n = n[:len(n)-1]
	from, to, isRange := strings.Cut(n, "..")
	start, err := strconv.Atoi(from)
	if err != nil || start < 0 {
		return nil, errors.New("invalid bus index in " + strconv.Quote(name))
	}
	if !isRange {
		return []string{BusPinName(bus, start)}, nil
	}
	end, err := strconv.Atoi(to)
	if err != nil || end < start {
		return nil, errors.New("invalid bus range in " + strconv.Quote(name))
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func parseError(in, item string, msg string) error {
	return errors.Errorf("in %q at %q: %s", in, item, msg)
}
