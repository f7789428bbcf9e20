// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmsim

import (
	"math/rand"
	"runtime"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

// A Component is a component in a circuit that can Get and Set states.
type Component func(c *Circuit)

// Options configures a new Circuit.
type Options struct {
	// Workers is the number of goroutines used to update the state of the
	// Circuit each step of the simulation. 0 or 1 updates all components
	// sequentially in the calling goroutine. A negative value uses GOMAXPROCS
	// workers.
	Workers int

	// RandomPowerOn fills wires and storage elements with pseudo-random bits
	// derived from Seed instead of zeroes. Used to check that a reset sequence
	// does not depend on power-on content.
	RandomPowerOn bool
	Seed          int64
}

// Circuit is a runnable circuit simulation.
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	count int // wire count
	steps uint
	rnd   *rand.Rand

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts. A nil opts is the
// same as a zero Options.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
func NewCircuit(opts *Options, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	var o Options
	if opts != nil {
		o = *opts
	}

	// new circuit with room for constant value pins.
	cc := &Circuit{count: cstCount}
	if o.RandomPowerOn {
		cc.rnd = rand.New(rand.NewSource(o.Seed))
	}
	wrap, err := Chip("CIRCUIT", "", "", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	ups := wrap("").Mount(newSocket(cc))
	cc.cs = ups
	cc.s0 = make([]bool, cc.count)
	cc.s1 = make([]bool, cc.count)
	if cc.rnd != nil {
		for i := cstCount; i < cc.count; i++ {
			v := cc.rnd.Int63()&1 != 0
			cc.s0[i], cc.s1[i] = v, v
		}
	}
	// init constant pins
	cc.s0[cstTrue] = true
	cc.s1[cstTrue] = true

	workers := o.Workers
	if workers < 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 1 {
		return cc, nil
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	return cc, nil
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// allocPin allocates a pin and returns its number.
func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// powerOn returns the power-on content of a storage element of the given
// bit width.
func (c *Circuit) powerOn(bits int) int64 {
	if c.rnd == nil || bits <= 0 {
		return 0
	}
	v := c.rnd.Int63()
	if bits < 63 {
		v &= 1<<uint(bits) - 1
	}
	return v
}

// Steps returns the value of the step counter.
func (c *Circuit) Steps() uint {
	return c.steps
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Toggle toggles the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Toggle(n int) {
	c.s1[n] = !c.s0[n]
}

// Step advances the simulation by one step. Every component reads the wire
// states of the previous step and writes the states for the next one.
func (c *Circuit) Step() {
	if len(c.wc) == 0 {
		for _, f := range c.cs {
			f(c)
		}
	} else {
		c.wg.Add(len(c.wc))
		for _, wc := range c.wc {
			wc <- struct{}{}
		}
		c.wg.Wait()
	}
	c.steps++
	c.s0, c.s1 = c.s1, c.s0
}

// Eval runs the simulation until no wire changes state from one step to the
// next and returns the number of steps taken.
//
// Eval panics if the circuit does not settle, which happens with unclocked
// feedback loops like a NOT gate wired to itself.
func (c *Circuit) Eval() int {
	limit := 4*len(c.cs) + 4
	for n := 1; ; n++ {
		c.Step()
		if slices.Equal(c.s0, c.s1) {
			return n
		}
		if n >= limit {
			panic(errors.Errorf("circuit did not settle after %d steps", n))
		}
	}
}

// Size returns the component count in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }

// Wires returns the number of wires allocated in the circuit, constants
// included.
func (c *Circuit) Wires() int { return c.count }
