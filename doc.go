// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package pdmsim provides a naive cycle-based hardware simulator and an API to
compose basic components (gates, registers, accumulators, etc.) into more
complex chips.

It is used to model the synchronous PDM to PCM decimation core found in
package cic. That core is then driven pin by pin by package pdm2pcm, the
same way a test bench drives a Verilog model.

Parts are described by a PartSpec listing their input and output pins and a
MountFn that returns the Components updating the circuit. Parts are composed
into chips with Chip, and a set of parts is turned into a runnable circuit
with NewCircuit.

There is no global clock: clocked parts watch an explicit "clk" input pin and
react to its rising edge. Callers drive the clock like any other input and
call Circuit.Eval to let the circuit settle.
*/
package pdmsim
