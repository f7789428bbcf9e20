// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdm2pcm

import (
	"strconv"

	"github.com/pkg/errors"
)

// Conversion errors.
//
// All of them are fatal to the conversion. After an error, the content of
// the PCM buffer is undefined.
var (
	// ErrBufferTooSmall is returned before any core interaction when the
	// output buffer cannot hold len(pdm)/DecimationRatio samples.
	ErrBufferTooSmall = errors.New("pcm buffer too small")

	// ErrBufferOverrun is returned as soon as the core presents a valid
	// sample while the output buffer is already full.
	ErrBufferOverrun = errors.New("pcm buffer overrun")
)

// LengthMismatchError is returned when the number of samples produced by the
// core differs from the number expected from the decimation ratio.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return "pcm length mismatch: expected " + strconv.Itoa(e.Expected) + " samples, got " + strconv.Itoa(e.Actual)
}
