// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sigmadelta converts PCM audio to PDM bitstreams with first and
// second order delta-sigma modulators, and generates test signals.
//
// It produces stimulus for the decimation core: a full scale PCM input of
// +/-1.0 maps to a PDM stream of all ones or all zeroes.
package sigmadelta

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// FirstOrder modulates pcm, one output bit per input sample.
func FirstOrder(pcm []float64) []uint8 {
	pdm := make([]uint8, len(pcm))
	var integ, q float64
	for i, x := range pcm {
		integ += x - q
		if integ >= 0 {
			q = 1
			pdm[i] = 1
		} else {
			q = -1
		}
	}
	return pdm
}

// SecondOrder modulates pcm, one output bit per input sample.
func SecondOrder(pcm []float64) []uint8 {
	pdm := make([]uint8, len(pcm))
	var i1, i2, q float64
	for i, x := range pcm {
		i1 += x - q
		i2 += i1 - q
		if i2 >= 0 {
			q = 1
			pdm[i] = 1
		} else {
			q = -1
		}
	}
	return pdm
}

// Modulate repeats every PCM sample oversample times and modulates the
// result with a modulator of the given order (1 or 2).
func Modulate(pcm []float64, oversample, order int) ([]uint8, error) {
	if oversample <= 0 {
		return nil, errors.Errorf("invalid oversampling ratio %d", oversample)
	}
	up := make([]float64, 0, len(pcm)*oversample)
	for _, x := range pcm {
		for j := 0; j < oversample; j++ {
			up = append(up, x)
		}
	}
	switch order {
	case 1:
		return FirstOrder(up), nil
	case 2:
		return SecondOrder(up), nil
	}
	return nil, errors.Errorf("unsupported modulator order %d", order)
}

// Tone returns duration seconds of the sum of sine waves of the given
// frequencies, sampled at sampleRate. The sum is divided by the number of
// frequencies so that the peak amplitude of the tone never exceeds amplitude.
//
// If noise is not zero, white gaussian noise with a standard deviation of
// noise is added to every sample. The noise is drawn from rnd, or from the
// default source of math/rand if rnd is nil.
func Tone(sampleRate int, duration, amplitude, noise float64, rnd *rand.Rand, freqs ...float64) []float64 {
	n := int(float64(sampleRate) * duration)
	if n <= 0 || len(freqs) == 0 {
		return nil
	}
	sig := make([]float64, n)
	for _, f := range freqs {
		w := 2 * math.Pi * f / float64(sampleRate)
		for i := range sig {
			sig[i] += amplitude * math.Sin(w*float64(i))
		}
	}
	for i := range sig {
		sig[i] /= float64(len(freqs))
	}
	if noise == 0 {
		return sig
	}
	norm := rand.NormFloat64
	if rnd != nil {
		norm = rnd.NormFloat64
	}
	for i := range sig {
		sig[i] += noise * norm()
	}
	return sig
}

// ToPCM16 converts samples in the range [-1, 1] to 16 bits PCM. Out of range
// samples are clipped.
func ToPCM16(sig []float64) []int16 {
	pcm := make([]int16, len(sig))
	for i, x := range sig {
		pcm[i] = int16(math.Round(math.Max(-1, math.Min(1, x)) * math.MaxInt16))
	}
	return pcm
}
