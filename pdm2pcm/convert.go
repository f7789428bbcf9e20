// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pdm2pcm converts a PDM bitstream to PCM samples by driving a
// synchronous decimation core one clock cycle per input bit.
package pdm2pcm

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// DecimationRatio is the number of PDM bits per PCM sample. It is fixed by
// the design of the core.
const DecimationRatio = 64

// ExpectedLength returns the number of PCM samples produced from pdmLength
// PDM bits.
func ExpectedLength(pdmLength int) int {
	return pdmLength / DecimationRatio
}

// A Converter drives a new core for every conversion. The zero value uses
// NewCICCore and does not log.
//
// A Converter is safe for concurrent use as long as NewCore returns
// independent cores.
type Converter struct {
	NewCore NewCoreFn
	Logger  *slog.Logger
}

// Convert converts pdm to PCM samples written to pcm starting at index 0,
// using a default Converter.
func Convert(pdm []uint8, pcm []int16, hpfAlpha, scaleShift uint8) (int, error) {
	var cv Converter
	return cv.Convert(pdm, pcm, hpfAlpha, scaleShift)
}

// Convert feeds every bit of pdm to a freshly reset core and captures the
// samples it flags as valid into pcm. Any non-zero value in pdm is a 1.
//
// It returns the number of samples written, which is always
// ExpectedLength(len(pdm)) on success. The error is ErrBufferTooSmall or
// ErrBufferOverrun (test with errors.Is), a *LengthMismatchError (test with
// errors.As) or an error from the core factory or from closing the core. On
// error, the content of pcm is undefined.
func (cv *Converter) Convert(pdm []uint8, pcm []int16, hpfAlpha, scaleShift uint8) (n int, err error) {
	expected := ExpectedLength(len(pdm))
	if len(pcm) < expected {
		return 0, errors.Wrapf(ErrBufferTooSmall, "capacity %d, need %d", len(pcm), expected)
	}

	newCore := cv.NewCore
	if newCore == nil {
		newCore = NewCICCore
	}
	core, err := newCore()
	if err != nil {
		return 0, errors.Wrap(err, "create core")
	}

	log := cv.logger()
	if c, ok := core.(io.Closer); ok {
		defer func() {
			cerr := c.Close()
			if cerr == nil {
				return
			}
			log.Warn("core close failed", "error", cerr)
			// a conversion error takes precedence
			if err == nil {
				err = errors.Wrap(cerr, "close core")
			}
		}()
	}

	log.Debug("conversion start", "pdm_bits", len(pdm), "capacity", len(pcm), "expected", expected,
		"hpf_alpha", hpfAlpha, "scale_shift", scaleShift)

	n, err = run(core, pdm, pcm, hpfAlpha, scaleShift)
	if err == nil && n != expected {
		err = errors.WithStack(&LengthMismatchError{Expected: expected, Actual: n})
	}
	if err != nil {
		log.Warn("conversion failed", "pdm_bits", len(pdm), "produced", n, "error", err)
		return n, err
	}
	log.Debug("conversion done", "produced", n)
	return n, nil
}

func (cv *Converter) logger() *slog.Logger {
	if cv.Logger != nil {
		return cv.Logger
	}
	return slog.New(discardHandler{})
}

// run configures and resets core, then clocks it once per PDM bit.
func run(core Core, pdm []uint8, pcm []int16, hpfAlpha, scaleShift uint8) (int, error) {
	// configuration must be in place before reset: the core latches it
	// during the reset pulse.
	core.SetDCAlpha(hpfAlpha)
	core.SetScaleShift(scaleShift)

	core.SetRst(false)
	core.Eval()
	core.SetRst(true)
	core.Eval()
	core.SetRst(false)
	core.Eval()

	core.SetClk(false)

	n := 0
	for i, b := range pdm {
		core.SetPDMIn(b != 0)

		core.SetClk(true)
		core.Eval()
		if core.PCMValid() {
			if n == len(pcm) {
				return n, errors.Wrapf(ErrBufferOverrun, "valid sample at pdm bit %d with %d samples already written", i, n)
			}
			pcm[n] = core.PCMOut()
			n++
		}

		core.SetClk(false)
		core.Eval()
	}
	return n, nil
}
