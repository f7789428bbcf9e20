// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pdm2pcm converts a packed PDM bitstream file to a 16 bits mono WAV
// file by running it through the simulated decimation core.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/galearn/pdmsim/internal/logging"
	"github.com/galearn/pdmsim/pdm2pcm"
	"github.com/galearn/pdmsim/pdmio"
	"github.com/pkg/errors"
)

var (
	input      = flag.String("i", "", "Path to the input PDM file (packed bits, MSB first)")
	output     = flag.String("o", "", "Path to the output WAV file")
	sampleRate = flag.Int("samplerate", 16000, "PCM sample rate written to the WAV header")
	hpfAlpha   = flag.Uint("hpf-alpha", 0, "DC blocking filter coefficient in 1/256 units, 0 disables the filter")
	scaleShift = flag.Uint("scale-shift", 0, "Extra right shift applied to the output samples")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "both -i and -o are required")
		flag.Usage()
		os.Exit(2)
	}
	if err := run(logger); err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if *hpfAlpha > 255 || *scaleShift > 255 {
		return errors.New("hpf-alpha and scale-shift must fit in a byte")
	}

	f, err := os.Open(*input)
	if err != nil {
		return errors.WithStack(err)
	}
	pdm, err := pdmio.ReadPDM(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Info("loaded", "file", *input, "bits", len(pdm))

	cv := pdm2pcm.Converter{Logger: logger}
	pcm := make([]int16, pdm2pcm.ExpectedLength(len(pdm)))
	n, err := cv.Convert(pdm, pcm, uint8(*hpfAlpha), uint8(*scaleShift))
	if err != nil {
		return err
	}

	out, err := os.Create(*output)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := pdmio.WriteWAV(out, pcm[:n], *sampleRate); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.WithStack(err)
	}
	logger.Info("wrote", "file", *output, "samples", n)
	return nil
}
