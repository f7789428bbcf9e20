// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pcm2pdm converts the first channel of a WAV file to a packed PDM
// bitstream with a delta-sigma modulator.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/galearn/pdmsim/internal/logging"
	"github.com/galearn/pdmsim/pdmio"
	"github.com/galearn/pdmsim/sigmadelta"
	"github.com/pkg/errors"
)

var (
	input      = flag.String("i", "", "Path to the input WAV file")
	output     = flag.String("o", "", "Path to the output PDM file")
	oversample = flag.Int("oversample", 64, "PDM bits per PCM sample")
	order      = flag.Int("order", 2, "Delta-sigma modulator order (1 or 2)")
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
	f, err := os.Open(*input)
	if err != nil {
		return errors.WithStack(err)
	}
	pcm, sr, err := pdmio.ReadWAV(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Info("loaded", "file", *input, "samples", len(pcm), "samplerate", sr)

	pdm, err := sigmadelta.Modulate(pcm, *oversample, *order)
	if err != nil {
		return err
	}

	out, err := os.Create(*output)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := pdmio.WritePDM(out, pdm); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.WithStack(err)
	}
	logger.Info("wrote", "file", *output, "bits", len(pdm))
	return nil
}
