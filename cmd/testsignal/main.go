// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command testsignal writes a mono 16 bits WAV file holding a sum of sine
// waves with optional white noise, to be fed to pcm2pdm.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/galearn/pdmsim/internal/logging"
	"github.com/galearn/pdmsim/pdmio"
	"github.com/galearn/pdmsim/sigmadelta"
	"github.com/pkg/errors"
)

var (
	output     = flag.String("o", "test_tone.wav", "Path to the output WAV file")
	sampleRate = flag.Int("samplerate", 16000, "Sample rate in Hz")
	duration   = flag.Float64("duration", 5, "Duration in seconds")
	amplitude  = flag.Float64("amplitude", 0.5, "Peak amplitude of the tone, full scale is 1")
	noise      = flag.Float64("noise", 0.01, "Standard deviation of the white noise, 0 for none")
	seed       = flag.Int64("seed", 0, "Noise seed, 0 for a time based seed")
	freqList   = flag.String("freqs", "1000,440", "Comma separated list of tone frequencies in Hz")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	freqs, err := parseFreqs(*freqList)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if err := run(logger, freqs); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func parseFreqs(s string) ([]float64, error) {
	var freqs []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v <= 0 {
			return nil, errors.Errorf("invalid frequency %q", f)
		}
		freqs = append(freqs, v)
	}
	if len(freqs) == 0 {
		return nil, errors.New("no frequency given")
	}
	return freqs, nil
}

func run(logger *slog.Logger, freqs []float64) error {
	if *sampleRate <= 0 || *duration <= 0 {
		return errors.Errorf("invalid sample rate %d or duration %v", *sampleRate, *duration)
	}
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	logger.Debug("tone", "freqs", freqs, "amplitude", *amplitude, "noise", *noise, "seed", s)
	sig := sigmadelta.Tone(*sampleRate, *duration, *amplitude, *noise, rand.New(rand.NewSource(s)), freqs...)

	out, err := os.Create(*output)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := pdmio.WriteWAV(out, sigmadelta.ToPCM16(sig), *sampleRate); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.WithStack(err)
	}
	logger.Info("wrote", "file", *output, "samples", len(sig), "samplerate", *sampleRate)
	return nil
}
