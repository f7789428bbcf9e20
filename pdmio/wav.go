// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmio

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const wavFormatPCM = 1

// WriteWAV writes 16 bits mono PCM samples as a WAV file.
func WriteWAV(w io.WriteSeeker, pcm []int16, sampleRate int) error {
	if sampleRate <= 0 {
		return errors.Errorf("invalid sample rate %d", sampleRate)
	}
	enc := wav.NewEncoder(w, sampleRate, 16, 1, wavFormatPCM)
	data := make([]int, len(pcm))
	for i, s := range pcm {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "write wav")
	}
	return errors.Wrap(enc.Close(), "close wav")
}

// ReadWAV reads the first channel of a 16, 24 or 32 bits integer PCM WAV
// file and returns its samples normalized to [-1, 1) along with the sample
// rate.
func ReadWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrap(err, "decode wav")
	}
	depth := int(dec.BitDepth)
	switch depth {
	case 16, 24, 32:
	default:
		return nil, 0, errors.Errorf("unsupported bit depth %d", depth)
	}
	nch := int(dec.NumChans)
	if nch <= 0 {
		return nil, 0, errors.Errorf("invalid channel count %d", nch)
	}
	scale := float64(int64(1) << uint(depth-1))
	out := make([]float64, 0, len(buf.Data)/nch)
	for i := 0; i < len(buf.Data); i += nch {
		out = append(out, float64(buf.Data[i])/scale)
	}
	return out, int(dec.SampleRate), nil
}
