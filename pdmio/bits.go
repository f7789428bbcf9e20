// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pdmio reads and writes PDM bitstreams and PCM audio files.
//
// PDM files are raw packed bitstreams, 8 bits per byte, most significant bit
// first. PCM audio is read from and written to WAV files.
package pdmio

import (
	"io"

	"github.com/pkg/errors"
)

// Unpack expands packed bytes to one bit per element, most significant bit
// first.
func Unpack(b []byte) []uint8 {
	bits := make([]uint8, len(b)*8)
	for i, v := range b {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = v >> uint(7-j) & 1
		}
	}
	return bits
}

// Pack packs bits, most significant bit first. Any non-zero element is a 1.
// The last byte is padded with zeroes.
func Pack(bits []uint8) []byte {
	b := make([]byte, (len(bits)+7)/8)
	for i, v := range bits {
		if v != 0 {
			b[i/8] |= 1 << uint(7-i%8)
		}
	}
	return b
}

// ReadPDM reads a packed PDM bitstream.
func ReadPDM(r io.Reader) ([]uint8, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read pdm")
	}
	return Unpack(b), nil
}

// WritePDM writes bits as a packed PDM bitstream.
func WritePDM(w io.Writer, bits []uint8) error {
	_, err := w.Write(Pack(bits))
	return errors.Wrap(err, "write pdm")
}
