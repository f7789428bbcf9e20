// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pdmio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/galearn/pdmsim/pdmio"
)

func TestUnpack(t *testing.T) {
	bits := pdmio.Unpack([]byte{0x80, 0x0f})
	exp := []uint8{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	if !reflect.DeepEqual(bits, exp) {
		t.Errorf("expected %v, got %v", exp, bits)
	}
}

func TestPack(t *testing.T) {
	b := pdmio.Pack([]uint8{1, 0, 3, 0, 0, 0, 0, 1, 1})
	if exp := []byte{0xa1, 0x80}; !bytes.Equal(b, exp) {
		t.Errorf("expected %x, got %x", exp, b)
	}
	f := func(b []byte) bool {
		return bytes.Equal(pdmio.Pack(pdmio.Unpack(b)), b)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestReadWritePDM(t *testing.T) {
	var buf bytes.Buffer
	bits := []uint8{0, 1, 1, 0, 1, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0}
	if err := pdmio.WritePDM(&buf, bits); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2 {
		t.Fatalf("expected 2 bytes, got %d", buf.Len())
	}
	got, err := pdmio.ReadPDM(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, bits) {
		t.Errorf("expected %v, got %v", bits, got)
	}
}

func TestWAV(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	pcm := []int16{0, 4096, -4096, 32767, -32768, 1, -1}
	if err := pdmio.WriteWAV(f, pcm, 16000); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f, err = os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	samples, rate, err := pdmio.ReadWAV(f)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 16000 {
		t.Errorf("expected a 16000 Hz sample rate, got %d", rate)
	}
	if len(samples) != len(pcm) {
		t.Fatalf("expected %d samples, got %d", len(pcm), len(samples))
	}
	for i, s := range samples {
		if exp := float64(pcm[i]) / 32768; s != exp {
			t.Errorf("sample %d: expected %v, got %v", i, exp, s)
		}
	}
}

func TestWAV_errors(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := pdmio.WriteWAV(f, []int16{1}, 0); err == nil {
		t.Error("expected an error for a zero sample rate")
	}
	if _, _, err := pdmio.ReadWAV(bytes.NewReader([]byte("not a wav file at all"))); err == nil {
		t.Error("expected an error for an invalid file")
	}
}
