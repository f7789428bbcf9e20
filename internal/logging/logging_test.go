// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/galearn/pdmsim/internal/logging"
)

func TestResolveLevel(t *testing.T) {
	for name, exp := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		l, err := logging.ResolveLevel(name)
		if err != nil || l != exp {
			t.Errorf("%s: expected %v, got %v, %v", name, exp, l, err)
		}
	}
	if _, err := logging.ResolveLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Errorf("unexpected log output: %q", out)
	}
}
