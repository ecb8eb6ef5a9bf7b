// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := NewSlogLogger()
	logger.Warn("service restarted", "service", "http", "attempt", 2, "err", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"http"`,
		`"attempt":2`,
		`"err":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandlerGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := slog.New(NewSlogHandler()).With("layer", "api").WithGroup("supervisor")
	logger.Info("event", "name", "tree")

	out := buf.String()
	if !strings.Contains(out, `"supervisor.layer":"api"`) && !strings.Contains(out, `"layer":"api"`) {
		t.Errorf("layer attr missing: %s", out)
	}
	if !strings.Contains(out, `"supervisor.name":"tree"`) {
		t.Errorf("grouped attr missing: %s", out)
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	Init(Config{Level: "warn", Output: &bytes.Buffer{}})
	t.Cleanup(func() { Init(DefaultConfig()) })

	h := NewSlogHandler()
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
