// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_HandlerByTerminal(t *testing.T) {
	var text bytes.Buffer
	newLogger(&text, slog.LevelInfo, true).Info("loaded", "schema", "spikey")
	if !strings.Contains(text.String(), "msg=loaded") || !strings.Contains(text.String(), "schema=spikey") {
		t.Errorf("terminal output = %q, want text handler format", text.String())
	}

	var structured bytes.Buffer
	newLogger(&structured, slog.LevelInfo, false).Info("loaded", "schema", "spikey")
	var record map[string]any
	if err := json.Unmarshal(structured.Bytes(), &record); err != nil {
		t.Fatalf("non-terminal output is not JSON: %v (%q)", err, structured.String())
	}
	if record["msg"] != "loaded" || record["schema"] != "spikey" {
		t.Errorf("record = %v, want msg=loaded schema=spikey", record)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buffer bytes.Buffer
	logger := newLogger(&buffer, slog.LevelInfo, false)
	logger.Debug("hidden")
	if buffer.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buffer.String())
	}

	newLogger(&buffer, slog.LevelDebug, false).Debug("shown")
	if !strings.Contains(buffer.String(), "shown") {
		t.Errorf("debug record missing at debug level: %q", buffer.String())
	}
}

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer

	done, err := output.EmitJSON(&buffer, []string(nil))
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, []string(nil))
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v)", done, err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice output = %q, want []", got)
	}
}
