// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
)

const spikeySchema = `
endian: little
schema:
  object:
    name: string
    position: {tuple: [f32, f32, f32]}
    age: i32
`

const spikeyJSON = `{"name": "spikey", "position": [1, 2, 3], "age": 7}`

// spikeyHex is spikeyJSON encoded little-endian.
const spikeyHex = "7370696b657900" + "0000803f" + "00000040" + "00004040" + "07000000"

// writeFile writes content to name under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeSchema writes a schema document to a temp directory.
func writeSchema(t *testing.T, document string) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "schema.yaml", document)
}

type testStreams struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// with returns streams reading input and writing to the buffers.
func (s *testStreams) with(input string) streams {
	return streams{stdin: strings.NewReader(input), stdout: &s.stdout, stderr: &s.stderr}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// clearConfigEnvironment keeps a developer's TYPEDWIRE_CONFIG out of
// the test.
func clearConfigEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("TYPEDWIRE_CONFIG", "")
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want %s error", want)
	}
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	if toolError.Category != want {
		t.Errorf("category = %q, want %q (error: %v)", toolError.Category, want, err)
	}
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("error = %v, want ExitError with code %d", err, want)
	}
	if exitError.Code != want {
		t.Errorf("exit code = %d, want %d", exitError.Code, want)
	}
}
