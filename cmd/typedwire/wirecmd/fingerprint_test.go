// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/schemadef"
)

func TestFingerprint(t *testing.T) {
	clearConfigEnvironment(t)
	schemaPath := writeSchema(t, spikeySchema)
	definition, err := schemadef.Load(schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	full := definition.Fingerprint.String()

	tests := []struct {
		name   string
		params fingerprintParams
		want   string
	}{
		{"full", fingerprintParams{}, full},
		{"short", fingerprintParams{Short: true}, full[:12]},
		{"expect match", fingerprintParams{Expect: full}, full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.Schema = schemaPath
			var std testStreams
			if err := runFingerprint(&params, nil, std.with(""), discardLogger()); err != nil {
				t.Fatalf("runFingerprint: %v", err)
			}
			if got := strings.TrimSpace(std.stdout.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFingerprintMismatch(t *testing.T) {
	clearConfigEnvironment(t)
	params := &fingerprintParams{
		schemaParams: schemaParams{Schema: writeSchema(t, spikeySchema)},
		Expect:       strings.Repeat("00", 32),
	}
	var std testStreams
	err := runFingerprint(params, nil, std.with(""), discardLogger())
	requireExitCode(t, err, 1)
	if !strings.Contains(std.stderr.String(), "fingerprint mismatch") {
		t.Errorf("stderr = %q, want a mismatch report", std.stderr.String())
	}

	params.Expect = "not-hex"
	err = runFingerprint(params, nil, std.with(""), discardLogger())
	requireCategory(t, err, cli.CategoryValidation)
}

func TestFingerprintEndianOverride(t *testing.T) {
	clearConfigEnvironment(t)
	little := writeSchema(t, "endian: little\nschema: {object: {a: u32}}")
	big := writeSchema(t, "endian: big\nschema: {object: {a: u32}}")

	fingerprint := func(params fingerprintParams) string {
		t.Helper()
		var std testStreams
		if err := runFingerprint(&params, nil, std.with(""), discardLogger()); err != nil {
			t.Fatalf("runFingerprint: %v", err)
		}
		return strings.TrimSpace(std.stdout.String())
	}

	overridden := fingerprint(fingerprintParams{schemaParams: schemaParams{Schema: little, Endian: "big"}})
	declared := fingerprint(fingerprintParams{schemaParams: schemaParams{Schema: big}})
	original := fingerprint(fingerprintParams{schemaParams: schemaParams{Schema: little}})
	if overridden != declared {
		t.Errorf("--endian big fingerprint %s, want %s", overridden, declared)
	}
	if overridden == original {
		t.Error("--endian override did not change the fingerprint")
	}
}

func TestFingerprintJSONWithCanonical(t *testing.T) {
	clearConfigEnvironment(t)
	params := &fingerprintParams{
		schemaParams: schemaParams{Schema: writeSchema(t, "endian: little\nschema: {object: {a: byte}}")},
		Canonical:    true,
	}
	params.OutputJSON = true

	var std testStreams
	if err := runFingerprint(params, nil, std.with(""), discardLogger()); err != nil {
		t.Fatalf("runFingerprint: %v", err)
	}
	var result fingerprintResult
	if err := json.Unmarshal(std.stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Endian != "little" {
		t.Errorf("endian = %q, want little", result.Endian)
	}
	if want := `["little", ["object", [["a", "u8"]]]]`; result.Canonical != want {
		t.Errorf("canonical = %s, want %s", result.Canonical, want)
	}
	if len(result.Fingerprint) != 64 {
		t.Errorf("fingerprint = %q, want 64 hex characters", result.Fingerprint)
	}
}
