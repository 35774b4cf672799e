// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "typedwire.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Endian != "host" {
		t.Errorf("expected endian=host, got %s", cfg.Endian)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("expected output=json, got %s", cfg.Output)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("expected color=auto, got %s", cfg.Color)
	}
	if len(cfg.SchemaPaths) != 0 {
		t.Errorf("expected no schema paths, got %v", cfg.SchemaPaths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresTypedwireConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when TYPEDWIRE_CONFIG not set, got nil")
	}

	expectedMsg := "TYPEDWIRE_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithTypedwireConfig(t *testing.T) {
	configPath := writeConfig(t, `
endian: big
output: diag
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Endian != "big" {
		t.Errorf("expected endian=big, got %s", cfg.Endian)
	}
	if cfg.Output != OutputDiag {
		t.Errorf("expected output=diag, got %s", cfg.Output)
	}
	// Unset fields keep their defaults.
	if cfg.Color != ColorAuto {
		t.Errorf("expected color=auto, got %s", cfg.Color)
	}
}

func TestLoadFile_SchemaPaths(t *testing.T) {
	t.Setenv("TYPEDWIRE_TEST_SCHEMAS", "/srv/schemas")
	configPath := writeConfig(t, `
color: never
schema_paths:
  - ${TYPEDWIRE_TEST_SCHEMAS}
  - ${TYPEDWIRE_TEST_UNSET:-/opt/schemas}
  - ${CONFIG_DIR}/local
  - relative
`)
	configDir := filepath.Dir(configPath)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	want := []string{
		"/srv/schemas",
		"/opt/schemas",
		filepath.Join(configDir, "local"),
		filepath.Join(configDir, "relative"),
	}
	if len(cfg.SchemaPaths) != len(want) {
		t.Fatalf("schema_paths = %v, want %v", cfg.SchemaPaths, want)
	}
	for i := range want {
		if cfg.SchemaPaths[i] != want[i] {
			t.Errorf("schema_paths[%d] = %q, want %q", i, cfg.SchemaPaths[i], want[i])
		}
	}
	if cfg.Color != ColorNever {
		t.Errorf("expected color=never, got %s", cfg.Color)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile of empty file failed: %v", err)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("expected default output, got %s", cfg.Output)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"unknown key", "endianness: big\n", "endianness"},
		{"invalid output", "output: xml\n", "output must be one of"},
		{"invalid endian", "endian: middle\n", "endian must be one of"},
		{"invalid color", "color: sometimes\n", "color must be one of"},
		{"malformed yaml", "schema_paths: [unclosed\n", "loading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	// Only ${VAR} references inside the file read the environment.
	t.Setenv("TYPEDWIRE_ENDIAN", "little")
	t.Setenv("TYPEDWIRE_OUTPUT", "cbor")

	cfg, err := LoadFile(writeConfig(t, "endian: big\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Endian != "big" {
		t.Errorf("expected endian=big from file, got %s (env vars should not override)", cfg.Endian)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("expected output=json, got %s (env vars should not override)", cfg.Output)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/schemas",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/schemas",
		},
		{
			input:    "${TYPEDWIRE_MISSING_VAR:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"short endian name", func(c *Config) { c.Endian = "be" }, false},
		{"invalid endian", func(c *Config) { c.Endian = "sideways" }, true},
		{"invalid output", func(c *Config) { c.Output = "yaml" }, true},
		{"invalid color", func(c *Config) { c.Color = "" }, true},
		{"empty schema path", func(c *Config) { c.SchemaPaths = []string{"/a", ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
