// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Output selects how decoded values are rendered.
type Output string

const (
	// OutputJSON renders decoded values as indented JSON.
	OutputJSON Output = "json"
	// OutputCBOR writes decoded values as deterministic CBOR.
	OutputCBOR Output = "cbor"
	// OutputDiag renders decoded values as CBOR diagnostic notation.
	OutputDiag Output = "diag"
)

// ColorMode controls syntax highlighting of terminal output.
type ColorMode string

const (
	// ColorAuto highlights only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways highlights regardless of the output destination.
	ColorAlways ColorMode = "always"
	// ColorNever disables highlighting.
	ColorNever ColorMode = "never"
)

// Config is the typedwire command configuration.
type Config struct {
	// Endian is the byte order used when a schema document declares
	// none and no --endian flag is given: little, big, or host.
	// Default: host
	Endian string `yaml:"endian"`

	// Output is the default decode output format.
	// Default: json
	Output Output `yaml:"output"`

	// Color controls JSON highlighting.
	// Default: auto
	Color ColorMode `yaml:"color"`

	// SchemaPaths are directories searched, in order, for --schema
	// names that are not paths. Entries may use ${VAR} and
	// ${VAR:-default}; ${CONFIG_DIR} is the directory holding the
	// config file.
	SchemaPaths []string `yaml:"schema_paths"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Endian: "host",
		Output: OutputJSON,
		Color:  ColorAuto,
	}
}

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "TYPEDWIRE_CONFIG"

// Load loads configuration from the file named by TYPEDWIRE_CONFIG.
//
// There are no fallbacks or discovery: if TYPEDWIRE_CONFIG is not set,
// this fails. Callers that can run without a config file check the
// variable themselves and use [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your typedwire.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default]. Unknown keys are errors.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	configDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.expandVariables(configDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// schema paths and makes relative entries relative to configDir.
func (c *Config) expandVariables(configDir string) {
	vars := map[string]string{
		"CONFIG_DIR": configDir,
		"HOME":       os.Getenv("HOME"),
	}
	for i, path := range c.SchemaPaths {
		expanded := expandVars(path, vars)
		if expanded != "" && !filepath.IsAbs(expanded) {
			expanded = filepath.Join(configDir, expanded)
		}
		c.SchemaPaths[i] = expanded
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	endians := []string{"little", "le", "big", "be", "host", "native"}
	if !slices.Contains(endians, c.Endian) {
		errs = append(errs, fmt.Errorf("endian must be one of: %v", endians))
	}

	outputs := []Output{OutputJSON, OutputCBOR, OutputDiag}
	if !slices.Contains(outputs, c.Output) {
		errs = append(errs, fmt.Errorf("output must be one of: %v", outputs))
	}

	colors := []ColorMode{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colors, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of: %v", colors))
	}

	for _, path := range c.SchemaPaths {
		if path == "" {
			errs = append(errs, errors.New("schema_paths entries must not be empty"))
			break
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
