// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/config"
	"github.com/bureau-foundation/typedwire/lib/schemadef"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// schemaParams are the flags shared by every schema-driven command.
type schemaParams struct {
	Schema  string `json:"schema"  flag:"schema,s"  desc:"schema document: a path, or a name searched in schema_paths"`
	Endian  string `json:"endian"  flag:"endian,e"  desc:"byte order override: little, big, or host"`
	Config  string `json:"config"  flag:"config"    desc:"config file (default: $TYPEDWIRE_CONFIG, else built-in defaults)"`
	Verbose bool   `json:"verbose" flag:"verbose,v" desc:"log debug events to stderr"`
}

// session is a loaded config and schema definition, with a logger
// scoped to the schema.
type session struct {
	config     *config.Config
	path       string
	definition *schemadef.Definition
	logger     *slog.Logger
}

// load resolves the config file and the schema document named by the
// flags.
func (p *schemaParams) load(command string, logger *slog.Logger) (*session, error) {
	if p.Verbose {
		logger = cli.NewCommandLogger(slog.LevelDebug).With("command", "typedwire "+command)
	}

	cfg, err := loadConfig(p.Config)
	if err != nil {
		return nil, err
	}

	if p.Schema == "" {
		return nil, cli.Validation("--schema is required")
	}
	path, err := schemadef.Locate(p.Schema, cfg.SchemaPaths)
	if err != nil {
		return nil, cli.NotFound("%w", err).
			WithHint("Pass a path, or add the schema's directory to schema_paths in the config file.")
	}
	definition, err := schemadef.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	definition, err = resolveEndian(definition, p.Endian, cfg.Endian)
	if err != nil {
		return nil, err
	}

	logger = logger.With("schema", definition.Fingerprint.Short())
	logger.Debug("schema loaded",
		"path", path,
		"endian", definition.Endian.String(),
		"fingerprint", definition.Fingerprint.String(),
	)
	return &session{config: cfg, path: path, definition: definition, logger: logger}, nil
}

// loadConfig loads the file named by --config, then the one named by
// TYPEDWIRE_CONFIG. With neither, the built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		return config.Default(), nil
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("loading config: %w", err)
		}
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

// resolveEndian applies the --endian override, or the configured byte
// order when the document declares none.
func resolveEndian(definition *schemadef.Definition, override, configured string) (*schemadef.Definition, error) {
	switch {
	case override != "":
		endian, err := wire.ParseEndian(override)
		if err != nil {
			return nil, cli.Validation("--endian: %w", err)
		}
		return definition.WithEndian(endian)
	case !definition.EndianDeclared:
		endian, err := wire.ParseEndian(configured)
		if err != nil {
			return nil, cli.Validation("config endian: %w", err)
		}
		if endian == definition.Endian {
			return definition, nil
		}
		return definition.WithEndian(endian)
	default:
		return definition, nil
	}
}
