// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the typedwire
// command.
//
// Configuration is loaded from a single file specified by either the
// TYPEDWIRE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. A command run with neither uses
// [Default].
//
// Variable expansion is performed on schema_paths after loading:
// ${HOME}, ${CONFIG_DIR}, and ${VAR:-default} patterns are expanded,
// and relative entries are taken relative to the config file. No
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- endian, output, color, and schema_paths
//   - [Default] -- host byte order, JSON output, automatic color
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other typedwire packages.
package config
