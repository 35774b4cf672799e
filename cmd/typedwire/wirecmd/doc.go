// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wirecmd implements the typedwire commands that work against a
// schema document: encode, decode, measure, layout, and fingerprint.
//
// Every command takes --schema, which is a path or a bare name searched
// in the config file's schema_paths, and an optional --endian override.
// The byte order comes from the flag, then the document's endian key,
// then the config file. Value input is read from the single positional
// file argument (memory-mapped via lib/mapped) or stdin.
//
// Values cross the command line as JSON (comments and trailing commas
// allowed) or CBOR. Decoded values are written as JSON, highlighted
// when stdout is a terminal, or as CBOR or CBOR diagnostic notation.
package wirecmd
