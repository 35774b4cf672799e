// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// typedwire's tooling.
//
// CBOR appears in three places: as an alternative to JSON for values
// fed to and produced by the typedwire command (decoded wire values
// carry typed integers and floats that JSON flattens), as CBOR
// diagnostic notation for human inspection, and as the canonical byte
// form that schema fingerprints are computed over. All three need the
// same logical data to produce identical bytes, so the encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	value, err := codec.UnmarshalValue(data)
//
// For streams:
//
//	encoder := codec.NewEncoder(os.Stdout)
//	decoder := codec.NewDecoder(os.Stdin)
//
// Untyped decoding yields map[string]any, []any, []byte, string, bool,
// uint64, int64, and float64, all of which the wire schemas accept on
// write.
package codec
