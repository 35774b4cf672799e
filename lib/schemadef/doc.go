// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemadef parses schema definition documents into
// [wireschema.Schema] values, so schemas can be authored on disk and
// shared with tooling that is not written in Go.
//
// A document is YAML or JSONC (JSON extended with comments and trailing
// commas). Both are read into a yaml.Node tree, which keeps mapping key
// order: object properties are encoded in the order the document lists
// them.
//
//	endian: little
//	schema:
//	  object:
//	    name: string
//	    position: {tuple: [f32, f32, f32]}
//	    age: i32
//
// A node is either a scalar name (bool, i8, u8, byte, i16, u16, i32,
// u32, f16, f32, string) or a mapping with exactly one constructor key:
//
//	object:       {name: node, ...}
//	concat:       [object node, ...]
//	array:        {of: node, length: n}
//	dynamicArray: node
//	tuple:        [node, ...]
//	optional:     node
//	chars:        n
//	typedArray:   {of: u8|i8|u16|i16|u32|i32|f16|f32, length: n}
//	union:        {tag: string|enum, base: {name: node, ...}, variants: {key: {name: node, ...}, ...}}
//	keyed:        {key: k, schema: node}
//	ref:          k
//
// A ref names the innermost enclosing keyed node with that key.
//
// Every parsed definition carries a [Fingerprint]: a domain-keyed BLAKE3
// hash over a canonical CBOR rendering of the schema and its byte
// order. Documents that differ only in format (YAML or JSONC), layout,
// comments, the byte alias, or the order of union variants share a
// fingerprint.
package schemadef
