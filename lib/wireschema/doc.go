// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wireschema composes declarative binary schemas and uses them
// to write values to a [wire.Writer], read them back from a
// [wire.Reader], and measure their encoded size without encoding.
//
// A schema is built once from constructors and is immutable afterwards:
//
//	point := wireschema.Object(
//	    wireschema.Prop("name", wireschema.String),
//	    wireschema.Prop("position", wireschema.Tuple(wireschema.F32, wireschema.F32, wireschema.F32)),
//	    wireschema.Prop("age", wireschema.I32),
//	)
//
// Values are dynamic: objects are map[string]any, arrays and tuples are
// []any (typed Go slices are accepted on write), optional absence is
// nil, and scalars decode to their natural Go type (int32, float32, ...).
// Object properties are written in declaration order, never in map
// order.
//
// # Measurement
//
// Measure reports how many bytes Write produces for a value. Passing
// [MaxValue] instead asks for the worst case: fixed-width schemas report
// a number, while strings, dynamic arrays, string-tagged unions and
// recursive references report [measure.Unbounded]. The measured size of
// a value always equals the number of bytes written for it.
//
// # Tagged unions
//
// [Union] and [EnumUnion] select a variant by the value's "type"
// property. The discriminant is written first (a NUL-terminated string
// or one byte), then the base properties, then the variant's. The
// worst case of an enum union is its base plus one byte plus its largest
// variant.
//
// # Recursive schemas
//
// [Keyed] hands its builder a placeholder for the schema being defined.
// When the builder returns, a single resolution pass registers the key,
// rebuilds the tree with every placeholder replaced by a link to the
// key's slot in a small arena, and fills the slot. A Keyed schema built
// inside another builder may refer to any enclosing schema; its
// resolution waits for the outermost builder it depends on. The graph
// may contain cycles, but resolution has finished before the outermost
// Keyed returns and no operation resolves anything afterwards:
//
//	node := wireschema.MustKeyed("node", func(self wireschema.Schema) wireschema.Schema {
//	    return wireschema.Object(
//	        wireschema.Prop("value", wireschema.I32),
//	        wireschema.Prop("next", wireschema.Optional(self)),
//	    )
//	})
//
// Resolved schemas are safe for concurrent use. Readers and writers are
// not; give every goroutine its own.
package wireschema
