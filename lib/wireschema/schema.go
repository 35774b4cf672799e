// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// Schema describes the shape of a value and how it is laid out on the
// wire. Every constructor in this package returns a Schema; the set of
// implementations is closed.
type Schema interface {
	// Write encodes value at the writer's cursor. Shape mismatches are
	// reported before any bytes are written for the mismatched node.
	Write(w *wire.Writer, value any) error

	// Read decodes one value at the reader's cursor.
	Read(r *wire.Reader) (any, error)

	// Measure adds the encoded size of value to m and returns the
	// measurer to continue with. Passing [MaxValue] measures the
	// worst case. A nil m starts a fresh measurer. The returned
	// measurer may be [measure.Unbounded] rather than m; callers must
	// continue with the returned value.
	//
	// Measuring a value that Write would reject yields an unspecified
	// size.
	Measure(value any, m *measure.Measurer) *measure.Measurer

	// resolve returns the schema with every reference placeholder
	// replaced by a link to its registered target.
	resolve(r *resolver) (Schema, error)
}

type maxValue struct{}

func (maxValue) String() string { return "MaxValue" }

// MaxValue is passed to Measure in place of a real value to request the
// schema's worst-case encoded size.
var MaxValue any = maxValue{}

func isMaxValue(value any) bool {
	_, ok := value.(maxValue)
	return ok
}

func orNew(m *measure.Measurer) *measure.Measurer {
	if m == nil {
		return measure.New()
	}
	return m
}

// SizeOf returns the encoded size of value, or false when the size is
// unbounded (only possible for [MaxValue]).
func SizeOf(s Schema, value any) (int, bool) {
	return s.Measure(value, measure.New()).Bounded()
}

// Encode measures value, allocates a buffer of exactly that size, and
// writes value into it with the given byte order.
func Encode(s Schema, value any, endian wire.Endian) ([]byte, error) {
	size, ok := SizeOf(s, value)
	if !ok {
		return nil, fmt.Errorf("encode: value has no bounded size")
	}
	buf := make([]byte, size)
	w := wire.NewWriter(buf, wire.WithEndian(endian))
	if err := s.Write(w, value); err != nil {
		return nil, err
	}
	if w.Offset() != size {
		return nil, fmt.Errorf("encode: measured %d bytes but wrote %d", size, w.Offset())
	}
	return buf, nil
}

// Decode reads one value from the start of data with the given byte
// order. Trailing bytes are not an error; use a [wire.Reader] directly
// to check how much was consumed.
func Decode(s Schema, data []byte, endian wire.Endian) (any, error) {
	return s.Read(wire.NewReader(data, wire.WithEndian(endian)))
}
