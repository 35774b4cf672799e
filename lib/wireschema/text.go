// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// StringSchema encodes a NUL-terminated UTF-8 string.
type StringSchema struct{}

// String is the string schema.
var String = &StringSchema{}

func (s *StringSchema) String() string { return "string" }

func (s *StringSchema) Write(w *wire.Writer, value any) error {
	text, ok := value.(string)
	if !ok {
		return &ValueTypeError{Schema: "string", Value: value}
	}
	w.String(text)
	return w.Err()
}

func (s *StringSchema) Read(r *wire.Reader) (any, error) {
	text := r.String()
	if err := r.Err(); err != nil {
		return nil, err
	}
	return text, nil
}

// Measure returns the UTF-8 length plus the terminator, or unbounded
// for [MaxValue].
func (s *StringSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	if isMaxValue(value) {
		return measure.Unbounded
	}
	text, _ := value.(string)
	return orNew(m).Add(len(text) + 1)
}

func (s *StringSchema) resolve(*resolver) (Schema, error) { return s, nil }

// CharsSchema encodes a string of exactly length bytes with no
// terminator.
type CharsSchema struct {
	length int
}

// Chars returns a fixed-length character schema. Panics on a negative
// length.
func Chars(length int) *CharsSchema {
	if length < 0 {
		panic(fmt.Sprintf("wireschema.Chars: negative length %d", length))
	}
	return &CharsSchema{length: length}
}

// Len returns the fixed byte length.
func (s *CharsSchema) Len() int { return s.length }

func (s *CharsSchema) String() string { return fmt.Sprintf("chars[%d]", s.length) }

func (s *CharsSchema) Write(w *wire.Writer, value any) error {
	text, ok := value.(string)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	if len(text) != s.length {
		return &ArityError{Schema: s.String(), Want: s.length, Got: len(text)}
	}
	w.WriteSlice([]byte(text))
	return w.Err()
}

func (s *CharsSchema) Read(r *wire.Reader) (any, error) {
	raw := make([]byte, s.length)
	r.ReadSlice(raw)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", s, wire.ErrMalformedString)
	}
	return string(raw), nil
}

func (s *CharsSchema) Measure(_ any, m *measure.Measurer) *measure.Measurer {
	return orNew(m).Add(s.length)
}

func (s *CharsSchema) resolve(*resolver) (Schema, error) { return s, nil }
