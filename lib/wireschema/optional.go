// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// OptionalSchema encodes a presence byte (1 present, 0 absent) followed
// by the inner value when present. A nil value is absent, including a
// typed nil pointer or map; a nil slice is present and empty.
type OptionalSchema struct {
	inner Schema
}

// Optional wraps inner so that nil encodes as absent.
func Optional(inner Schema) *OptionalSchema {
	return &OptionalSchema{inner: inner}
}

// Inner returns the wrapped schema.
func (s *OptionalSchema) Inner() Schema { return s.inner }

func (s *OptionalSchema) String() string { return "optional" }

func (s *OptionalSchema) Write(w *wire.Writer, value any) error {
	if absent(value) {
		w.Bool(false)
		return w.Err()
	}
	w.Bool(true)
	if err := w.Err(); err != nil {
		return err
	}
	return s.inner.Write(w, value)
}

func (s *OptionalSchema) Read(r *wire.Reader) (any, error) {
	present := r.Bool()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return s.inner.Read(r)
}

// Measure costs 1 byte when absent, and 1 byte plus the inner size when
// present or for [MaxValue].
func (s *OptionalSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	m = orNew(m).Add(1)
	if absent(value) {
		return m
	}
	return s.inner.Measure(value, m)
}

func (s *OptionalSchema) resolve(r *resolver) (Schema, error) {
	inner, err := s.inner.resolve(r)
	if err != nil {
		return nil, err
	}
	return &OptionalSchema{inner: inner}, nil
}
