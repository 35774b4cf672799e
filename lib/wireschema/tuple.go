// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// TupleSchema encodes a fixed sequence of differently-typed elements.
type TupleSchema struct {
	elems []Schema
}

// Tuple returns a tuple of the given element schemas, in wire order.
func Tuple(elems ...Schema) *TupleSchema {
	return &TupleSchema{elems: append([]Schema(nil), elems...)}
}

// Elems returns a copy of the element schemas.
func (s *TupleSchema) Elems() []Schema { return append([]Schema(nil), s.elems...) }

func (s *TupleSchema) String() string { return fmt.Sprintf("tuple[%d]", len(s.elems)) }

func (s *TupleSchema) Write(w *wire.Writer, value any) error {
	items, ok := elements(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	if len(items) != len(s.elems) {
		return &ArityError{Schema: s.String(), Want: len(s.elems), Got: len(items)}
	}
	for i, elem := range s.elems {
		if err := elem.Write(w, items[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (s *TupleSchema) Read(r *wire.Reader) (any, error) {
	items := make([]any, len(s.elems))
	for i, elem := range s.elems {
		item, err := elem.Read(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = item
	}
	return items, nil
}

func (s *TupleSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	m = orNew(m)
	if isMaxValue(value) {
		for _, elem := range s.elems {
			m = elem.Measure(MaxValue, m)
		}
		return m
	}
	items, _ := elements(value)
	for i, elem := range s.elems {
		var item any
		if i < len(items) {
			item = items[i]
		}
		m = elem.Measure(item, m)
	}
	return m
}

func (s *TupleSchema) resolve(r *resolver) (Schema, error) {
	elems := make([]Schema, len(s.elems))
	for i, elem := range s.elems {
		resolved, err := elem.resolve(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = resolved
	}
	return &TupleSchema{elems: elems}, nil
}
