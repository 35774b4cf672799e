// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// ArraySchema encodes exactly length elements of one schema. The length
// is not written to the wire.
type ArraySchema struct {
	elem   Schema
	length int
}

// Array returns a fixed-length array schema. Panics on a negative
// length.
func Array(elem Schema, length int) *ArraySchema {
	if length < 0 {
		panic(fmt.Sprintf("wireschema.Array: negative length %d", length))
	}
	return &ArraySchema{elem: elem, length: length}
}

// Elem returns the element schema.
func (s *ArraySchema) Elem() Schema { return s.elem }

// Len returns the fixed element count.
func (s *ArraySchema) Len() int { return s.length }

func (s *ArraySchema) String() string { return fmt.Sprintf("array[%d]", s.length) }

func (s *ArraySchema) Write(w *wire.Writer, value any) error {
	items, ok := elements(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	if len(items) != s.length {
		return &ArityError{Schema: s.String(), Want: s.length, Got: len(items)}
	}
	return writeElements(w, s.elem, items)
}

func (s *ArraySchema) Read(r *wire.Reader) (any, error) {
	items := make([]any, s.length)
	for i := range items {
		item, err := s.elem.Read(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = item
	}
	return items, nil
}

func (s *ArraySchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	m = orNew(m)
	if isMaxValue(value) {
		if s.length == 0 {
			return m
		}
		elemSize, ok := s.elem.Measure(MaxValue, measure.New()).Bounded()
		if !ok {
			return measure.Unbounded
		}
		return m.Add(elemSize * s.length)
	}
	items, _ := elements(value)
	return measureElements(s.elem, items, m)
}

func (s *ArraySchema) resolve(r *resolver) (Schema, error) {
	elem, err := s.elem.resolve(r)
	if err != nil {
		return nil, err
	}
	return &ArraySchema{elem: elem, length: s.length}, nil
}

// MaxZeroWidthElements is the largest count [DynamicArraySchema.Read]
// accepts for elements that encode to no bytes, such as an empty
// [Tuple]. Any other element consumes input, so the region bounds its
// count.
const MaxZeroWidthElements = 1 << 16

// DynamicArraySchema encodes a 32-bit unsigned element count followed by
// that many elements.
type DynamicArraySchema struct {
	elem Schema
}

// DynamicArray returns a length-prefixed array schema.
func DynamicArray(elem Schema) *DynamicArraySchema {
	return &DynamicArraySchema{elem: elem}
}

// Elem returns the element schema.
func (s *DynamicArraySchema) Elem() Schema { return s.elem }

func (s *DynamicArraySchema) String() string { return "dynamicArray" }

func (s *DynamicArraySchema) Write(w *wire.Writer, value any) error {
	items, ok := elements(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	w.Uint32(uint32(len(items)))
	if err := w.Err(); err != nil {
		return err
	}
	return writeElements(w, s.elem, items)
}

func (s *DynamicArraySchema) Read(r *wire.Reader) (any, error) {
	count := r.Uint32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s count: %w", s, err)
	}
	// The count comes off the wire; cap the preallocation by what the
	// region could possibly hold.
	items := make([]any, 0, min(int(count), r.Remaining()))
	start := r.Offset()
	for i := range int(count) {
		item, err := s.elem.Read(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		// Every element of a schema that can occupy bytes occupies at
		// least one, so only zero-width elements can outrun the region.
		if i == 0 && r.Offset() == start && count > MaxZeroWidthElements {
			return nil, fmt.Errorf("%s count %d: zero-width elements are limited to %d: %w",
				s, count, MaxZeroWidthElements, ErrTooManyElements)
		}
		items = append(items, item)
	}
	return items, nil
}

// Measure returns 4 bytes plus the elements' sizes, or unbounded for
// [MaxValue] since the element count has no limit.
func (s *DynamicArraySchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	if isMaxValue(value) {
		return measure.Unbounded
	}
	items, _ := elements(value)
	return measureElements(s.elem, items, orNew(m).Add(4))
}

func (s *DynamicArraySchema) resolve(r *resolver) (Schema, error) {
	elem, err := s.elem.resolve(r)
	if err != nil {
		return nil, err
	}
	return &DynamicArraySchema{elem: elem}, nil
}

func writeElements(w *wire.Writer, elem Schema, items []any) error {
	for i, item := range items {
		if err := elem.Write(w, item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func measureElements(elem Schema, items []any, m *measure.Measurer) *measure.Measurer {
	for _, item := range items {
		m = elem.Measure(item, m)
	}
	return m
}
