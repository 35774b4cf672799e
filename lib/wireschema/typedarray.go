// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// TypedArraySchema encodes a fixed-length run of scalars and decodes it
// into a typed Go slice ([]uint8, []int16, []float32, ...). Elements
// wider than one byte use the writer's byte order.
type TypedArraySchema struct {
	elem   Kind
	length int
}

func typedArray(elem Kind, length int) *TypedArraySchema {
	if length < 0 {
		panic(fmt.Sprintf("wireschema: negative %s array length %d", elem, length))
	}
	return &TypedArraySchema{elem: elem, length: length}
}

// U8Array decodes to []uint8.
func U8Array(length int) *TypedArraySchema { return typedArray(KindUint8, length) }

// I8Array decodes to []int8.
func I8Array(length int) *TypedArraySchema { return typedArray(KindInt8, length) }

// U16Array decodes to []uint16.
func U16Array(length int) *TypedArraySchema { return typedArray(KindUint16, length) }

// I16Array decodes to []int16.
func I16Array(length int) *TypedArraySchema { return typedArray(KindInt16, length) }

// U32Array decodes to []uint32.
func U32Array(length int) *TypedArraySchema { return typedArray(KindUint32, length) }

// I32Array decodes to []int32.
func I32Array(length int) *TypedArraySchema { return typedArray(KindInt32, length) }

// F32Array decodes to []float32.
func F32Array(length int) *TypedArraySchema { return typedArray(KindFloat32, length) }

// TypedArray returns a typed array of any integer or float kind.
// Panics for [KindBool], which has no typed slice form.
func TypedArray(elem Kind, length int) *TypedArraySchema {
	if elem == KindBool || elem.Size() == 0 {
		panic(fmt.Sprintf("wireschema.TypedArray: unsupported element kind %v", elem))
	}
	return typedArray(elem, length)
}

// Elem returns the element encoding.
func (s *TypedArraySchema) Elem() Kind { return s.elem }

// Len returns the fixed element count.
func (s *TypedArraySchema) Len() int { return s.length }

func (s *TypedArraySchema) String() string {
	return fmt.Sprintf("%s[%d]", s.elem, s.length)
}

func (s *TypedArraySchema) Write(w *wire.Writer, value any) error {
	if raw, ok := value.([]byte); ok && s.elem == KindUint8 {
		if len(raw) != s.length {
			return &ArityError{Schema: s.String(), Want: s.length, Got: len(raw)}
		}
		w.WriteSlice(raw)
		return w.Err()
	}

	items, ok := elements(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	if len(items) != s.length {
		return &ArityError{Schema: s.String(), Want: s.length, Got: len(items)}
	}
	for i, item := range items {
		if err := writeScalar(w, s.elem, item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return w.Err()
}

func (s *TypedArraySchema) Read(r *wire.Reader) (any, error) {
	var out any
	switch s.elem {
	case KindUint8:
		raw := make([]uint8, s.length)
		r.ReadSlice(raw)
		out = raw
	case KindInt8:
		out = readRun(r, s.length, r.Int8)
	case KindUint16:
		out = readRun(r, s.length, r.Uint16)
	case KindInt16:
		out = readRun(r, s.length, r.Int16)
	case KindUint32:
		out = readRun(r, s.length, r.Uint32)
	case KindInt32:
		out = readRun(r, s.length, r.Int32)
	case KindFloat16:
		out = readRun(r, s.length, r.Float16)
	case KindFloat32:
		out = readRun(r, s.length, r.Float32)
	default:
		return nil, fmt.Errorf("%s: unsupported element kind", s)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func readRun[T any](r *wire.Reader, length int, next func() T) []T {
	out := make([]T, length)
	for i := range out {
		out[i] = next()
	}
	return out
}

func (s *TypedArraySchema) Measure(_ any, m *measure.Measurer) *measure.Measurer {
	return orNew(m).Add(s.length * s.elem.Size())
}

func (s *TypedArraySchema) resolve(*resolver) (Schema, error) { return s, nil }
