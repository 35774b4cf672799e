// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// Kind identifies a fixed-width scalar encoding.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat16
	KindFloat32
)

var kindNames = map[Kind]string{
	KindBool:    "bool",
	KindInt8:    "i8",
	KindUint8:   "u8",
	KindInt16:   "i16",
	KindUint16:  "u16",
	KindInt32:   "i32",
	KindUint32:  "u32",
	KindFloat16: "f16",
	KindFloat32: "f32",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Size returns the encoded width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16, KindFloat16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	default:
		return 0
	}
}

// ScalarSchema encodes one fixed-width boolean, integer, or float.
type ScalarSchema struct {
	kind Kind
}

// The scalar schemas. Byte is an alias for U8.
var (
	Bool = &ScalarSchema{kind: KindBool}
	I8   = &ScalarSchema{kind: KindInt8}
	U8   = &ScalarSchema{kind: KindUint8}
	Byte = U8
	I16  = &ScalarSchema{kind: KindInt16}
	U16  = &ScalarSchema{kind: KindUint16}
	I32  = &ScalarSchema{kind: KindInt32}
	U32  = &ScalarSchema{kind: KindUint32}
	F16  = &ScalarSchema{kind: KindFloat16}
	F32  = &ScalarSchema{kind: KindFloat32}
)

// Kind returns the scalar's encoding.
func (s *ScalarSchema) Kind() Kind { return s.kind }

func (s *ScalarSchema) String() string { return s.kind.String() }

func (s *ScalarSchema) Write(w *wire.Writer, value any) error {
	if err := writeScalar(w, s.kind, value); err != nil {
		return err
	}
	return w.Err()
}

func (s *ScalarSchema) Read(r *wire.Reader) (any, error) {
	value := readScalar(r, s.kind)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *ScalarSchema) Measure(_ any, m *measure.Measurer) *measure.Measurer {
	return orNew(m).Add(s.kind.Size())
}

func (s *ScalarSchema) resolve(*resolver) (Schema, error) { return s, nil }

// writeScalar converts value for kind and writes it. Integers are
// truncated to the kind's width.
func writeScalar(w *wire.Writer, kind Kind, value any) error {
	switch kind {
	case KindBool:
		flag, ok := value.(bool)
		if !ok {
			return &ValueTypeError{Schema: kind.String(), Value: value}
		}
		w.Bool(flag)
		return nil
	case KindFloat16, KindFloat32:
		float, ok := toFloat64(value)
		if !ok {
			return &ValueTypeError{Schema: kind.String(), Value: value}
		}
		if kind == KindFloat16 {
			w.Float16(float32(float))
		} else {
			w.Float32(float32(float))
		}
		return nil
	}

	integer, ok := toInt64(value)
	if !ok {
		return &ValueTypeError{Schema: kind.String(), Value: value}
	}
	switch kind {
	case KindInt8:
		w.Int8(int8(integer))
	case KindUint8:
		w.Uint8(uint8(integer))
	case KindInt16:
		w.Int16(int16(integer))
	case KindUint16:
		w.Uint16(uint16(integer))
	case KindInt32:
		w.Int32(int32(integer))
	case KindUint32:
		w.Uint32(uint32(integer))
	default:
		return fmt.Errorf("unsupported scalar kind %v", kind)
	}
	return nil
}

// readScalar reads one value of kind as its natural Go type.
func readScalar(r *wire.Reader, kind Kind) any {
	switch kind {
	case KindBool:
		return r.Bool()
	case KindInt8:
		return r.Int8()
	case KindUint8:
		return r.Uint8()
	case KindInt16:
		return r.Int16()
	case KindUint16:
		return r.Uint16()
	case KindInt32:
		return r.Int32()
	case KindUint32:
		return r.Uint32()
	case KindFloat16:
		return r.Float16()
	case KindFloat32:
		return r.Float32()
	default:
		return nil
	}
}
