// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/bureau-foundation/typedwire/lib/wire"
)

func TestScalarRoundtrip(t *testing.T) {
	tests := []struct {
		name   string
		schema *ScalarSchema
		value  any
		want   any
	}{
		{"bool true", Bool, true, true},
		{"bool false", Bool, false, false},
		{"i8 min", I8, math.MinInt8, int8(math.MinInt8)},
		{"u8 max", U8, 255, uint8(255)},
		{"byte", Byte, uint8(7), uint8(7)},
		{"i16 min", I16, int16(math.MinInt16), int16(math.MinInt16)},
		{"u16 max", U16, 65535, uint16(65535)},
		{"i32 min", I32, math.MinInt32, int32(math.MinInt32)},
		{"i32 max", I32, math.MaxInt32, int32(math.MaxInt32)},
		{"u32 zero", U32, 0, uint32(0)},
		{"u32 max", U32, uint32(math.MaxUint32), uint32(math.MaxUint32)},
		{"f16", F16, 0.5, float32(0.5)},
		{"f32", F32, float32(-1.25), float32(-1.25)},
		{"f32 from int", F32, 3, float32(3)},
		{"i32 from integral float", I32, 42.0, int32(42)},
		{"i32 from json number", I32, json.Number("-9"), int32(-9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundtrip(t, tt.schema, tt.value, tt.want)
		})
	}
}

func TestUint32Wraps(t *testing.T) {
	buf := encode(t, U32, int64(1)<<32, wire.LittleEndian)
	if !bytes.Equal(buf, []byte{0, 0, 0, 0}) {
		t.Errorf("u32(2^32) encoded as %x, want 00000000", buf)
	}
	got, err := Decode(U32, buf, wire.LittleEndian)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != uint32(0) {
		t.Errorf("decoded %v, want 0", got)
	}
}

func TestScalarMeasureIsConstant(t *testing.T) {
	tests := []struct {
		schema *ScalarSchema
		want   int
	}{
		{Bool, 1}, {I8, 1}, {U8, 1}, {I16, 2}, {U16, 2}, {F16, 2}, {I32, 4}, {U32, 4}, {F32, 4},
	}
	for _, tt := range tests {
		for _, value := range []any{0, MaxValue} {
			size, ok := SizeOf(tt.schema, value)
			if !ok || size != tt.want {
				t.Errorf("%v.Measure(%v) = %d (bounded %v), want %d", tt.schema, value, size, ok, tt.want)
			}
		}
	}
}

func TestScalarValueTypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *ScalarSchema
		value  any
	}{
		{"string into i32", I32, "12"},
		{"fractional float into u8", U8, 1.5},
		{"int into bool", Bool, 1},
		{"nil into f32", F32, nil},
		{"nan into i16", I16, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wire.NewWriter(make([]byte, 8))
			err := tt.schema.Write(w, tt.value)
			if !errors.Is(err, ErrValueType) {
				t.Fatalf("Write error = %v, want ErrValueType", err)
			}
			if w.Offset() != 0 {
				t.Errorf("Offset = %d after rejected write, want 0", w.Offset())
			}
		})
	}
}

func TestStringSchema(t *testing.T) {
	buf := roundtrip(t, String, "Spikey", "Spikey")
	if want := append([]byte("Spikey"), 0); !bytes.Equal(buf, want) {
		t.Errorf("encoded %x, want %x", buf, want)
	}
	roundtrip(t, String, "", "")
	roundtrip(t, String, "日本語", "日本語")

	if size, _ := SizeOf(String, "日本語"); size != 10 {
		t.Errorf("SizeOf(日本語) = %d, want 10 (9 UTF-8 bytes + NUL)", size)
	}
	if _, ok := SizeOf(String, MaxValue); ok {
		t.Error("String.Measure(MaxValue) is bounded, want unbounded")
	}

	_, err := Decode(String, []byte{'a', 0xff, 0}, wire.LittleEndian)
	if !errors.Is(err, wire.ErrMalformedString) {
		t.Errorf("decode invalid UTF-8: err = %v, want ErrMalformedString", err)
	}
}

func TestCharsSchema(t *testing.T) {
	chars := Chars(4)
	buf := roundtrip(t, chars, "RIFF", "RIFF")
	if !bytes.Equal(buf, []byte("RIFF")) {
		t.Errorf("encoded %x, want %x", buf, []byte("RIFF"))
	}
	if size, ok := SizeOf(chars, MaxValue); !ok || size != 4 {
		t.Errorf("Chars(4).Measure(MaxValue) = %d (bounded %v), want 4", size, ok)
	}

	err := chars.Write(wire.NewWriter(make([]byte, 8)), "RIFFS")
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("Write 5 chars: err = %v, want ArityError", err)
	}
	if arity.Want != 4 || arity.Got != 5 {
		t.Errorf("ArityError = %+v, want Want 4 Got 5", arity)
	}
}
