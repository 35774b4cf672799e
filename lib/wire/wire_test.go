// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestPrimitiveRoundtrip(t *testing.T) {
	for _, endian := range []Endian{LittleEndian, BigEndian} {
		t.Run(endian.String(), func(t *testing.T) {
			buf := make([]byte, 64)
			w := NewWriter(buf, WithEndian(endian))
			w.Bool(true)
			w.Bool(false)
			w.Int8(-128)
			w.Uint8(255)
			w.Int16(-32768)
			w.Uint16(65535)
			w.Int32(math.MinInt32)
			w.Uint32(math.MaxUint32)
			w.Float16(1.5)
			w.Float32(3.25)
			w.String("héllo")
			if err := w.Err(); err != nil {
				t.Fatalf("write: %v", err)
			}

			r := NewReader(w.Bytes(), WithEndian(endian))
			if got := r.Bool(); got != true {
				t.Errorf("Bool = %v, want true", got)
			}
			if got := r.Bool(); got != false {
				t.Errorf("Bool = %v, want false", got)
			}
			if got := r.Int8(); got != -128 {
				t.Errorf("Int8 = %d, want -128", got)
			}
			if got := r.Uint8(); got != 255 {
				t.Errorf("Uint8 = %d, want 255", got)
			}
			if got := r.Int16(); got != -32768 {
				t.Errorf("Int16 = %d, want -32768", got)
			}
			if got := r.Uint16(); got != 65535 {
				t.Errorf("Uint16 = %d, want 65535", got)
			}
			if got := r.Int32(); got != math.MinInt32 {
				t.Errorf("Int32 = %d, want %d", got, math.MinInt32)
			}
			if got := r.Uint32(); got != math.MaxUint32 {
				t.Errorf("Uint32 = %d, want %d", got, uint32(math.MaxUint32))
			}
			if got := r.Float16(); got != 1.5 {
				t.Errorf("Float16 = %v, want 1.5", got)
			}
			if got := r.Float32(); got != 3.25 {
				t.Errorf("Float32 = %v, want 3.25", got)
			}
			if got := r.String(); got != "héllo" {
				t.Errorf("String = %q, want %q", got, "héllo")
			}
			if err := r.Err(); err != nil {
				t.Fatalf("read: %v", err)
			}
			if r.Remaining() != 0 {
				t.Errorf("Remaining = %d, want 0", r.Remaining())
			}
		})
	}
}

func TestByteLayout(t *testing.T) {
	tests := []struct {
		name   string
		endian Endian
		write  func(w *Writer)
		want   []byte
	}{
		{"uint32 little", LittleEndian, func(w *Writer) { w.Uint32(0x01020304) }, []byte{4, 3, 2, 1}},
		{"uint32 big", BigEndian, func(w *Writer) { w.Uint32(0x01020304) }, []byte{1, 2, 3, 4}},
		{"int16 little", LittleEndian, func(w *Writer) { w.Int16(-2) }, []byte{0xfe, 0xff}},
		{"int16 big", BigEndian, func(w *Writer) { w.Int16(-2) }, []byte{0xff, 0xfe}},
		{"float16 one big", BigEndian, func(w *Writer) { w.Float16(1) }, []byte{0x3c, 0x00}},
		{"string ignores endian", BigEndian, func(w *Writer) { w.String("hi") }, []byte{'h', 'i', 0}},
		{"empty string", LittleEndian, func(w *Writer) { w.String("") }, []byte{0}},
		{"bool", LittleEndian, func(w *Writer) { w.Bool(true) }, []byte{1}},
		{"raw slice", BigEndian, func(w *Writer) { w.WriteSlice([]byte{9, 8, 7}) }, []byte{9, 8, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, len(tt.want))
			w := NewWriter(buf, WithEndian(tt.endian))
			tt.write(w)
			if err := w.Err(); err != nil {
				t.Fatalf("write: %v", err)
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("bytes = %x, want %x", buf, tt.want)
			}
		})
	}
}

func TestFloat16SpecialValues(t *testing.T) {
	tests := []struct {
		name  string
		bits  uint16
		check func(float32) bool
	}{
		{"positive zero", 0x0000, func(v float32) bool { return v == 0 && !math.Signbit(float64(v)) }},
		{"negative zero", 0x8000, func(v float32) bool { return v == 0 && math.Signbit(float64(v)) }},
		{"positive infinity", 0x7c00, func(v float32) bool { return math.IsInf(float64(v), 1) }},
		{"negative infinity", 0xfc00, func(v float32) bool { return math.IsInf(float64(v), -1) }},
		{"nan", 0x7e00, func(v float32) bool { return math.IsNaN(float64(v)) }},
		{"smallest subnormal", 0x0001, func(v float32) bool { return v == float32(math.Ldexp(1, -24)) }},
		{"largest subnormal", 0x03ff, func(v float32) bool { return v == float32(1023.0/1024.0*math.Ldexp(1, -14)) }},
		{"one", 0x3c00, func(v float32) bool { return v == 1 }},
		{"minus two", 0xc000, func(v float32) bool { return v == -2 }},
		{"max finite", 0x7bff, func(v float32) bool { return v == 65504 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := []byte{byte(tt.bits), byte(tt.bits >> 8)}
			r := NewReader(buf, WithEndian(LittleEndian))
			got := r.Float16()
			if err := r.Err(); err != nil {
				t.Fatalf("read: %v", err)
			}
			if !tt.check(got) {
				t.Errorf("Float16(%#04x) = %v", tt.bits, got)
			}

			if math.IsNaN(float64(got)) {
				return
			}
			out := make([]byte, 2)
			w := NewWriter(out, WithEndian(LittleEndian))
			w.Float16(got)
			if !bytes.Equal(out, buf) {
				t.Errorf("re-encoded %v as %x, want %x", got, out, buf)
			}
		})
	}
}

func TestShortBufferIsSticky(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	r.Uint16()
	if err := r.Err(); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if got := r.Uint32(); got != 0 {
		t.Errorf("Uint32 past end = %d, want 0", got)
	}
	if !errors.Is(r.Err(), ErrShortBuffer) {
		t.Fatalf("Err = %v, want ErrShortBuffer", r.Err())
	}
	if got := r.Uint8(); got != 0 {
		t.Errorf("Uint8 after error = %d, want 0 (sticky error)", got)
	}
	if r.Offset() != 2 {
		t.Errorf("Offset = %d, want 2 (failed reads must not advance)", r.Offset())
	}

	w := NewWriter(make([]byte, 3))
	w.Uint32(7)
	if !errors.Is(w.Err(), ErrShortBuffer) {
		t.Fatalf("writer Err = %v, want ErrShortBuffer", w.Err())
	}
	w.Uint8(1)
	if w.Offset() != 0 {
		t.Errorf("writer Offset = %d, want 0", w.Offset())
	}
}

func TestStringErrors(t *testing.T) {
	t.Run("unterminated", func(t *testing.T) {
		r := NewReader([]byte("abc"))
		if got := r.String(); got != "" {
			t.Errorf("String = %q, want empty", got)
		}
		if !errors.Is(r.Err(), ErrUnterminatedString) {
			t.Errorf("Err = %v, want ErrUnterminatedString", r.Err())
		}
	})
	t.Run("invalid utf8 on read", func(t *testing.T) {
		r := NewReader([]byte{0xff, 0xfe, 0})
		r.String()
		if !errors.Is(r.Err(), ErrMalformedString) {
			t.Errorf("Err = %v, want ErrMalformedString", r.Err())
		}
	})
	t.Run("invalid utf8 on write", func(t *testing.T) {
		w := NewWriter(make([]byte, 8))
		w.String(string([]byte{0xc3}))
		if !errors.Is(w.Err(), ErrMalformedString) {
			t.Errorf("Err = %v, want ErrMalformedString", w.Err())
		}
		if w.Offset() != 0 {
			t.Errorf("Offset = %d, want 0", w.Offset())
		}
	})
	t.Run("embedded nul on write", func(t *testing.T) {
		w := NewWriter(make([]byte, 8))
		w.String("a\x00b")
		if !errors.Is(w.Err(), ErrMalformedString) {
			t.Errorf("Err = %v, want ErrMalformedString", w.Err())
		}
	})
}

func TestSeekAndSkip(t *testing.T) {
	buf := []byte{0, 0, 0xaa, 0xbb, 0, 0x11}
	r := NewReader(buf, WithOffset(2))
	if got := r.Uint8(); got != 0xaa {
		t.Errorf("Uint8 at offset 2 = %#x, want 0xaa", got)
	}
	r.SkipBytes(2)
	if got := r.Uint8(); got != 0x11 {
		t.Errorf("Uint8 after skip = %#x, want 0x11", got)
	}
	r.SeekTo(3)
	if got := r.Uint8(); got != 0xbb {
		t.Errorf("Uint8 after seek = %#x, want 0xbb", got)
	}
	r.SeekTo(len(buf) + 1)
	if !errors.Is(r.Err(), ErrShortBuffer) {
		t.Errorf("seek past end: Err = %v, want ErrShortBuffer", r.Err())
	}

	if bad := NewReader(buf, WithOffset(-1)); !errors.Is(bad.Err(), ErrShortBuffer) {
		t.Errorf("negative offset: Err = %v, want ErrShortBuffer", bad.Err())
	}

	out := make([]byte, 4)
	w := NewWriter(out, WithOffset(1))
	w.Uint8(5)
	w.SkipBytes(1)
	w.Uint8(6)
	if want := []byte{0, 5, 0, 6}; !bytes.Equal(out, want) {
		t.Errorf("bytes = %x, want %x", out, want)
	}
}

func TestReadSlice(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	dst := make([]byte, 3)
	r.ReadSlice(dst)
	if !bytes.Equal(dst, []byte{1, 2, 3}) {
		t.Errorf("ReadSlice = %x, want 010203", dst)
	}
	r.ReadSlice(make([]byte, 2))
	if !errors.Is(r.Err(), ErrShortBuffer) {
		t.Errorf("Err = %v, want ErrShortBuffer", r.Err())
	}
}

func TestParseEndian(t *testing.T) {
	tests := []struct {
		input   string
		want    Endian
		wantErr bool
	}{
		{"little", LittleEndian, false},
		{"BIG", BigEndian, false},
		{"le", LittleEndian, false},
		{"host", HostEndian, false},
		{"", HostEndian, false},
		{"middle", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEndian(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEndian(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEndian(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEndian(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
