// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/x448/float16"
)

// Writer encodes primitive values into a byte region. The writer never
// grows the region; size it with the schema's Measure first.
type Writer struct {
	buf    []byte
	offset int
	endian Endian
	order  binary.ByteOrder
	err    error
}

// NewWriter returns a Writer over buf. An out-of-range [WithOffset]
// puts the writer into the error state immediately.
func NewWriter(buf []byte, opts ...Option) *Writer {
	resolved := applyOptions(opts)
	w := &Writer{
		buf:    buf,
		endian: resolved.endian,
		order:  resolved.endian.ByteOrder(),
	}
	w.SeekTo(resolved.offset)
	return w
}

// Err returns the first error encountered, or nil.
func (w *Writer) Err() error { return w.err }

// Endian returns the writer's byte order.
func (w *Writer) Endian() Endian { return w.endian }

// Offset returns the current cursor position.
func (w *Writer) Offset() int { return w.offset }

// Remaining returns the number of writable bytes after the cursor.
func (w *Writer) Remaining() int { return len(w.buf) - w.offset }

// Bytes returns the region up to the cursor.
func (w *Writer) Bytes() []byte { return w.buf[:w.offset] }

// SeekTo moves the cursor to an absolute position. Positions outside
// [0, len(region)] record [ErrShortBuffer].
func (w *Writer) SeekTo(offset int) {
	if w.err != nil {
		return
	}
	if offset < 0 || offset > len(w.buf) {
		w.err = fmt.Errorf("%w: seek to %d in %d-byte region", ErrShortBuffer, offset, len(w.buf))
		return
	}
	w.offset = offset
}

// SkipBytes moves the cursor relative to its current position without
// touching the skipped bytes.
func (w *Writer) SkipBytes(count int) {
	w.SeekTo(w.offset + count)
}

// reserve returns the next n bytes of the region for writing and
// advances past them, or records ErrShortBuffer and returns nil.
func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	if n < 0 || len(w.buf)-w.offset < n {
		w.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrShortBuffer, n, w.offset, len(w.buf)-w.offset)
		return nil
	}
	span := w.buf[w.offset : w.offset+n]
	w.offset += n
	return span
}

// Bool encodes true as 1 and false as 0.
func (w *Writer) Bool(value bool) {
	if value {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// Int8 encodes a signed 8-bit integer.
func (w *Writer) Int8(value int8) {
	w.Uint8(uint8(value))
}

// Uint8 encodes an unsigned 8-bit integer.
func (w *Writer) Uint8(value uint8) {
	if span := w.reserve(1); span != nil {
		span[0] = value
	}
}

// Int16 encodes a signed 16-bit integer.
func (w *Writer) Int16(value int16) {
	w.Uint16(uint16(value))
}

// Uint16 encodes an unsigned 16-bit integer.
func (w *Writer) Uint16(value uint16) {
	if span := w.reserve(2); span != nil {
		w.order.PutUint16(span, value)
	}
}

// Int32 encodes a signed 32-bit integer.
func (w *Writer) Int32(value int32) {
	w.Uint32(uint32(value))
}

// Uint32 encodes an unsigned 32-bit integer.
func (w *Writer) Uint32(value uint32) {
	if span := w.reserve(4); span != nil {
		w.order.PutUint32(span, value)
	}
}

// Float16 narrows value to IEEE 754 binary16 (round to nearest even)
// and encodes it.
func (w *Writer) Float16(value float32) {
	w.Uint16(float16.Fromfloat32(value).Bits())
}

// Float32 encodes an IEEE 754 binary32 value.
func (w *Writer) Float32(value float32) {
	w.Uint32(math.Float32bits(value))
}

// String encodes value as UTF-8 followed by a 0x00 terminator. Invalid
// UTF-8 and embedded NUL bytes record [ErrMalformedString] and write
// nothing.
func (w *Writer) String(value string) {
	if w.err != nil {
		return
	}
	if !utf8.ValidString(value) {
		w.err = fmt.Errorf("%w: invalid UTF-8 in %q", ErrMalformedString, value)
		return
	}
	if strings.IndexByte(value, 0) >= 0 {
		w.err = fmt.Errorf("%w: embedded NUL in %q", ErrMalformedString, value)
		return
	}
	span := w.reserve(len(value) + 1)
	if span == nil {
		return
	}
	copy(span, value)
	span[len(value)] = 0
}

// WriteSlice copies src into the region.
func (w *Writer) WriteSlice(src []byte) {
	if span := w.reserve(len(src)); span != nil {
		copy(span, src)
	}
}
