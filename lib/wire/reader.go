// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/x448/float16"
)

// Option configures a [Reader] or [Writer].
type Option func(*options)

type options struct {
	endian Endian
	offset int
}

// WithEndian sets the byte order for multi-byte numeric operations.
// The default is [HostEndian].
func WithEndian(endian Endian) Option {
	return func(o *options) { o.endian = endian }
}

// WithOffset sets the starting cursor position. The default is 0.
func WithOffset(offset int) Option {
	return func(o *options) { o.offset = offset }
}

func applyOptions(opts []Option) options {
	resolved := options{endian: HostEndian}
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}

// Reader decodes primitive values from a byte region.
type Reader struct {
	buf    []byte
	offset int
	endian Endian
	order  binary.ByteOrder
	err    error
}

// NewReader returns a Reader over buf. An out-of-range [WithOffset]
// puts the reader into the error state immediately.
func NewReader(buf []byte, opts ...Option) *Reader {
	resolved := applyOptions(opts)
	r := &Reader{
		buf:    buf,
		endian: resolved.endian,
		order:  resolved.endian.ByteOrder(),
	}
	r.SeekTo(resolved.offset)
	return r
}

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error { return r.err }

// Endian returns the reader's byte order.
func (r *Reader) Endian() Endian { return r.endian }

// Offset returns the current cursor position in bytes from the start
// of the region.
func (r *Reader) Offset() int { return r.offset }

// Remaining returns the number of bytes between the cursor and the end
// of the region.
func (r *Reader) Remaining() int { return len(r.buf) - r.offset }

// SeekTo moves the cursor to an absolute position. Positions outside
// [0, len(region)] record [ErrShortBuffer].
func (r *Reader) SeekTo(offset int) {
	if r.err != nil {
		return
	}
	if offset < 0 || offset > len(r.buf) {
		r.err = fmt.Errorf("%w: seek to %d in %d-byte region", ErrShortBuffer, offset, len(r.buf))
		return
	}
	r.offset = offset
}

// SkipBytes moves the cursor forward (or backward, for negative
// counts) relative to its current position.
func (r *Reader) SkipBytes(count int) {
	r.SeekTo(r.offset + count)
}

// take returns the next n bytes and advances past them, or records
// ErrShortBuffer and returns nil.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf)-r.offset < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrShortBuffer, n, r.offset, len(r.buf)-r.offset)
		return nil
	}
	span := r.buf[r.offset : r.offset+n]
	r.offset += n
	return span
}

// Bool decodes one byte; any nonzero value is true.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Int8 decodes a signed 8-bit integer.
func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

// Uint8 decodes an unsigned 8-bit integer.
func (r *Reader) Uint8() uint8 {
	span := r.take(1)
	if span == nil {
		return 0
	}
	return span[0]
}

// Int16 decodes a signed 16-bit integer.
func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

// Uint16 decodes an unsigned 16-bit integer.
func (r *Reader) Uint16() uint16 {
	span := r.take(2)
	if span == nil {
		return 0
	}
	return r.order.Uint16(span)
}

// Int32 decodes a signed 32-bit integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Uint32 decodes an unsigned 32-bit integer.
func (r *Reader) Uint32() uint32 {
	span := r.take(4)
	if span == nil {
		return 0
	}
	return r.order.Uint32(span)
}

// Float16 decodes an IEEE 754 binary16 value and widens it to float32.
// Zero, subnormals, infinities and NaN survive the conversion.
func (r *Reader) Float16() float32 {
	return float16.Frombits(r.Uint16()).Float32()
}

// Float32 decodes an IEEE 754 binary32 value.
func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// String decodes a NUL-terminated UTF-8 string. The cursor advances
// past the terminator.
func (r *Reader) String() string {
	if r.err != nil {
		return ""
	}
	rest := r.buf[r.offset:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		r.err = fmt.Errorf("%w: no terminator after offset %d", ErrUnterminatedString, r.offset)
		return ""
	}
	if !utf8.Valid(rest[:end]) {
		r.err = fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrMalformedString, r.offset)
		return ""
	}
	value := string(rest[:end])
	r.offset += end + 1
	return value
}

// ReadSlice copies len(dst) bytes from the region into dst.
func (r *Reader) ReadSlice(dst []byte) {
	span := r.take(len(dst))
	if span == nil {
		return
	}
	copy(dst, span)
}
