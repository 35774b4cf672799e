// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the byte-level reader and writer that the
// schema engine encodes into and decodes from.
//
// A [Reader] or [Writer] is bound to a caller-owned contiguous byte
// region, a starting offset, and an [Endian]. Each primitive operation
// moves the cursor by exactly the width of the value it handles:
//
//   - Bool, Int8, Uint8: 1 byte (bools decode nonzero as true)
//   - Int16, Uint16, Float16: 2 bytes
//   - Int32, Uint32, Float32: 4 bytes
//   - String: UTF-8 bytes followed by a single 0x00 terminator
//   - ReadSlice / WriteSlice: a raw copy of the given length
//
// Multi-byte numeric operations honor the configured endianness.
// Strings and raw copies are endianness-agnostic. Float16 uses the
// IEEE 754 binary16 layout (1 sign bit, 5 exponent bits with bias 15,
// 10 mantissa bits), converted through github.com/x448/float16.
//
// Errors are sticky. The first failure (running off the end of the
// region, an unterminated or malformed string) is recorded, every
// later operation becomes a no-op that returns the zero value, and
// [Reader.Err] / [Writer.Err] report the recorded failure. Callers
// check the error once after a group of operations, or after each
// operation when they want to attach context.
//
// Readers and writers own a single cursor and are not safe for
// concurrent use. Each encode or decode call should construct its own.
//
// [HostEndian] is probed once at package initialization. It is the
// default when no [WithEndian] option is given; callers that exchange
// bytes with other machines should pass an explicit endianness, since
// two instances with different byte orders are not wire-compatible.
package wire
