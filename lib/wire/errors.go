// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

var (
	// ErrShortBuffer is recorded when an operation needs more bytes
	// than remain between the cursor and the end of the region, or
	// when a seek targets a position outside the region.
	ErrShortBuffer = errors.New("wire: short buffer")

	// ErrMalformedString is recorded when string bytes are not valid
	// UTF-8, or when a string to be written contains a NUL byte (which
	// would terminate it early on the wire).
	ErrMalformedString = errors.New("wire: malformed string")

	// ErrUnterminatedString is recorded when a string read reaches the
	// end of the region without finding the 0x00 terminator.
	ErrUnterminatedString = errors.New("wire: unterminated string")
)
