// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package measure provides the size accumulator that schemas report
// their encoded byte counts into.
//
// A bounded [Measurer] carries a running byte count. [Unbounded] is a
// shared sentinel: its Add and Fork return the sentinel itself, so once
// any part of a measurement goes unbounded (a string or dynamic array
// measured for its worst case) the whole measurement stays unbounded.
//
// Measurers are cheap value holders, not buffers. [Measurer.Fork]
// copies the running total so alternative branches can be explored
// without touching the parent.
package measure

import "fmt"

// Measurer accumulates an encoded byte count.
type Measurer struct {
	size      int
	unbounded bool
}

// Unbounded is the sentinel for sizes with no upper limit.
var Unbounded = &Measurer{unbounded: true}

// New returns a bounded Measurer starting at zero.
func New() *Measurer {
	return &Measurer{}
}

// Add increases the count by n bytes and returns the receiver.
func (m *Measurer) Add(n int) *Measurer {
	if m.unbounded {
		return m
	}
	m.size += n
	return m
}

// Fork returns an independent Measurer starting at the current count.
func (m *Measurer) Fork() *Measurer {
	if m.unbounded {
		return m
	}
	return &Measurer{size: m.size}
}

// IsUnbounded reports whether m is the [Unbounded] sentinel.
func (m *Measurer) IsUnbounded() bool {
	return m.unbounded
}

// Size returns the accumulated byte count, or -1 when unbounded.
func (m *Measurer) Size() int {
	if m.unbounded {
		return -1
	}
	return m.size
}

// Bounded returns the byte count and true, or 0 and false when
// unbounded.
func (m *Measurer) Bounded() (int, bool) {
	if m.unbounded {
		return 0, false
	}
	return m.size, true
}

func (m *Measurer) String() string {
	if m.unbounded {
		return "unbounded"
	}
	return fmt.Sprintf("%d bytes", m.size)
}

// Larger returns whichever of a and b holds more bytes. Unbounded wins
// over any bounded size; on a tie a is returned.
func Larger(a, b *Measurer) *Measurer {
	if a.unbounded {
		return a
	}
	if b.unbounded || b.size > a.size {
		return b
	}
	return a
}
