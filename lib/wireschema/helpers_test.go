// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"reflect"
	"testing"

	"github.com/bureau-foundation/typedwire/lib/wire"
)

// encode writes value into a buffer sized by Measure and checks that
// the writer filled it exactly.
func encode(t *testing.T, s Schema, value any, endian wire.Endian) []byte {
	t.Helper()
	size, ok := SizeOf(s, value)
	if !ok {
		t.Fatalf("Measure(%v) is unbounded", value)
	}
	buf := make([]byte, size)
	w := wire.NewWriter(buf, wire.WithEndian(endian))
	if err := s.Write(w, value); err != nil {
		t.Fatalf("Write(%v): %v", value, err)
	}
	if w.Offset() != size {
		t.Fatalf("Measure = %d bytes, Write produced %d", size, w.Offset())
	}
	return buf
}

// roundtrip encodes value, decodes it again, and requires the decoded
// value to deep-equal want and the whole buffer to be consumed.
func roundtrip(t *testing.T, s Schema, value, want any) []byte {
	t.Helper()
	var encoded []byte
	for _, endian := range []wire.Endian{wire.LittleEndian, wire.BigEndian} {
		buf := encode(t, s, value, endian)
		r := wire.NewReader(buf, wire.WithEndian(endian))
		got, err := s.Read(r)
		if err != nil {
			t.Fatalf("Read (%v): %v", endian, err)
		}
		if r.Remaining() != 0 {
			t.Errorf("Read (%v) left %d bytes unconsumed", endian, r.Remaining())
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("roundtrip (%v) = %#v, want %#v", endian, got, want)
		}
		if endian == wire.LittleEndian {
			encoded = buf
		}
	}
	return encoded
}
