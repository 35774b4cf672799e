// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Endian selects the byte order of multi-byte numeric values.
type Endian uint8

const (
	// LittleEndian stores the least significant byte first.
	LittleEndian Endian = iota
	// BigEndian stores the most significant byte first.
	BigEndian
)

// HostEndian is the byte order of the machine running this process,
// determined once at package initialization.
var HostEndian = probeHostEndian()

func probeHostEndian() Endian {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)
	if probe[0] == 0x01 {
		return BigEndian
	}
	return LittleEndian
}

// ByteOrder returns the encoding/binary byte order for e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("Endian(%d)", uint8(e))
	}
}

// ParseEndian parses "little", "big", or "host" (case-insensitive).
// The empty string is treated as "host".
func ParseEndian(name string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	case "host", "native", "":
		return HostEndian, nil
	default:
		return 0, fmt.Errorf("unknown endianness %q (want little, big, or host)", name)
	}
}
