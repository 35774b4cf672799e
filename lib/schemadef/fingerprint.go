// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/typedwire/lib/codec"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying a schema's wire
// layout and byte order.
type Fingerprint [32]byte

// fingerprintDomainKey is the BLAKE3 key for schema fingerprints: the
// ASCII domain name, zero-padded to 32 bytes. Changing it changes
// every fingerprint.
var fingerprintDomainKey = [32]byte{
	't', 'y', 'p', 'e', 'd', 'w', 'i', 'r', 'e', '.', 's', 'c', 'h', 'e', 'm', 'a',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// String returns the hex encoding of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, for display.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:6])
}

// ParseFingerprint parses a 64-character hex string.
func ParseFingerprint(text string) (Fingerprint, error) {
	var fingerprint Fingerprint
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return fingerprint, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(fingerprint) {
		return fingerprint, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(fingerprint))
	}
	copy(fingerprint[:], decoded)
	return fingerprint, nil
}

// canonicalBytes renders a canonical schema tree and byte order as
// deterministic CBOR.
func canonicalBytes(canonical any, endian wire.Endian) ([]byte, error) {
	data, err := codec.Marshal([]any{endian.String(), canonical})
	if err != nil {
		return nil, fmt.Errorf("encoding canonical schema: %w", err)
	}
	return data, nil
}

func computeFingerprint(canonical any, endian wire.Endian) (Fingerprint, error) {
	data, err := canonicalBytes(canonical, endian)
	if err != nil {
		return Fingerprint{}, err
	}
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("schemadef: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}
