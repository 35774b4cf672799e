// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"unicode"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/codec"
	"github.com/bureau-foundation/typedwire/lib/mapped"
)

// withInput calls fn with the command's input: the file named by the
// only positional argument, memory-mapped, or all of stdin. fn must not
// retain data after it returns.
func withInput(args []string, stdin io.Reader, fn func(data []byte) error) error {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return cli.Internal("read stdin: %w", err)
		}
		return fn(data)
	case 1:
		file, err := mapped.Open(args[0])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cli.NotFound("%w", err)
			}
			return cli.Validation("%w", err)
		}
		defer file.Close()
		return file.View(fn)
	default:
		return cli.Validation("expected at most one input file, got %d arguments", len(args))
	}
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "05 00 00 00" or "05000000").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// Value input formats.
const (
	inputJSON = "json"
	inputCBOR = "cbor"
)

// parseValue reads one value in the given format. JSON input may carry
// comments and trailing commas; numbers are kept as json.Number so
// 32-bit integers survive exactly.
func parseValue(data []byte, format string) (any, error) {
	switch format {
	case inputJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, cli.Validation("empty input: expected a JSON value")
		}
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, cli.Validation("parse JSON value: %w", err)
		}
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return nil, cli.Validation("parse JSON value: unexpected data after the first value")
		}
		return value, nil
	case inputCBOR:
		if len(data) == 0 {
			return nil, cli.Validation("empty input: expected a CBOR value")
		}
		value, err := codec.UnmarshalValue(data)
		if err != nil {
			return nil, cli.Validation("parse CBOR value: %w", err)
		}
		return value, nil
	default:
		return nil, cli.Validation("unknown input format %q (want %s or %s)", format, inputJSON, inputCBOR)
	}
}
