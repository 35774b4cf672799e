// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/config"
	"github.com/bureau-foundation/typedwire/lib/schemadef"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

type decodeParams struct {
	schemaParams
	Hex     bool   `json:"hex"     flag:"hex,x"     desc:"treat input as hex text"`
	Offset  int    `json:"offset"  flag:"offset"    desc:"byte offset at which the value starts"`
	Strict  bool   `json:"strict"  flag:"strict"    desc:"exit with status 2 when bytes follow the value"`
	Output  string `json:"output"  flag:"output,o"  desc:"json, cbor, or diag (default from config, else json)"`
	Compact bool   `json:"compact" flag:"compact,c" desc:"compact JSON output (no indentation)"`
	Color   string `json:"color"   flag:"color"     desc:"JSON highlighting: auto, always, or never (default from config, else auto)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode binary input to JSON, CBOR, or diagnostic notation",
		Description: `Read one value encoded under the schema and write it out.

Input is the file argument, which is memory-mapped rather than copied,
or stdin. With --hex the input is hex text; whitespace is ignored.
--offset starts decoding part way into the input, for values embedded
in a larger buffer.

Bytes after the value are ignored unless --strict is set, in which
case the value is still written and the command exits with status 2.

Output is JSON by default, highlighted when stdout is a terminal.
Byte arrays are written as arrays of numbers. --output cbor writes
deterministic CBOR, and --output diag writes CBOR diagnostic notation,
which shows integer and float widths.`,
		Usage: "typedwire decode --schema FILE [flags] [binary-file]",
		Examples: []cli.Example{
			{
				Description: "Decode a binary file to JSON",
				Command:     "typedwire decode -s spikey.yaml spikey.bin",
			},
			{
				Description: "Decode hex text, rejecting trailing bytes",
				Command:     "echo '05 00 00 00' | typedwire decode -s count.yaml --hex --strict",
			},
			{
				Description: "Decode a record 64 bytes into a file as diagnostic notation",
				Command:     "typedwire decode -s record.yaml --offset 64 -o diag capture.bin",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runDecode(&params, args, standardStreams(), logger)
		},
	}
}

func runDecode(params *decodeParams, args []string, std streams, logger *slog.Logger) error {
	session, err := params.load("decode", logger)
	if err != nil {
		return err
	}

	options := outputOptions{
		format:  session.config.Output,
		compact: params.Compact,
	}
	if params.Output != "" {
		options.format = config.Output(params.Output)
	}
	if !slices.Contains([]config.Output{config.OutputJSON, config.OutputCBOR, config.OutputDiag}, options.format) {
		return cli.Validation("unknown output format %q (want json, cbor, or diag)", options.format)
	}
	colorMode := session.config.Color
	if params.Color != "" {
		colorMode = config.ColorMode(params.Color)
	}
	if !slices.Contains([]config.ColorMode{config.ColorAuto, config.ColorAlways, config.ColorNever}, colorMode) {
		return cli.Validation("unknown color mode %q (want auto, always, or never)", colorMode)
	}
	options.color = colorEnabled(colorMode, std.stdout)

	return withInput(args, std.stdin, func(data []byte) error {
		if params.Hex {
			decoded, err := decodeHexInput(data)
			if err != nil {
				return err
			}
			data = decoded
		}

		value, trailing, err := decodeValue(session.definition, data, params.Offset)
		if err != nil {
			return err
		}
		session.logger.Debug("value decoded",
			"offset", params.Offset,
			"bytes", len(data)-params.Offset-trailing,
			"trailing", trailing,
		)

		if err := writeValue(std.stdout, value, options); err != nil {
			return err
		}
		if trailing > 0 && params.Strict {
			fmt.Fprintf(std.stderr, "%d trailing bytes after the value\n", trailing)
			return &cli.ExitError{Code: 2}
		}
		return nil
	})
}

// decodeValue reads one value starting at offset and returns it with
// the count of bytes left after it.
func decodeValue(definition *schemadef.Definition, data []byte, offset int) (any, int, error) {
	if offset < 0 || offset > len(data) {
		return nil, 0, cli.Validation("--offset %d is outside the %d-byte input", offset, len(data))
	}
	reader := wire.NewReader(data, wire.WithEndian(definition.Endian), wire.WithOffset(offset))
	value, err := definition.Schema.Read(reader)
	if err != nil {
		return nil, 0, cli.Validation("decode at offset %d: %w", offset, err)
	}
	return value, reader.Remaining(), nil
}
