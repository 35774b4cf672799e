// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/wireschema"
)

type encodeParams struct {
	schemaParams
	Input string `json:"input" flag:"input,i" desc:"value format: json (comments allowed) or cbor" default:"json"`
	Hex   bool   `json:"hex"   flag:"hex,x"   desc:"write hex text instead of raw bytes"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a JSON or CBOR value to the binary format",
		Description: `Read a value and write its binary encoding under the schema.

The value is read from the file argument, or stdin. By default it is
JSON; comments and trailing commas are accepted. With --input cbor the
value is read as a single CBOR item instead.

Objects are JSON objects keyed by property name, arrays and tuples are
JSON arrays, and an absent optional is null. A union value carries its
variant key under "type".

The output buffer is sized exactly by measuring the value first.`,
		Usage: "typedwire encode --schema FILE [flags] [value-file]",
		Examples: []cli.Example{
			{
				Description: "Encode a JSON value to a binary file",
				Command:     `echo '{"name": "spikey", "position": [1, 2, 3], "age": 7}' | typedwire encode -s spikey.yaml > spikey.bin`,
			},
			{
				Description: "Show the encoding as hex",
				Command:     "typedwire encode -s spikey.yaml --hex spikey.json",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runEncode(&params, args, standardStreams(), logger)
		},
	}
}

func runEncode(params *encodeParams, args []string, std streams, logger *slog.Logger) error {
	session, err := params.load("encode", logger)
	if err != nil {
		return err
	}
	return withInput(args, std.stdin, func(data []byte) error {
		value, err := parseValue(data, params.Input)
		if err != nil {
			return err
		}
		encoded, err := wireschema.Encode(session.definition.Schema, value, session.definition.Endian)
		if err != nil {
			return cli.Validation("encode: %w", err)
		}
		session.logger.Debug("value encoded", "bytes", len(encoded))

		if params.Hex {
			_, err = fmt.Fprintln(std.stdout, hex.EncodeToString(encoded))
			return err
		}
		_, err = std.stdout.Write(encoded)
		return err
	})
}
