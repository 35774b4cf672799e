// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/wireschema"
)

type measureParams struct {
	schemaParams
	cli.JSONOutput
	Max   bool   `json:"max"   flag:"max"     desc:"report the worst-case size over all values instead of measuring one"`
	Input string `json:"input" flag:"input,i" desc:"value format: json (comments allowed) or cbor" default:"json"`
}

// measureResult is the --json output of measure.
type measureResult struct {
	Fingerprint string `json:"fingerprint"`
	WorstCase   bool   `json:"worst_case"`
	Bounded     bool   `json:"bounded"`
	Size        *int   `json:"size,omitempty"`
}

func measureCommand() *cli.Command {
	var params measureParams

	return &cli.Command{
		Name:    "measure",
		Summary: "Print the encoded size of a value, or the worst case",
		Description: `Print how many bytes a value occupies when encoded under the schema.

The value is read from the file argument, or stdin, in the same formats
"typedwire encode" accepts.

With --max no value is read: the command prints the largest size any
value can encode to. Schemas whose size grows with the value (strings,
dynamic arrays, recursive keyed schemas) print "unbounded".`,
		Usage: "typedwire measure --schema FILE [flags] [value-file]",
		Examples: []cli.Example{
			{
				Description: "Size of a value",
				Command:     "typedwire measure -s spikey.yaml spikey.json",
			},
			{
				Description: "Worst-case size, to size a fixed buffer",
				Command:     "typedwire measure -s header.yaml --max",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runMeasure(&params, args, standardStreams(), logger)
		},
	}
}

func runMeasure(params *measureParams, args []string, std streams, logger *slog.Logger) error {
	session, err := params.load("measure", logger)
	if err != nil {
		return err
	}

	report := func(value any) error {
		result := measureResult{
			Fingerprint: session.definition.Fingerprint.String(),
			WorstCase:   params.Max,
		}
		// The size of a value the schema rejects is meaningless.
		if !params.Max {
			if _, err := wireschema.Encode(session.definition.Schema, value, session.definition.Endian); err != nil {
				return cli.Validation("value does not match the schema: %w", err)
			}
		}
		if size, ok := wireschema.SizeOf(session.definition.Schema, value); ok {
			result.Bounded = true
			result.Size = &size
		}
		session.logger.Debug("value measured", "worst_case", result.WorstCase, "bounded", result.Bounded)

		if done, err := params.EmitJSON(std.stdout, result); done {
			return err
		}
		if !result.Bounded {
			_, err := fmt.Fprintln(std.stdout, "unbounded")
			return err
		}
		_, err := fmt.Fprintln(std.stdout, *result.Size)
		return err
	}

	if params.Max {
		if len(args) > 0 {
			return cli.Validation("--max takes no value input, got %q", args[0])
		}
		return report(wireschema.MaxValue)
	}
	return withInput(args, std.stdin, func(data []byte) error {
		value, err := parseValue(data, params.Input)
		if err != nil {
			return err
		}
		return report(value)
	})
}
