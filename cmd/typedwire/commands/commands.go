// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/cmd/typedwire/wirecmd"
	"github.com/bureau-foundation/typedwire/lib/version"
)

// Root builds and returns the complete typedwire command tree.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "typedwire",
		Description: `typedwire: declarative binary schemas.

Encode JSON values to a compact binary layout described by a schema
document, decode binary data back, and inspect a schema's sizes,
offsets, and compatibility fingerprint.

Schema documents are YAML or JSONC. Set TYPEDWIRE_CONFIG (or pass
--config) to name a config file with default byte order, output format,
and schema search paths.`,
		Subcommands: append(wirecmd.Commands(), versionCommand()),
		Examples: []cli.Example{
			{
				Description: "Encode a value",
				Command:     "typedwire encode -s spikey.yaml spikey.json > spikey.bin",
			},
			{
				Description: "Decode it back to JSON",
				Command:     "typedwire decode -s spikey.yaml spikey.bin",
			},
			{
				Description: "Worst-case size of any value",
				Command:     "typedwire measure -s spikey.yaml --max",
			},
			{
				Description: "Property offsets of an object schema",
				Command:     "typedwire layout -s header.yaml",
			},
			{
				Description: "Compatibility fingerprint",
				Command:     "typedwire fingerprint -s spikey.yaml",
			},
		},
	}
	return root
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if done, err := params.EmitJSON(os.Stdout, version.Current()); done {
				return err
			}
			fmt.Printf("typedwire %s\n", version.Full())
			return nil
		},
	}
}
