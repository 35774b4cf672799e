// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/codec"
	"github.com/bureau-foundation/typedwire/lib/schemadef"
)

type fingerprintParams struct {
	schemaParams
	cli.JSONOutput
	Short     bool   `json:"short"     flag:"short"     desc:"print the 12-character prefix only"`
	Canonical bool   `json:"canonical" flag:"canonical" desc:"also print the canonical form, in CBOR diagnostic notation"`
	Expect    string `json:"expect"    flag:"expect"    desc:"exit with status 1 unless the fingerprint equals this hex value"`
}

// fingerprintResult is the --json output of fingerprint.
type fingerprintResult struct {
	Fingerprint string `json:"fingerprint"`
	Endian      string `json:"endian"`
	Path        string `json:"path"`
	Canonical   string `json:"canonical,omitempty"`
	Match       *bool  `json:"match,omitempty"`
}

func fingerprintCommand() *cli.Command {
	var params fingerprintParams

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the schema's wire-compatibility fingerprint",
		Description: `Print a BLAKE3 fingerprint of the schema's wire layout and byte order.

Two documents share a fingerprint exactly when they describe the same
bytes on the wire: the document format (YAML or JSONC), comments,
layout, the byte alias for u8, and the order union variants are listed
in do not matter. Property order, names, lengths, and byte order do.

With --expect the command compares against a known fingerprint and
exits with status 1 on a mismatch, for use in build checks.`,
		Usage: "typedwire fingerprint --schema FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Print a schema's fingerprint",
				Command:     "typedwire fingerprint -s spikey.yaml",
			},
			{
				Description: "Check two peers agree on the layout",
				Command:     "typedwire fingerprint -s spikey.yaml --expect $(typedwire fingerprint -s peer/spikey.jsonc)",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runFingerprint(&params, args, standardStreams(), logger)
		},
	}
}

func runFingerprint(params *fingerprintParams, args []string, std streams, logger *slog.Logger) error {
	if len(args) > 0 {
		return cli.Validation("fingerprint takes no positional arguments, got %q", args[0])
	}
	session, err := params.load("fingerprint", logger)
	if err != nil {
		return err
	}
	definition := session.definition

	result := fingerprintResult{
		Fingerprint: definition.Fingerprint.String(),
		Endian:      definition.Endian.String(),
		Path:        session.path,
	}
	if params.Short {
		result.Fingerprint = definition.Fingerprint.Short()
	}
	if params.Canonical {
		canonical, err := definition.Canonical()
		if err != nil {
			return cli.Internal("%w", err)
		}
		result.Canonical, err = codec.Diagnose(canonical)
		if err != nil {
			return cli.Internal("diagnose canonical form: %w", err)
		}
	}
	if params.Expect != "" {
		expected, err := schemadef.ParseFingerprint(params.Expect)
		if err != nil {
			return cli.Validation("--expect: %w", err)
		}
		match := expected == definition.Fingerprint
		result.Match = &match
	}

	done, err := params.EmitJSON(std.stdout, result)
	if err != nil {
		return err
	}
	if !done {
		fmt.Fprintln(std.stdout, result.Fingerprint)
		if result.Canonical != "" {
			fmt.Fprintln(std.stdout, result.Canonical)
		}
	}

	if result.Match != nil && !*result.Match {
		fmt.Fprintf(std.stderr, "fingerprint mismatch: got %s, want %s\n", definition.Fingerprint, params.Expect)
		return &cli.ExitError{Code: 1}
	}
	return nil
}
