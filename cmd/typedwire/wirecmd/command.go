// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"io"
	"os"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
)

// Commands returns the schema-driven commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		encodeCommand(),
		decodeCommand(),
		measureCommand(),
		layoutCommand(),
		fingerprintCommand(),
	}
}

// streams are the standard streams a command reads and writes. Tests
// substitute buffers.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func standardStreams() streams {
	return streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}
