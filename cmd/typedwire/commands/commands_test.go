// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
)

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}

func TestCommandTree(t *testing.T) {
	root := Root()
	seen := make(map[string]bool)
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if seen[name] {
			t.Errorf("%s: duplicate command", name)
		}
		seen[name] = true
		if command != root && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither Run nor Subcommands", name)
		}
		// Building the flag set panics on a malformed params struct.
		if command.Params != nil {
			cli.FlagsFromParams(command.Name, command.Params())
		}
	})

	for _, want := range []string{
		"typedwire encode",
		"typedwire decode",
		"typedwire measure",
		"typedwire layout",
		"typedwire fingerprint",
		"typedwire version",
	} {
		if !seen[want] {
			t.Errorf("command tree missing %q", want)
		}
	}
}

func TestRootSuggestsCommands(t *testing.T) {
	err := Root().Execute([]string{"fingreprint"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "fingerprint"`) {
		t.Errorf("error = %q, want suggestion for fingerprint", err.Error())
	}
}
