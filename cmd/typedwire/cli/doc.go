// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the typedwire
// tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], flags bound from a tagged
// parameter struct ([FlagsFromParams]), and a Run function that receives
// a context and a scoped logger. Commands are assembled into a tree in
// cmd/typedwire/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned by commands are categorized with [ToolError]
// ([Validation], [NotFound], [Internal]). [ExitError] carries a non-zero
// exit code for commands that have already reported their own outcome.
package cli
