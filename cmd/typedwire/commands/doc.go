// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete typedwire command tree. The
// binary in cmd/typedwire executes it; tests walk it to check that
// every command is wired.
package commands
