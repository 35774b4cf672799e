// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for typedwire packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern (select
// with time.After fallback) so that concurrency tests do not need
// direct time.After calls and a deadlocked worker fails the test
// instead of hanging it.
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
//
// This package has no typedwire-internal dependencies.
package testutil
