// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapped exposes a file's contents as a read-only byte slice.
// On Linux and macOS the file is memory-mapped, so decoding a large
// capture reads only the pages the schema touches; elsewhere the file
// is read into memory.
//
// Access the bytes through [File.View], which converts a page fault on
// the mapping (the file was truncated underneath it, or the storage
// failed) into an error instead of a crash.
package mapped
