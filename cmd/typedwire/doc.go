// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Typedwire encodes, decodes, and inspects binary data described by
// schema documents. It provides subcommands for value conversion
// (encode, decode), size analysis (measure, layout), and schema
// compatibility checks (fingerprint).
package main
