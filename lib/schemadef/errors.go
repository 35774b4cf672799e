// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Error is a problem at a specific position in a schema document.
// Line and Column are 1-based.
type Error struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d, column %d: %s: %v", e.Line, e.Column, e.Message, e.Err)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func errorAt(node *yaml.Node, format string, args ...any) *Error {
	return &Error{Line: node.Line, Column: node.Column, Message: fmt.Sprintf(format, args...)}
}

func wrapAt(node *yaml.Node, err error, format string, args ...any) *Error {
	return &Error{Line: node.Line, Column: node.Column, Message: fmt.Sprintf(format, args...), Err: err}
}
