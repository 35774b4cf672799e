// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedReference matches [*UnresolvedReferenceError].
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrArity matches [*ArityError].
	ErrArity = errors.New("arity mismatch")

	// ErrUnknownSubtype matches [*UnknownSubtypeError].
	ErrUnknownSubtype = errors.New("unknown subtype")

	// ErrValueType matches [*ValueTypeError].
	ErrValueType = errors.New("value type mismatch")

	// ErrTooManyElements reports a dynamic array of zero-width elements
	// whose count exceeds [MaxZeroWidthElements].
	ErrTooManyElements = errors.New("too many elements")
)

// UnresolvedReferenceError reports a reference placeholder that was used
// outside the keyed builder that created it, or whose key has no
// registration.
type UnresolvedReferenceError struct {
	Key string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference to key %q", e.Key)
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// ArityError reports a fixed-length schema given a value with the wrong
// number of elements (or bytes, for chars).
type ArityError struct {
	Schema string
	Want   int
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d elements, got %d", e.Schema, e.Want, e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// UnknownSubtypeError reports a tagged-union discriminant with no
// registered variant.
type UnknownSubtypeError struct {
	Key   string
	Valid []string
}

func (e *UnknownSubtypeError) Error() string {
	return fmt.Sprintf("unknown subtype %s, expected one of [%s]", e.Key, strings.Join(e.Valid, ", "))
}

func (e *UnknownSubtypeError) Is(target error) bool {
	return target == ErrUnknownSubtype
}

// ValueTypeError reports a value whose Go type the schema cannot encode.
type ValueTypeError struct {
	Schema string
	Value  any
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("%s: cannot encode %T (%v)", e.Schema, e.Value, e.Value)
}

func (e *ValueTypeError) Is(target error) bool {
	return target == ErrValueType
}
