// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// TypeKey is the property that carries a tagged union's discriminant in
// encoded and decoded values.
const TypeKey = "type"

// Discriminant is the set of discriminant types: string tags encode as
// NUL-terminated strings, uint8 tags as a single byte.
type Discriminant interface {
	string | uint8
}

// UnionSchema encodes one of several variants that share base
// properties. The wire layout is the discriminant, then the base
// properties, then the selected variant's properties.
type UnionSchema[K Discriminant] struct {
	base     *ObjectSchema
	variants map[K]*ObjectSchema
	keys     []K
}

// Union returns a tagged union with a string discriminant. A nil base
// means no shared properties. Panics if a property is named "type" or a
// variant redeclares a base property.
func Union(base *ObjectSchema, variants map[string]*ObjectSchema) *UnionSchema[string] {
	return newUnion(base, variants)
}

// EnumUnion returns a tagged union with a one-byte discriminant.
func EnumUnion(base *ObjectSchema, variants map[uint8]*ObjectSchema) *UnionSchema[uint8] {
	return newUnion(base, variants)
}

// newUnion panics when a base or variant property is named [TypeKey],
// or when a variant redeclares a base property.
func newUnion[K Discriminant](base *ObjectSchema, variants map[K]*ObjectSchema) *UnionSchema[K] {
	if base == nil {
		base = Object()
	}
	if _, exists := base.index[TypeKey]; exists {
		panic(fmt.Sprintf("wireschema.Union: base property %q is reserved for the discriminant", TypeKey))
	}
	union := &UnionSchema[K]{
		base:     base,
		variants: make(map[K]*ObjectSchema, len(variants)),
	}
	for key, variant := range variants {
		if variant == nil {
			variant = Object()
		}
		for _, prop := range variant.props {
			if prop.Name == TypeKey {
				panic(fmt.Sprintf("wireschema.Union: variant %v property %q is reserved for the discriminant", key, TypeKey))
			}
			if _, exists := base.index[prop.Name]; exists {
				panic(fmt.Sprintf("wireschema.Union: variant %v redeclares base property %q", key, prop.Name))
			}
		}
		union.variants[key] = variant
		union.keys = append(union.keys, key)
	}
	slices.Sort(union.keys)
	return union
}

// Base returns the shared properties.
func (s *UnionSchema[K]) Base() *ObjectSchema { return s.base }

// Keys returns the discriminants in ascending order.
func (s *UnionSchema[K]) Keys() []K { return slices.Clone(s.keys) }

// Variant returns the extension properties for key.
func (s *UnionSchema[K]) Variant(key K) (*ObjectSchema, bool) {
	variant, ok := s.variants[key]
	return variant, ok
}

func (s *UnionSchema[K]) String() string {
	var zero K
	if _, ok := any(zero).(string); ok {
		return "union"
	}
	return "enumUnion"
}

func (s *UnionSchema[K]) unknown(key any) *UnknownSubtypeError {
	valid := make([]string, len(s.keys))
	for i, k := range s.keys {
		valid[i] = fmt.Sprintf("%v", k)
	}
	return &UnknownSubtypeError{Key: fmt.Sprintf("%v", key), Valid: valid}
}

// discriminantOf extracts the discriminant from a value's type field.
func (s *UnionSchema[K]) discriminantOf(raw any) (K, bool) {
	var zero K
	switch any(zero).(type) {
	case string:
		text, ok := raw.(string)
		if !ok {
			return zero, false
		}
		return any(text).(K), true
	default:
		integer, ok := toInt64(raw)
		if !ok || integer < 0 || integer > 255 {
			return zero, false
		}
		return any(uint8(integer)).(K), true
	}
}

func writeDiscriminant[K Discriminant](w *wire.Writer, key K) {
	switch k := any(key).(type) {
	case string:
		w.String(k)
	case uint8:
		w.Uint8(k)
	}
}

func readDiscriminant[K Discriminant](r *wire.Reader) K {
	var key K
	switch any(key).(type) {
	case string:
		key = any(r.String()).(K)
	case uint8:
		key = any(r.Uint8()).(K)
	}
	return key
}

func discriminantSize[K Discriminant](key K) int {
	if text, ok := any(key).(string); ok {
		return len(text) + 1
	}
	return 1
}

func (s *UnionSchema[K]) Write(w *wire.Writer, value any) error {
	fields, ok := properties(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	raw := fields[TypeKey]
	key, ok := s.discriminantOf(raw)
	if !ok {
		return s.unknown(raw)
	}
	variant, ok := s.variants[key]
	if !ok {
		return s.unknown(key)
	}

	writeDiscriminant(w, key)
	if err := w.Err(); err != nil {
		return err
	}
	if err := s.base.writeProperties(w, fields); err != nil {
		return err
	}
	if err := variant.writeProperties(w, fields); err != nil {
		return fmt.Errorf("variant %v: %w", key, err)
	}
	return nil
}

func (s *UnionSchema[K]) Read(r *wire.Reader) (any, error) {
	key := readDiscriminant[K](r)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s discriminant: %w", s, err)
	}
	variant, ok := s.variants[key]
	if !ok {
		return nil, s.unknown(key)
	}

	fields := make(map[string]any, len(s.base.props)+len(variant.props)+1)
	if err := s.base.readProperties(r, fields); err != nil {
		return nil, err
	}
	fields[TypeKey] = key
	if err := variant.readProperties(r, fields); err != nil {
		return nil, fmt.Errorf("variant %v: %w", key, err)
	}
	return fields, nil
}

// Measure sums the discriminant, base, and variant sizes. For
// [MaxValue], a string-tagged union is unbounded; an enum union reports
// the base size, one tag byte, and the largest variant. Each candidate
// variant is measured on its own fork. When several variants tie for
// the largest size the lowest discriminant is chosen.
func (s *UnionSchema[K]) Measure(value any, m *measure.Measurer) *measure.Measurer {
	m = orNew(m)
	var zero K
	if isMaxValue(value) {
		if _, ok := any(zero).(string); ok {
			return measure.Unbounded
		}
		m = s.base.Measure(MaxValue, m.Add(1))
		var largest *measure.Measurer
		for _, key := range s.keys {
			candidate := s.variants[key].Measure(MaxValue, m.Fork())
			if largest == nil {
				largest = candidate
				continue
			}
			largest = measure.Larger(largest, candidate)
		}
		if largest == nil {
			return m
		}
		return largest
	}

	fields, _ := properties(value)
	key, ok := s.discriminantOf(fields[TypeKey])
	if !ok {
		return s.base.Measure(value, m)
	}
	m = s.base.Measure(value, m.Add(discriminantSize(key)))
	if variant, ok := s.variants[key]; ok {
		m = variant.Measure(value, m)
	}
	return m
}

func (s *UnionSchema[K]) resolve(r *resolver) (Schema, error) {
	base, err := s.base.resolveObject(r)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	variants := make(map[K]*ObjectSchema, len(s.variants))
	for _, key := range s.keys {
		variant, err := s.variants[key].resolveObject(r)
		if err != nil {
			return nil, fmt.Errorf("variant %v: %w", key, err)
		}
		variants[key] = variant
	}
	return &UnionSchema[K]{base: base, variants: variants, keys: s.keys}, nil
}
