// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// Property is a named field of an [ObjectSchema].
type Property struct {
	Name   string
	Schema Schema
}

// Prop pairs a property name with its schema.
func Prop(name string, schema Schema) Property {
	return Property{Name: name, Schema: schema}
}

// ObjectSchema encodes a map[string]any as its properties in
// declaration order. Property order is the wire format; it is never
// derived from the value.
type ObjectSchema struct {
	props []Property
	index map[string]int
}

// Object returns a struct schema with the given properties in wire
// order. Panics on an empty or duplicate property name or a nil schema.
func Object(props ...Property) *ObjectSchema {
	object := &ObjectSchema{
		props: make([]Property, 0, len(props)),
		index: make(map[string]int, len(props)),
	}
	for _, prop := range props {
		if prop.Name == "" {
			panic("wireschema.Object: empty property name")
		}
		if prop.Schema == nil {
			panic(fmt.Sprintf("wireschema.Object: property %q has nil schema", prop.Name))
		}
		if _, exists := object.index[prop.Name]; exists {
			panic(fmt.Sprintf("wireschema.Object: duplicate property %q", prop.Name))
		}
		object.index[prop.Name] = len(object.props)
		object.props = append(object.props, prop)
	}
	return object
}

// Concat returns an object whose properties are those of each argument
// in turn. Panics if two arguments declare the same property.
func Concat(objects ...*ObjectSchema) *ObjectSchema {
	var props []Property
	for _, object := range objects {
		props = append(props, object.props...)
	}
	return Object(props...)
}

// Properties returns a copy of the properties in wire order.
func (s *ObjectSchema) Properties() []Property {
	return append([]Property(nil), s.props...)
}

// Property returns the schema of the named property.
func (s *ObjectSchema) Property(name string) (Schema, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.props[i].Schema, true
}

func (s *ObjectSchema) String() string { return fmt.Sprintf("object{%d}", len(s.props)) }

func (s *ObjectSchema) Write(w *wire.Writer, value any) error {
	fields, ok := properties(value)
	if !ok {
		return &ValueTypeError{Schema: s.String(), Value: value}
	}
	return s.writeProperties(w, fields)
}

func (s *ObjectSchema) writeProperties(w *wire.Writer, fields map[string]any) error {
	for _, prop := range s.props {
		if err := prop.Schema.Write(w, fields[prop.Name]); err != nil {
			return fmt.Errorf("property %q: %w", prop.Name, err)
		}
	}
	return nil
}

func (s *ObjectSchema) Read(r *wire.Reader) (any, error) {
	fields := make(map[string]any, len(s.props))
	if err := s.readProperties(r, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *ObjectSchema) readProperties(r *wire.Reader, into map[string]any) error {
	for _, prop := range s.props {
		value, err := prop.Schema.Read(r)
		if err != nil {
			return fmt.Errorf("property %q: %w", prop.Name, err)
		}
		into[prop.Name] = value
	}
	return nil
}

func (s *ObjectSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	return s.measureProperties(value, orNew(m), len(s.props))
}

// measureProperties measures the first count properties of value (a
// property map or MaxValue).
func (s *ObjectSchema) measureProperties(value any, m *measure.Measurer, count int) *measure.Measurer {
	worstCase := isMaxValue(value)
	fields, _ := properties(value)
	for _, prop := range s.props[:count] {
		if worstCase {
			m = prop.Schema.Measure(MaxValue, m)
		} else {
			m = prop.Schema.Measure(fields[prop.Name], m)
		}
	}
	return m
}

// SeekProperty returns the byte offset of the named property within an
// encoded instance of value (or of the worst-case instance, for
// [MaxValue]) by summing the sizes of the properties declared before
// it. It returns false for an unknown property or when a preceding
// property has no bounded size.
func (s *ObjectSchema) SeekProperty(value any, name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.measureProperties(value, measure.New(), i).Bounded()
}

func (s *ObjectSchema) resolve(r *resolver) (Schema, error) {
	return s.resolveObject(r)
}

func (s *ObjectSchema) resolveObject(r *resolver) (*ObjectSchema, error) {
	props := make([]Property, len(s.props))
	for i, prop := range s.props {
		resolved, err := prop.Schema.resolve(r)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		props[i] = Property{Name: prop.Name, Schema: resolved}
	}
	return &ObjectSchema{props: props, index: s.index}, nil
}
