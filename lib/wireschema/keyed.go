// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"fmt"

	"github.com/bureau-foundation/typedwire/lib/measure"
	"github.com/bureau-foundation/typedwire/lib/wire"
)

// KeyedSchema is a schema that may refer to itself through a symbolic
// key. It is built by [Keyed] and fully resolved on return, unless it
// refers to an enclosing Keyed schema that is still being built; then
// the enclosing schema resolves it.
type KeyedSchema struct {
	key   string
	inner Schema

	// binding identifies this schema's placeholders.
	binding *binding

	// deferred marks a schema built inside an enclosing builder whose
	// tree still holds placeholders of that enclosing schema. inner is
	// then the unresolved tree.
	deferred bool
}

// binding ties the placeholders handed to one Keyed builder to the
// schema they stand for.
type binding struct {
	key      string
	building bool
}

// Keyed builds a recursive schema. build is called exactly once with a
// placeholder standing for the schema being defined; the placeholder may
// appear anywhere in the returned tree (typically under [Optional],
// [DynamicArray], or a union variant, so that values stay finite).
//
// A Keyed schema built inside another builder may also use the
// placeholders of every enclosing builder, which gives mutual and
// ancestor references. Such a schema is resolved together with the
// enclosing one.
//
// After build returns, every placeholder is resolved to its schema. A
// placeholder that belongs to no enclosing builder, such as one captured
// from a Keyed call that already returned, fails with an
// [*UnresolvedReferenceError]. A tree that is nothing but its own
// placeholder is rejected.
func Keyed(key string, build func(self Schema) Schema) (*KeyedSchema, error) {
	own := &binding{key: key, building: true}
	inner := build(&refSchema{key: key, binding: own})
	own.building = false
	if inner == nil {
		return nil, fmt.Errorf("keyed %q: builder returned nil", key)
	}
	if ref, ok := inner.(*refSchema); ok && ref.binding == own {
		return nil, fmt.Errorf("keyed %q: schema is only a reference to itself", key)
	}

	unresolved := &KeyedSchema{key: key, inner: inner, binding: own, deferred: true}
	r := newResolver()
	resolved, err := unresolved.resolve(r)
	if err != nil {
		return nil, fmt.Errorf("keyed %q: %w", key, err)
	}
	if r.pending {
		return unresolved, nil
	}
	return resolved.(*KeyedSchema), nil
}

// Key returns the symbolic key.
func (s *KeyedSchema) Key() string { return s.key }

// Inner returns the resolved schema the key stands for.
func (s *KeyedSchema) Inner() Schema { return s.inner }

func (s *KeyedSchema) String() string { return fmt.Sprintf("keyed(%s)", s.key) }

func (s *KeyedSchema) Write(w *wire.Writer, value any) error { return s.inner.Write(w, value) }

func (s *KeyedSchema) Read(r *wire.Reader) (any, error) { return s.inner.Read(r) }

func (s *KeyedSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	return s.inner.Measure(value, m)
}

// SeekProperty forwards to the inner schema when it is an object.
func (s *KeyedSchema) SeekProperty(value any, name string) (int, bool) {
	object, ok := s.inner.(*ObjectSchema)
	if !ok {
		return 0, false
	}
	return object.SeekProperty(value, name)
}

// resolve registers the binding before walking the inner tree, so that
// placeholders below resolve to this schema's slot. A schema that was
// already resolved by its own Keyed call is complete and returned as is.
// While placeholders of a builder that is still running remain, the
// unresolved node is returned so that the enclosing pass can resolve it.
func (s *KeyedSchema) resolve(r *resolver) (Schema, error) {
	if !s.deferred {
		return s, nil
	}
	slot := r.register(s.binding)
	inner, err := s.inner.resolve(r)
	if err != nil {
		return nil, err
	}
	if r.pending {
		return s, nil
	}
	r.arena.fill(slot, inner)
	return &KeyedSchema{key: s.key, inner: inner, binding: s.binding}, nil
}

// arena holds the resolved schema for each binding registered during
// one resolution pass. Links address it by index. Each slot is written
// exactly once, before the outermost Keyed call returns, and is only
// read afterwards.
type arena struct {
	slots []Schema
}

func (a *arena) reserve() int {
	a.slots = append(a.slots, nil)
	return len(a.slots) - 1
}

func (a *arena) fill(slot int, schema Schema) {
	a.slots[slot] = schema
}

type resolver struct {
	arena *arena
	slots map[*binding]int

	// pending is set when a placeholder of a builder that is still
	// running was left in place.
	pending bool
}

func newResolver() *resolver {
	return &resolver{arena: &arena{}, slots: make(map[*binding]int)}
}

// register reserves an arena slot for b.
func (r *resolver) register(b *binding) int {
	slot := r.arena.reserve()
	r.slots[b] = slot
	return slot
}

// refSchema is the placeholder handed to a Keyed builder. It is never
// part of a resolved graph.
type refSchema struct {
	key     string
	binding *binding
}

func (s *refSchema) String() string { return fmt.Sprintf("ref(%s)", s.key) }

func (s *refSchema) Write(*wire.Writer, any) error {
	return &UnresolvedReferenceError{Key: s.key}
}

func (s *refSchema) Read(*wire.Reader) (any, error) {
	return nil, &UnresolvedReferenceError{Key: s.key}
}

// Measure panics: Measure has no error return, and measuring a
// placeholder is a programming error that must not produce a size.
func (s *refSchema) Measure(any, *measure.Measurer) *measure.Measurer {
	panic(&UnresolvedReferenceError{Key: s.key})
}

func (s *refSchema) resolve(r *resolver) (Schema, error) {
	slot, ok := r.slots[s.binding]
	if !ok {
		if s.binding.building {
			r.pending = true
			return s, nil
		}
		return nil, &UnresolvedReferenceError{Key: s.key}
	}
	return &linkSchema{key: s.key, arena: r.arena, slot: slot}, nil
}

// linkSchema is a resolved reference: it forwards to the arena slot of
// its key.
type linkSchema struct {
	key   string
	arena *arena
	slot  int
}

func (s *linkSchema) target() Schema { return s.arena.slots[s.slot] }

func (s *linkSchema) String() string { return fmt.Sprintf("link(%s)", s.key) }

func (s *linkSchema) Write(w *wire.Writer, value any) error {
	return s.target().Write(w, value)
}

func (s *linkSchema) Read(r *wire.Reader) (any, error) {
	return s.target().Read(r)
}

// Measure forwards real values. A link only exists where a schema
// contains itself, so its worst case nests without limit and [MaxValue]
// is unbounded.
func (s *linkSchema) Measure(value any, m *measure.Measurer) *measure.Measurer {
	if isMaxValue(value) {
		return measure.Unbounded
	}
	return s.target().Measure(value, m)
}

func (s *linkSchema) resolve(*resolver) (Schema, error) { return s, nil }
