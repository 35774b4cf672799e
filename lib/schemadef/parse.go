// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/typedwire/lib/wire"
	"github.com/bureau-foundation/typedwire/lib/wireschema"
)

// Definition is a parsed schema document.
type Definition struct {
	// Schema is the resolved schema.
	Schema wireschema.Schema

	// Endian is the byte order the document declares, or
	// [wire.HostEndian] when it declares none.
	Endian wire.Endian

	// EndianDeclared reports whether the document named a byte order.
	EndianDeclared bool

	// Fingerprint identifies the wire layout of Schema in Endian.
	Fingerprint Fingerprint

	// canonical is the syntax-free form of Schema that fingerprints
	// are computed over.
	canonical any
}

// WithEndian returns a copy of the definition using endian, with the
// fingerprint recomputed for it.
func (d *Definition) WithEndian(endian wire.Endian) (*Definition, error) {
	fingerprint, err := computeFingerprint(d.canonical, endian)
	if err != nil {
		return nil, err
	}
	changed := *d
	changed.Endian = endian
	changed.EndianDeclared = true
	changed.Fingerprint = fingerprint
	return &changed, nil
}

// Canonical returns the deterministic CBOR bytes the fingerprint is
// computed over.
func (d *Definition) Canonical() ([]byte, error) {
	return canonicalBytes(d.canonical, d.Endian)
}

// Parse reads a YAML or JSONC schema document. Documents whose first
// non-blank character opens a JSON object or a comment are treated as
// JSONC: comments and trailing commas are blanked in place, so error
// positions still refer to the original text.
func Parse(data []byte) (*Definition, error) {
	if isJSONC(data) {
		data = jsonc.ToJSON(data)
	}

	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return nil, errors.New("parsing schema document: document is empty")
	}
	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errorAt(root, "schema document must be a mapping with a schema key")
	}

	definition := &Definition{Endian: wire.HostEndian}
	var schemaNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "endian":
			if value.Kind != yaml.ScalarNode {
				return nil, errorAt(value, "endian must be little, big, or host")
			}
			endian, err := wire.ParseEndian(value.Value)
			if err != nil {
				return nil, wrapAt(value, err, "invalid endian")
			}
			definition.Endian = endian
			definition.EndianDeclared = true
		case "schema":
			schemaNode = value
		default:
			return nil, errorAt(key, "unknown top-level key %q (expected endian or schema)", key.Value)
		}
	}
	if schemaNode == nil {
		return nil, errorAt(root, "missing schema key")
	}

	b := &builder{scope: make(map[string]wireschema.Schema)}
	schema, canonical, err := b.node(schemaNode)
	if err != nil {
		return nil, err
	}
	definition.Schema = schema
	definition.canonical = canonical

	definition.Fingerprint, err = computeFingerprint(canonical, definition.Endian)
	if err != nil {
		return nil, err
	}
	return definition, nil
}

// Load reads and parses the schema document at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	definition, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return definition, nil
}

// documentExtensions are tried, in order, when [Locate] searches a
// directory for a bare schema name.
var documentExtensions = []string{"", ".yaml", ".yml", ".jsonc", ".json"}

// Locate finds a schema document. A name that exists as given (or that
// contains a path separator) is returned unchanged; otherwise each
// search directory is tried in order, with and without the usual
// document extensions.
func Locate(name string, searchPaths []string) (string, error) {
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) || filepath.Base(name) != name {
		return name, nil
	}
	for _, directory := range searchPaths {
		for _, extension := range documentExtensions {
			candidate := filepath.Join(directory, name+extension)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("schema %q not found in %v: %w", name, searchPaths, os.ErrNotExist)
}

func isJSONC(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("{")) ||
		bytes.HasPrefix(trimmed, []byte("//")) ||
		bytes.HasPrefix(trimmed, []byte("/*"))
}

type scalarType struct {
	schema    wireschema.Schema
	canonical string
}

var scalarTypes = map[string]scalarType{
	"bool":   {wireschema.Bool, "bool"},
	"i8":     {wireschema.I8, "i8"},
	"u8":     {wireschema.U8, "u8"},
	"byte":   {wireschema.Byte, "u8"},
	"i16":    {wireschema.I16, "i16"},
	"u16":    {wireschema.U16, "u16"},
	"i32":    {wireschema.I32, "i32"},
	"u32":    {wireschema.U32, "u32"},
	"f16":    {wireschema.F16, "f16"},
	"f32":    {wireschema.F32, "f32"},
	"string": {wireschema.String, "string"},
}

var typedArrayKinds = map[string]wireschema.Kind{
	"u8":   wireschema.KindUint8,
	"byte": wireschema.KindUint8,
	"i8":   wireschema.KindInt8,
	"u16":  wireschema.KindUint16,
	"i16":  wireschema.KindInt16,
	"u32":  wireschema.KindUint32,
	"i32":  wireschema.KindInt32,
	"f16":  wireschema.KindFloat16,
	"f32":  wireschema.KindFloat32,
}

// builder turns document nodes into schemas. scope maps each key of
// an enclosing keyed node to the placeholder its builder was handed.
type builder struct {
	scope map[string]wireschema.Schema
}

// node builds the schema for n along with its canonical form: a tree
// of strings, unsigned integers, and []any that carries everything
// affecting the wire layout and nothing else.
func (b *builder) node(n *yaml.Node) (wireschema.Schema, any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return b.node(n.Alias)
	case yaml.ScalarNode:
		scalar, ok := scalarTypes[n.Value]
		if !ok {
			return nil, nil, errorAt(n, "unknown type %q", n.Value)
		}
		return scalar.schema, scalar.canonical, nil
	case yaml.MappingNode:
	default:
		return nil, nil, errorAt(n, "expected a type name or a single-key constructor mapping")
	}

	if len(n.Content) != 2 {
		return nil, nil, errorAt(n, "a constructor mapping must have exactly one key, found %d", len(n.Content)/2)
	}
	key, arg := n.Content[0], n.Content[1]
	switch key.Value {
	case "object":
		return b.object(arg)
	case "concat":
		return b.concat(arg)
	case "array":
		return b.array(arg)
	case "dynamicArray":
		elem, canonical, err := b.node(arg)
		if err != nil {
			return nil, nil, err
		}
		return wireschema.DynamicArray(elem), []any{"dynamicArray", canonical}, nil
	case "tuple":
		return b.tuple(arg)
	case "optional":
		inner, canonical, err := b.node(arg)
		if err != nil {
			return nil, nil, err
		}
		return wireschema.Optional(inner), []any{"optional", canonical}, nil
	case "chars":
		length, err := count(arg)
		if err != nil {
			return nil, nil, err
		}
		return wireschema.Chars(length), []any{"chars", uint64(length)}, nil
	case "typedArray":
		return b.typedArray(arg)
	case "union":
		return b.union(arg)
	case "keyed":
		return b.keyed(arg)
	case "ref":
		return b.ref(arg)
	default:
		return nil, nil, errorAt(key, "unknown constructor %q", key.Value)
	}
}

func (b *builder) object(n *yaml.Node) (wireschema.Schema, any, error) {
	props, canonical, err := b.properties(n, nil)
	if err != nil {
		return nil, nil, err
	}
	return wireschema.Object(props...), []any{"object", canonical}, nil
}

// properties builds an ordered property list from a mapping of names
// to nodes. A null node is an empty list. Names in reserved are
// rejected.
func (b *builder) properties(n *yaml.Node, reserved map[string]string) ([]wireschema.Property, []any, error) {
	if isNull(n) {
		return nil, []any{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, nil, errorAt(n, "expected a mapping of property names to types")
	}
	seen := make(map[string]bool, len(n.Content)/2)
	props := make([]wireschema.Property, 0, len(n.Content)/2)
	canonical := make([]any, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		nameNode, valueNode := n.Content[i], n.Content[i+1]
		name := nameNode.Value
		switch {
		case name == "":
			return nil, nil, errorAt(nameNode, "empty property name")
		case seen[name]:
			return nil, nil, errorAt(nameNode, "duplicate property %q", name)
		case reserved[name] != "":
			return nil, nil, errorAt(nameNode, "property %q %s", name, reserved[name])
		}
		seen[name] = true

		schema, propCanonical, err := b.node(valueNode)
		if err != nil {
			return nil, nil, err
		}
		props = append(props, wireschema.Prop(name, schema))
		canonical = append(canonical, []any{name, propCanonical})
	}
	return props, canonical, nil
}

// concat joins object nodes. Its canonical form is that of the single
// object it is equivalent to.
func (b *builder) concat(n *yaml.Node) (wireschema.Schema, any, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nil, errorAt(n, "concat expects a list of object nodes")
	}
	var objects []*wireschema.ObjectSchema
	var canonical []any
	seen := make(map[string]bool)
	for _, element := range n.Content {
		schema, elementCanonical, err := b.node(element)
		if err != nil {
			return nil, nil, err
		}
		object, ok := schema.(*wireschema.ObjectSchema)
		if !ok {
			return nil, nil, errorAt(element, "concat element must be an object, got %v", schema)
		}
		for _, prop := range object.Properties() {
			if seen[prop.Name] {
				return nil, nil, errorAt(element, "property %q is declared by more than one concatenated object", prop.Name)
			}
			seen[prop.Name] = true
		}
		objects = append(objects, object)
		canonical = append(canonical, elementCanonical.([]any)[1].([]any)...)
	}
	if canonical == nil {
		canonical = []any{}
	}
	return wireschema.Concat(objects...), []any{"object", canonical}, nil
}

func (b *builder) array(n *yaml.Node) (wireschema.Schema, any, error) {
	fields, err := mappingFields(n, "of", "length")
	if err != nil {
		return nil, nil, err
	}
	if fields["of"] == nil || fields["length"] == nil {
		return nil, nil, errorAt(n, "array requires of and length")
	}
	elem, elemCanonical, err := b.node(fields["of"])
	if err != nil {
		return nil, nil, err
	}
	length, err := count(fields["length"])
	if err != nil {
		return nil, nil, err
	}
	return wireschema.Array(elem, length), []any{"array", elemCanonical, uint64(length)}, nil
}

func (b *builder) tuple(n *yaml.Node) (wireschema.Schema, any, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nil, errorAt(n, "tuple expects a list of nodes")
	}
	elems := make([]wireschema.Schema, 0, len(n.Content))
	canonical := make([]any, 0, len(n.Content))
	for _, element := range n.Content {
		schema, elementCanonical, err := b.node(element)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, schema)
		canonical = append(canonical, elementCanonical)
	}
	return wireschema.Tuple(elems...), []any{"tuple", canonical}, nil
}

func (b *builder) typedArray(n *yaml.Node) (wireschema.Schema, any, error) {
	fields, err := mappingFields(n, "of", "length")
	if err != nil {
		return nil, nil, err
	}
	of, lengthNode := fields["of"], fields["length"]
	if of == nil || lengthNode == nil {
		return nil, nil, errorAt(n, "typedArray requires of and length")
	}
	kind, ok := typedArrayKinds[of.Value]
	if of.Kind != yaml.ScalarNode || !ok {
		return nil, nil, errorAt(of, "typedArray element must be a numeric type name, got %q", of.Value)
	}
	length, err := count(lengthNode)
	if err != nil {
		return nil, nil, err
	}
	return wireschema.TypedArray(kind, length), []any{"typedArray", kind.String(), uint64(length)}, nil
}

type variantEntry struct {
	name      string
	ordinal   uint64
	key       any
	props     []wireschema.Property
	canonical []any
}

func (b *builder) union(n *yaml.Node) (wireschema.Schema, any, error) {
	fields, err := mappingFields(n, "tag", "base", "variants")
	if err != nil {
		return nil, nil, err
	}
	tag := "string"
	if fields["tag"] != nil {
		tag = fields["tag"].Value
	}
	if tag != "string" && tag != "enum" {
		return nil, nil, errorAt(fields["tag"], "union tag must be string or enum, got %q", tag)
	}
	variantsNode := fields["variants"]
	if variantsNode == nil || variantsNode.Kind != yaml.MappingNode {
		return nil, nil, errorAt(n, "union requires a variants mapping")
	}

	reserved := map[string]string{wireschema.TypeKey: "is reserved for the union discriminant"}
	var baseProps []wireschema.Property
	baseCanonical := []any{}
	if fields["base"] != nil {
		baseProps, baseCanonical, err = b.properties(fields["base"], reserved)
		if err != nil {
			return nil, nil, err
		}
	}
	variantReserved := map[string]string{wireschema.TypeKey: reserved[wireschema.TypeKey]}
	for _, prop := range baseProps {
		variantReserved[prop.Name] = "is already declared by the union base"
	}

	var entries []variantEntry
	seen := make(map[string]bool)
	for i := 0; i+1 < len(variantsNode.Content); i += 2 {
		keyNode, propsNode := variantsNode.Content[i], variantsNode.Content[i+1]
		entry := variantEntry{name: keyNode.Value, key: keyNode.Value}
		if tag == "enum" {
			ordinal, err := strconv.ParseUint(keyNode.Value, 10, 8)
			if err != nil {
				return nil, nil, errorAt(keyNode, "enum union discriminant must be an integer 0-255, got %q", keyNode.Value)
			}
			entry.ordinal = ordinal
			entry.key = ordinal
			entry.name = strconv.FormatUint(ordinal, 10)
		}
		if seen[entry.name] {
			return nil, nil, errorAt(keyNode, "duplicate union variant %q", entry.name)
		}
		seen[entry.name] = true

		entry.props, entry.canonical, err = b.properties(propsNode, variantReserved)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(x, y variantEntry) int {
		if tag == "enum" {
			return cmp.Compare(x.ordinal, y.ordinal)
		}
		return cmp.Compare(x.name, y.name)
	})
	canonicalVariants := make([]any, len(entries))
	for i, entry := range entries {
		canonicalVariants[i] = []any{entry.key, entry.canonical}
	}
	canonical := []any{"union", tag, baseCanonical, canonicalVariants}

	base := wireschema.Object(baseProps...)
	if tag == "enum" {
		variants := make(map[uint8]*wireschema.ObjectSchema, len(entries))
		for _, entry := range entries {
			variants[uint8(entry.ordinal)] = wireschema.Object(entry.props...)
		}
		return wireschema.EnumUnion(base, variants), canonical, nil
	}
	variants := make(map[string]*wireschema.ObjectSchema, len(entries))
	for _, entry := range entries {
		variants[entry.name] = wireschema.Object(entry.props...)
	}
	return wireschema.Union(base, variants), canonical, nil
}

func (b *builder) keyed(n *yaml.Node) (wireschema.Schema, any, error) {
	fields, err := mappingFields(n, "key", "schema")
	if err != nil {
		return nil, nil, err
	}
	keyNode, schemaNode := fields["key"], fields["schema"]
	if keyNode == nil || schemaNode == nil {
		return nil, nil, errorAt(n, "keyed requires key and schema")
	}
	if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
		return nil, nil, errorAt(keyNode, "keyed key must be a non-empty name")
	}
	key := keyNode.Value

	previous, shadowing := b.scope[key]
	var innerCanonical any
	var buildErr error
	keyed, err := wireschema.Keyed(key, func(self wireschema.Schema) wireschema.Schema {
		b.scope[key] = self
		inner, canonical, err := b.node(schemaNode)
		if err != nil {
			buildErr = err
			return wireschema.Object()
		}
		innerCanonical = canonical
		return inner
	})
	if shadowing {
		b.scope[key] = previous
	} else {
		delete(b.scope, key)
	}

	if buildErr != nil {
		return nil, nil, buildErr
	}
	if err != nil {
		return nil, nil, wrapAt(n, err, "cannot resolve keyed schema %q", key)
	}
	return keyed, []any{"keyed", key, innerCanonical}, nil
}

func (b *builder) ref(n *yaml.Node) (wireschema.Schema, any, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return nil, nil, errorAt(n, "ref expects a key name")
	}
	placeholder, ok := b.scope[n.Value]
	if !ok {
		return nil, nil, errorAt(n, "ref %q is not inside a keyed node with that key", n.Value)
	}
	return placeholder, []any{"ref", n.Value}, nil
}

// mappingFields indexes a constructor's argument mapping by key,
// rejecting keys outside allowed.
func mappingFields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a mapping with keys %v", allowed)
	}
	fields := make(map[string]*yaml.Node, len(allowed))
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return nil, errorAt(key, "unexpected key %q (expected one of %v)", key.Value, allowed)
		}
		if fields[key.Value] != nil {
			return nil, errorAt(key, "duplicate key %q", key.Value)
		}
		fields[key.Value] = n.Content[i+1]
	}
	return fields, nil
}

// count parses a non-negative length that fits the wire's u32 counts.
func count(n *yaml.Node) (int, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, errorAt(n, "expected a non-negative integer")
	}
	value, err := strconv.ParseUint(n.Value, 10, 32)
	if err != nil {
		return 0, errorAt(n, "expected a non-negative integer, got %q", n.Value)
	}
	return int(value), nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
