package schema

import (
	"slices"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Kind classifies what is authoritative about a schema node: a reference,
// a composition, or a (possibly absent) primitive type. Exactly one kind is
// authoritative per node.
type Kind int

const (
	// KindAny is a node with no type, composition, or reference; it accepts
	// any value.
	KindAny Kind = iota
	// KindPrimitive is a node whose Type field carries a primitive or
	// shorthand type name.
	KindPrimitive
	// KindComposition is a node expressed through oneOf, allOf, or anyOf.
	KindComposition
	// KindReference is a terminal node pointing at a named component.
	KindReference
)

// Schema is the canonical in-memory representation of one schema shape.
//
// Nodes are treated as immutable values: transformations go through
// [Schema.WithProperty] and [Schema.WithRequired], which return copies, so a
// node can be shared across multiple parents without aliasing hazards.
//
// A node with Ref set is terminal: it carries no other structural meaning and
// consumers must resolve the reference before inspecting shape.
type Schema struct {
	// Ref makes this node a terminal pointer to a named component.
	Ref Ref

	// Type is the primitive type tag: string, integer, number, boolean,
	// object, or array. Domain shorthand names (date, uuid, int, ...) are
	// accepted here and expanded by the encoder.
	Type string
	// Format is a refinement tag (date-time, uuid, email, ...) meaningful
	// only on string/integer/number types.
	Format string
	// Nullable is independent of Type; its wire encoding is determined
	// entirely by the target version at encode time.
	Nullable bool

	// Metadata
	Title       string
	Description string
	Default     any
	Example     any
	Enum        []any

	// Numeric and length constraints
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	MinItems  *int
	MaxItems  *int
	Pattern   string

	// Items is the element schema, required when Type is "array".
	Items *Schema

	// Properties maps field name to child schema, preserving insertion order.
	Properties *sequencedmap.Map[string, *Schema]
	// Required lists property names that must be present. Always a subset of
	// the Properties keys in a well-formed node.
	Required []string

	// Composition children, mutually exclusive with a primitive Type.
	OneOf []*Schema
	AllOf []*Schema
	AnyOf []*Schema

	Deprecated bool
	ReadOnly   bool
	WriteOnly  bool

	// Extra holds vendor/extension keys, merged last at encode time and
	// never validated. Insertion order is preserved.
	Extra *sequencedmap.Map[string, any]
}

// NewRefNode returns a terminal node pointing at the given component.
func NewRefNode(ref Ref) *Schema {
	return &Schema{Ref: ref}
}

// Kind reports which aspect of the node is authoritative. Reference wins over
// composition, composition over a primitive type.
func (s *Schema) Kind() Kind {
	switch {
	case s == nil:
		return KindAny
	case !s.Ref.IsZero():
		return KindReference
	case len(s.OneOf) > 0 || len(s.AllOf) > 0 || len(s.AnyOf) > 0:
		return KindComposition
	case s.Type != "":
		return KindPrimitive
	default:
		return KindAny
	}
}

// IsComposition reports whether the node is expressed through oneOf, allOf,
// or anyOf.
func (s *Schema) IsComposition() bool {
	return s.Kind() == KindComposition
}

// WithProperty returns a copy of the node with one property added or
// replaced. Property insertion order is preserved for all other keys; a new
// key is appended at the end.
func (s *Schema) WithProperty(name string, node *Schema) *Schema {
	out := s.clone()
	props := sequencedmap.New[string, *Schema]()
	replaced := false
	if s.Properties != nil {
		for key, val := range s.Properties.All() {
			if key == name {
				props.Set(key, node)
				replaced = true
				continue
			}
			props.Set(key, val)
		}
	}
	if !replaced {
		props.Set(name, node)
	}
	out.Properties = props
	return out
}

// HasProperty reports whether the node declares the named property.
func (s *Schema) HasProperty(name string) bool {
	if s == nil || s.Properties == nil {
		return false
	}
	_, ok := s.Properties.Get(name)
	return ok
}

// WithRequired returns a copy of the node with the given names appended to
// Required. Names already present are not duplicated and existing entries
// keep their order.
func (s *Schema) WithRequired(names ...string) *Schema {
	out := s.clone()
	for _, name := range names {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

// clone returns a copy of the node with its own slices and ordered maps.
// Child nodes are shared, not copied; they are immutable by convention.
func (s *Schema) clone() *Schema {
	if s == nil {
		return &Schema{}
	}
	out := *s
	out.Enum = slices.Clone(s.Enum)
	out.Required = slices.Clone(s.Required)
	out.OneOf = slices.Clone(s.OneOf)
	out.AllOf = slices.Clone(s.AllOf)
	out.AnyOf = slices.Clone(s.AnyOf)
	if s.Properties != nil {
		props := sequencedmap.New[string, *Schema]()
		for key, val := range s.Properties.All() {
			props.Set(key, val)
		}
		out.Properties = props
	}
	if s.Extra != nil {
		extra := sequencedmap.New[string, any]()
		for key, val := range s.Extra.All() {
			extra.Set(key, val)
		}
		out.Extra = extra
	}
	return &out
}

// Clone returns a copy of the node with its own slices and ordered maps.
// Child nodes are shared.
func (s *Schema) Clone() *Schema {
	return s.clone()
}

// Float returns a pointer to v for use in Minimum/Maximum fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v for use in length/item count fields.
func Int(v int) *int { return &v }
