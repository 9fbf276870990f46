package encoder

import (
	"slices"

	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

// nullType is the literal alternative appended to 3.1 compositions for
// nullable nodes.
func nullType() *wire.Object {
	obj := wire.NewObject()
	obj.Set("type", "null")
	return obj
}

// defaultItems is the element schema emitted for arrays whose items is
// unset: every array must describe its element shape in the emitted
// document.
func defaultItems() *wire.Object {
	obj := wire.NewObject()
	obj.Set("type", "string")
	return obj
}

// Encode serializes a schema tree to the wire structure for the selected
// target version.
//
// The two supported encoding families differ only in how nullability
// appears: versions before 3.1 emit a scalar type plus a boolean nullable
// sibling, 3.1 and later emit a [T, "null"] type array (or append a
// {type: "null"} alternative to a composition). Requesting a version outside
// the OAS 3.x families fails with [forgeerrors.ErrUnsupportedVersion] —
// there is no safe default encoding to fall back to.
func Encode(s *schema.Schema, version schema.Version) (*wire.Object, error) {
	if !version.IsOAS3() {
		return nil, forgeerrors.NewUnsupportedVersion(version.String())
	}
	return encodeNode(s, version), nil
}

// encodeNode serializes one node. It never fails: structural anomalies are
// absorbed into best-effort output per the propagation policy.
func encodeNode(s *schema.Schema, version schema.Version) *wire.Object {
	obj := wire.NewObject()
	if s == nil {
		return obj
	}

	// A reference node is terminal: nothing else is consulted or emitted.
	if !s.Ref.IsZero() {
		obj.Set("$ref", s.Ref.String())
		return obj
	}

	typ, format := expandAlias(s.Type, s.Format)
	composition := s.IsComposition()

	switch {
	case composition:
		// Handled below with the composition lists.
	case typ != "" && s.Nullable && version.SupportsTypeArrays():
		obj.Set("type", []any{typ, "null"})
	case typ != "":
		obj.Set("type", typ)
	}
	if format != "" && !composition {
		obj.Set("format", format)
	}
	if s.Nullable && !composition && !version.SupportsTypeArrays() {
		obj.Set("nullable", true)
	}

	if s.Title != "" {
		obj.Set("title", s.Title)
	}
	if s.Description != "" {
		obj.Set("description", s.Description)
	}
	if s.Default != nil {
		obj.Set("default", s.Default)
	}
	if s.Example != nil {
		obj.Set("example", s.Example)
	}
	if len(s.Enum) > 0 {
		obj.Set("enum", slices.Clone(s.Enum))
	}

	if s.Minimum != nil {
		obj.Set("minimum", *s.Minimum)
	}
	if s.Maximum != nil {
		obj.Set("maximum", *s.Maximum)
	}
	if s.MinLength != nil {
		obj.Set("minLength", *s.MinLength)
	}
	if s.MaxLength != nil {
		obj.Set("maxLength", *s.MaxLength)
	}
	if s.Pattern != "" {
		obj.Set("pattern", s.Pattern)
	}

	if typ == "array" && !composition {
		if s.Items != nil {
			obj.Set("items", encodeNode(s.Items, version))
		} else {
			obj.Set("items", defaultItems())
		}
	} else if s.Items != nil {
		obj.Set("items", encodeNode(s.Items, version))
	}
	if s.MinItems != nil {
		obj.Set("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		obj.Set("maxItems", *s.MaxItems)
	}

	// Empty property maps and required sets are omitted entirely, keeping
	// generated documents minimal.
	if s.Properties != nil && s.Properties.Len() > 0 {
		props := wire.NewObject()
		for name, child := range s.Properties.All() {
			props.Set(name, encodeNode(child, version))
		}
		obj.Set("properties", props)
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, name := range s.Required {
			required[i] = name
		}
		obj.Set("required", required)
	}

	if composition {
		encodeComposition(obj, s, version)
	}

	if s.Deprecated {
		obj.Set("deprecated", true)
	}
	if s.ReadOnly {
		obj.Set("readOnly", true)
	}
	if s.WriteOnly {
		obj.Set("writeOnly", true)
	}

	// Extension keys are merged last and may overwrite anything emitted
	// above, giving escape-hatch precedence to explicitly supplied vendor
	// data. Replaced keys keep their position.
	if s.Extra != nil {
		for key, val := range s.Extra.All() {
			obj.Set(key, val)
		}
	}

	return obj
}

// encodeComposition emits the oneOf/allOf/anyOf lists and the
// version-appropriate nullability marker.
//
// At 3.1+ a nullable oneOf/anyOf gains an appended {type: "null"}
// alternative; a nullable allOf-only node cannot express null inside allOf
// (every branch must hold), so it is wrapped as anyOf: [{allOf: ...},
// {type: "null"}]. Before 3.1 the boolean flag sits at the composition's own
// level instead.
func encodeComposition(obj *wire.Object, s *schema.Schema, version schema.Version) {
	encodeList := func(nodes []*schema.Schema) []any {
		out := make([]any, len(nodes))
		for i, n := range nodes {
			out[i] = encodeNode(n, version)
		}
		return out
	}

	if s.Nullable && version.SupportsTypeArrays() {
		switch {
		case len(s.OneOf) > 0:
			obj.Set("oneOf", append(encodeList(s.OneOf), nullType()))
			if len(s.AllOf) > 0 {
				obj.Set("allOf", encodeList(s.AllOf))
			}
			if len(s.AnyOf) > 0 {
				obj.Set("anyOf", encodeList(s.AnyOf))
			}
		case len(s.AnyOf) > 0:
			if len(s.AllOf) > 0 {
				obj.Set("allOf", encodeList(s.AllOf))
			}
			obj.Set("anyOf", append(encodeList(s.AnyOf), nullType()))
		default: // allOf only
			wrapped := wire.NewObject()
			wrapped.Set("allOf", encodeList(s.AllOf))
			obj.Set("anyOf", []any{wrapped, nullType()})
		}
		return
	}

	if len(s.AllOf) > 0 {
		obj.Set("allOf", encodeList(s.AllOf))
	}
	if len(s.AnyOf) > 0 {
		obj.Set("anyOf", encodeList(s.AnyOf))
	}
	if len(s.OneOf) > 0 {
		obj.Set("oneOf", encodeList(s.OneOf))
	}
	if s.Nullable && !version.SupportsTypeArrays() {
		obj.Set("nullable", true)
	}
}
