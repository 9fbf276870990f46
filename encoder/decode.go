package encoder

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

// knownKeys are the wire keys the decoder consumes; everything else lands in
// the node's Extra map.
var knownKeys = map[string]bool{
	"$ref": true, "type": true, "format": true, "nullable": true,
	"title": true, "description": true, "default": true, "example": true,
	"enum": true, "minimum": true, "maximum": true, "minLength": true,
	"maxLength": true, "pattern": true, "items": true, "minItems": true,
	"maxItems": true, "properties": true, "required": true,
	"allOf": true, "anyOf": true, "oneOf": true,
	"deprecated": true, "readOnly": true, "writeOnly": true,
}

// Decode converts a wire document back into an abstract schema node,
// normalizing the version-specific nullable encoding: a [T, "null"] type
// array, an appended {type: "null"} composition alternative, and a boolean
// nullable sibling all decode to the same Nullable flag. It is the reference
// decoder behind the version-pair equivalence property and the convert
// command.
func Decode(obj *wire.Object, version schema.Version) (*schema.Schema, error) {
	if !version.IsOAS3() {
		return nil, forgeerrors.NewUnsupportedVersion(version.String())
	}
	return decodeNode(obj), nil
}

// decodeNode is deliberately lenient: values of unexpected shape are
// skipped, matching the core's absorb-locally propagation policy.
func decodeNode(obj *wire.Object) *schema.Schema {
	s := &schema.Schema{}
	if obj == nil {
		return s
	}

	if raw, ok := obj.Get("$ref"); ok {
		if str, ok := raw.(string); ok {
			if ref, ok := schema.ParseRef(str); ok {
				return schema.NewRefNode(ref)
			}
		}
	}

	for _, key := range obj.Keys() {
		raw, _ := obj.Get(key)
		switch key {
		case "type":
			decodeType(s, raw)
		case "format":
			s.Format, _ = raw.(string)
		case "nullable":
			if b, ok := raw.(bool); ok && b {
				s.Nullable = true
			}
		case "title":
			s.Title, _ = raw.(string)
		case "description":
			s.Description, _ = raw.(string)
		case "default":
			s.Default = raw
		case "example":
			s.Example = raw
		case "enum":
			if list, ok := raw.([]any); ok {
				s.Enum = list
			}
		case "minimum":
			s.Minimum = toFloat(raw)
		case "maximum":
			s.Maximum = toFloat(raw)
		case "minLength":
			s.MinLength = toInt(raw)
		case "maxLength":
			s.MaxLength = toInt(raw)
		case "pattern":
			s.Pattern, _ = raw.(string)
		case "items":
			if child, ok := raw.(*wire.Object); ok {
				s.Items = decodeNode(child)
			}
		case "minItems":
			s.MinItems = toInt(raw)
		case "maxItems":
			s.MaxItems = toInt(raw)
		case "properties":
			if props, ok := raw.(*wire.Object); ok {
				s.Properties = sequencedmap.New[string, *schema.Schema]()
				for _, name := range props.Keys() {
					child, _ := props.Get(name)
					if childObj, ok := child.(*wire.Object); ok {
						s.Properties.Set(name, decodeNode(childObj))
					}
				}
			}
		case "required":
			if list, ok := raw.([]any); ok {
				for _, item := range list {
					if name, ok := item.(string); ok {
						s.Required = append(s.Required, name)
					}
				}
			}
		case "allOf":
			s.AllOf = decodeList(raw)
		case "anyOf":
			s.AnyOf = decodeList(raw)
		case "oneOf":
			s.OneOf = decodeList(raw)
		case "deprecated":
			s.Deprecated, _ = raw.(bool)
		case "readOnly":
			s.ReadOnly, _ = raw.(bool)
		case "writeOnly":
			s.WriteOnly, _ = raw.(bool)
		default:
			if s.Extra == nil {
				s.Extra = sequencedmap.New[string, any]()
			}
			s.Extra.Set(key, raw)
		}
	}

	normalizeNullAlternatives(s)
	return s
}

// decodeType handles both the scalar type string and the 3.1 type array.
// A "null" member of a type array becomes the abstract Nullable flag.
func decodeType(s *schema.Schema, raw any) {
	switch t := raw.(type) {
	case string:
		s.Type = t
	case []any:
		for _, item := range t {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if name == "null" {
				s.Nullable = true
				continue
			}
			if s.Type == "" {
				s.Type = name
			}
		}
	}
}

func decodeList(raw any) []*schema.Schema {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]*schema.Schema, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(*wire.Object); ok {
			out = append(out, decodeNode(obj))
		}
	}
	return out
}

// normalizeNullAlternatives strips a trailing {type: "null"}-only member
// from oneOf/anyOf lists, folding it back into the Nullable flag so that
// both historical encodings decode to the same abstract node.
func normalizeNullAlternatives(s *schema.Schema) {
	strip := func(list []*schema.Schema) ([]*schema.Schema, bool) {
		if len(list) == 0 {
			return list, false
		}
		last := list[len(list)-1]
		if last.Type == "null" && last.Kind() == schema.KindPrimitive &&
			last.Format == "" && last.Properties == nil && last.Items == nil {
			return list[:len(list)-1], true
		}
		return list, false
	}

	var stripped bool
	if s.OneOf, stripped = strip(s.OneOf); stripped {
		s.Nullable = true
	}
	if s.AnyOf, stripped = strip(s.AnyOf); stripped {
		s.Nullable = true
	}

	// Unwrap the anyOf: [{allOf: ...}, {type: "null"}] shape the encoder
	// produces for nullable allOf-only nodes.
	if s.Nullable && len(s.AnyOf) == 1 && len(s.AllOf) == 0 && len(s.OneOf) == 0 && s.Type == "" {
		inner := s.AnyOf[0]
		if len(inner.AllOf) > 0 && inner.Type == "" && len(inner.OneOf) == 0 && len(inner.AnyOf) == 0 {
			s.AllOf = inner.AllOf
			s.AnyOf = nil
		}
	}
}

// toFloat coerces the numeric shapes the wire parser can produce.
func toFloat(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return schema.Float(v)
	case int:
		return schema.Float(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return schema.Float(f)
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return schema.Float(f)
		}
	}
	return nil
}

// toInt coerces the numeric shapes the wire parser can produce.
func toInt(raw any) *int {
	switch v := raw.(type) {
	case int:
		return schema.Int(v)
	case float64:
		return schema.Int(int(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return schema.Int(int(n))
		}
	}
	return nil
}
