package encoder

import (
	"testing"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

func encodeJSON(t *testing.T, s *schema.Schema, version schema.Version) string {
	t.Helper()
	obj, err := Encode(s, version)
	require.NoError(t, err)
	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func TestEncode_NullableString_BothFamilies(t *testing.T) {
	node := &schema.Schema{Type: "string", Format: "email", Nullable: true}

	// 3.1 renders the type array; the nullable keyword never appears.
	assert.Equal(t,
		`{"type":["string","null"],"format":"email"}`,
		encodeJSON(t, node, schema.Version310))

	// 3.0 renders the scalar type plus the nullable sibling.
	assert.Equal(t,
		`{"type":"string","format":"email","nullable":true}`,
		encodeJSON(t, node, schema.Version303))
}

func TestEncode_NonNullable_IdenticalAcrossFamilies(t *testing.T) {
	node := &schema.Schema{Type: "integer", Format: "int64"}
	assert.Equal(t,
		encodeJSON(t, node, schema.Version310),
		encodeJSON(t, node, schema.Version303))
}

func TestEncode_RefIsTerminal(t *testing.T) {
	node := schema.NewRefNode(schema.SchemaRef("User"))
	// Any other populated attribute is ignored once Ref is set.
	node.Type = "object"
	node.Description = "ignored"
	node.Nullable = true

	for _, v := range []schema.Version{schema.Version303, schema.Version312} {
		assert.Equal(t, `{"$ref":"#/components/schemas/User"}`, encodeJSON(t, node, v))
	}
}

func TestEncode_ArrayWithoutItems_GetsDefault(t *testing.T) {
	node := &schema.Schema{Type: "array"}
	assert.Equal(t,
		`{"type":"array","items":{"type":"string"}}`,
		encodeJSON(t, node, schema.Version312))
}

func TestEncode_EmptyPropertiesAndRequiredOmitted(t *testing.T) {
	node := (&schema.Schema{Type: "object"}).WithProperty("id", &schema.Schema{Type: "string"})
	node.Properties = sequencedmap.New[string, *schema.Schema]() // emptied again
	node.Required = nil

	assert.Equal(t, `{"type":"object"}`, encodeJSON(t, node, schema.Version312))
}

func TestEncode_ObjectWithProperties(t *testing.T) {
	node := (&schema.Schema{Type: "object"}).
		WithProperty("id", &schema.Schema{Type: "string", Format: "uuid"}).
		WithProperty("age", &schema.Schema{Type: "integer", Nullable: true}).
		WithRequired("id")

	assert.Equal(t,
		`{"type":"object","properties":{"id":{"type":"string","format":"uuid"},"age":{"type":["integer","null"]}},"required":["id"]}`,
		encodeJSON(t, node, schema.Version312))

	assert.Equal(t,
		`{"type":"object","properties":{"id":{"type":"string","format":"uuid"},"age":{"type":"integer","nullable":true}},"required":["id"]}`,
		encodeJSON(t, node, schema.Version303))
}

func TestEncode_TypeAliases(t *testing.T) {
	tests := []struct {
		typ, format  string
		wantT, wantF string
	}{
		{"int", "", "integer", ""},
		{"bool", "", "boolean", ""},
		{"double", "", "number", ""},
		{"datetime", "", "string", "date-time"},
		{"timestamp", "", "string", "date-time"},
		{"email", "", "string", "email"},
		{"url", "", "string", "uri"},
		// An explicit format survives alias expansion.
		{"email", "idn-email", "string", "idn-email"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.format, func(t *testing.T) {
			gotT, gotF := expandAlias(tt.typ, tt.format)
			assert.Equal(t, tt.wantT, gotT)
			assert.Equal(t, tt.wantF, gotF)
		})
	}
}

func TestEncode_NullableComposition_31(t *testing.T) {
	oneOf := &schema.Schema{
		OneOf: []*schema.Schema{
			{Type: "string"},
			{Type: "integer"},
		},
		Nullable: true,
	}
	assert.Equal(t,
		`{"oneOf":[{"type":"string"},{"type":"integer"},{"type":"null"}]}`,
		encodeJSON(t, oneOf, schema.Version312))

	// allOf cannot hold a null alternative (every branch must hold), so a
	// nullable allOf-only node is wrapped.
	allOf := &schema.Schema{
		AllOf:    []*schema.Schema{{Type: "object"}},
		Nullable: true,
	}
	assert.Equal(t,
		`{"anyOf":[{"allOf":[{"type":"object"}]},{"type":"null"}]}`,
		encodeJSON(t, allOf, schema.Version312))
}

func TestEncode_NullableComposition_30(t *testing.T) {
	node := &schema.Schema{
		OneOf:    []*schema.Schema{{Type: "string"}, {Type: "integer"}},
		Nullable: true,
	}
	assert.Equal(t,
		`{"oneOf":[{"type":"string"},{"type":"integer"}],"nullable":true}`,
		encodeJSON(t, node, schema.Version303))
}

func TestEncode_ExtraOverwrites(t *testing.T) {
	node := &schema.Schema{Type: "string", Extra: sequencedmap.New[string, any]()}
	node.Extra.Set("x-visibility", "internal")
	node.Extra.Set("type", "overridden")

	out := encodeJSON(t, node, schema.Version303)
	assert.Equal(t, `{"type":"overridden","x-visibility":"internal"}`, out)
}

func TestEncode_UnsupportedVersion(t *testing.T) {
	node := &schema.Schema{Type: "string"}
	for _, v := range []schema.Version{schema.VersionUnknown, schema.Version20} {
		_, err := Encode(node, v)
		require.Error(t, err)
		assert.ErrorIs(t, err, forgeerrors.ErrUnsupportedVersion)
		assert.ErrorIs(t, err, forgeerrors.ErrEncode)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	node := (&schema.Schema{Type: "object"}).
		WithProperty("b", &schema.Schema{Type: "string"}).
		WithProperty("a", &schema.Schema{Type: "integer"}).
		WithRequired("b", "a")
	node.Enum = []any{"x", "y"}

	want := encodeJSON(t, node, schema.Version312)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, encodeJSON(t, node, schema.Version312))
	}
}

func TestEncode_ConstraintsAndAnnotations(t *testing.T) {
	node := &schema.Schema{
		Type:        "string",
		Title:       "Username",
		Description: "login name",
		MinLength:   schema.Int(3),
		MaxLength:   schema.Int(64),
		Pattern:     "^[a-z]+$",
		Deprecated:  true,
	}
	assert.Equal(t,
		`{"type":"string","title":"Username","description":"login name","minLength":3,"maxLength":64,"pattern":"^[a-z]+$","deprecated":true}`,
		encodeJSON(t, node, schema.Version312))
}
