package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

func decodeJSON(t *testing.T, in string, version schema.Version) *schema.Schema {
	t.Helper()
	obj, err := wire.ParseJSON([]byte(in))
	require.NoError(t, err)
	node, err := Decode(obj, version)
	require.NoError(t, err)
	return node
}

func TestDecode_TypeArray(t *testing.T) {
	node := decodeJSON(t, `{"type":["string","null"],"format":"email"}`, schema.Version312)
	assert.Equal(t, "string", node.Type)
	assert.True(t, node.Nullable)
	assert.Equal(t, "email", node.Format)
}

func TestDecode_NullableKeyword(t *testing.T) {
	node := decodeJSON(t, `{"type":"string","nullable":true}`, schema.Version303)
	assert.Equal(t, "string", node.Type)
	assert.True(t, node.Nullable)
}

func TestDecode_Ref(t *testing.T) {
	node := decodeJSON(t, `{"$ref":"#/components/schemas/User"}`, schema.Version312)
	assert.Equal(t, schema.KindReference, node.Kind())
	assert.Equal(t, schema.SchemaRef("User"), node.Ref)
}

func TestDecode_NullAlternativeStripped(t *testing.T) {
	node := decodeJSON(t,
		`{"oneOf":[{"type":"string"},{"type":"integer"},{"type":"null"}]}`,
		schema.Version312)
	assert.True(t, node.Nullable)
	assert.Len(t, node.OneOf, 2)
}

func TestDecode_WrappedAllOfUnwrapped(t *testing.T) {
	node := decodeJSON(t,
		`{"anyOf":[{"allOf":[{"type":"object"}]},{"type":"null"}]}`,
		schema.Version312)
	assert.True(t, node.Nullable)
	assert.Len(t, node.AllOf, 1)
	assert.Empty(t, node.AnyOf)
}

func TestDecode_UnknownKeysLandInExtra(t *testing.T) {
	node := decodeJSON(t,
		`{"type":"string","x-visibility":"internal","discriminator":{"propertyName":"kind"}}`,
		schema.Version312)
	require.NotNil(t, node.Extra)
	v, ok := node.Extra.Get("x-visibility")
	require.True(t, ok)
	assert.Equal(t, "internal", v)
	assert.True(t, node.Extra.Has("discriminator"))
}

func TestDecode_NumericBounds(t *testing.T) {
	node := decodeJSON(t,
		`{"type":"integer","minimum":0,"maximum":150,"minLength":1}`,
		schema.Version312)
	require.NotNil(t, node.Minimum)
	assert.Equal(t, float64(0), *node.Minimum)
	require.NotNil(t, node.Maximum)
	assert.Equal(t, float64(150), *node.Maximum)
	require.NotNil(t, node.MinLength)
	assert.Equal(t, 1, *node.MinLength)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	obj := wire.NewObject()
	_, err := Decode(obj, schema.Version20)
	assert.ErrorIs(t, err, forgeerrors.ErrUnsupportedVersion)
}

// The two version families must carry the same information: decoding what
// one family encoded and re-encoding for the other, then decoding again,
// recovers the same abstract node.
func TestVersionPairEquivalence(t *testing.T) {
	nodes := []*schema.Schema{
		{Type: "string", Format: "email", Nullable: true},
		{Type: "array", Items: &schema.Schema{Type: "integer", Nullable: true}},
		(&schema.Schema{Type: "object"}).
			WithProperty("id", &schema.Schema{Type: "string", Format: "uuid"}).
			WithProperty("age", &schema.Schema{Type: "integer", Nullable: true}).
			WithRequired("id"),
		{OneOf: []*schema.Schema{{Type: "string"}, {Type: "integer"}}, Nullable: true},
	}

	for _, node := range nodes {
		via30, err := Encode(node, schema.Version303)
		require.NoError(t, err)
		decoded30, err := Decode(via30, schema.Version303)
		require.NoError(t, err)

		via31, err := Encode(decoded30, schema.Version312)
		require.NoError(t, err)
		decoded31, err := Decode(via31, schema.Version312)
		require.NoError(t, err)

		// Compare through the 3.1 encoding of both decodes.
		a, err := Encode(decoded30, schema.Version312)
		require.NoError(t, err)
		b, err := Encode(decoded31, schema.Version312)
		require.NoError(t, err)
		aJSON, err := a.MarshalJSON()
		require.NoError(t, err)
		bJSON, err := b.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, string(aJSON), string(bJSON))
	}
}
