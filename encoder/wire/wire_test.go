package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestObject_SetPreservesOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("type", "string")
	obj.Set("format", "uuid")
	obj.Set("description", "primary key")

	assert.Equal(t, []string{"type", "format", "description"}, obj.Keys())

	// Replacing a key keeps its position.
	obj.Set("format", "email")
	assert.Equal(t, []string{"type", "format", "description"}, obj.Keys())

	v, ok := obj.Get("format")
	require.True(t, ok)
	assert.Equal(t, "email", v)
}

func TestObject_Delete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("c", 3)

	obj.Delete("b")
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.False(t, obj.Has("b"))

	obj.Delete("missing")
	assert.Equal(t, 2, obj.Len())
}

func TestObject_MarshalJSON_InsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zebra", 1)
	obj.Set("apple", 2)

	nested := NewObject()
	nested.Set("y", true)
	nested.Set("x", false)
	obj.Set("nested", nested)

	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"nested":{"y":true,"x":false}}`, string(data))
}

func TestObject_MarshalJSON_Deterministic(t *testing.T) {
	build := func() *Object {
		obj := NewObject()
		obj.Set("type", []any{"string", "null"})
		obj.Set("extras", map[string]any{"b": 2, "a": 1})
		return obj
	}

	first, err := build().MarshalJSON()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := build().MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
	// Plain maps serialize with sorted keys.
	assert.Contains(t, string(first), `"extras":{"a":1,"b":2}`)
}

func TestObject_MarshalJSONIndent(t *testing.T) {
	obj := NewObject()
	obj.Set("type", "string")

	data, err := obj.MarshalJSONIndent("", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"type\": \"string\"\n}", string(data))
}

func TestObject_MarshalYAML_InsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zebra", 1)
	obj.Set("apple", []any{"x", "y"})

	data, err := yaml.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\napple:\n  - x\n  - y\n", string(data))
}

func TestParseJSON_PreservesKeyOrder(t *testing.T) {
	in := `{"zebra": 1, "apple": {"nested": true, "another": [1, 2.5, "three", null]}}`

	obj, err := ParseJSON([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple"}, obj.Keys())

	nestedVal, ok := obj.Get("apple")
	require.True(t, ok)
	nested, ok := nestedVal.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"nested", "another"}, nested.Keys())
}

func TestParseJSON_RoundTrip(t *testing.T) {
	in := `{"type":["string","null"],"minLength":3,"properties":{"id":{"type":"string"}}}`

	obj, err := ParseJSON([]byte(in))
	require.NoError(t, err)

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{"unterminated": `))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`[1, 2, 3]`))
	assert.Error(t, err, "top level must be an object")
}
