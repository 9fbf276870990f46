package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

type order struct {
	ID     string  `json:"id" validate:"required,uuid"`
	Total  float64 `json:"total"`
	Note   *string `json:"note,omitempty"`
	Status string  `json:"status" oas:"enum=open|shipped|closed"`
}

func buildOrders(version schema.Version) *Composer {
	return New(version).
		SetTitle("Orders API").
		SetAPIVersion("1.0.0").
		Get("/orders/{id}",
			WithOperationID("getOrder"),
			WithPathParam("id", ""),
			WithResponse(200, order{}, "the order"),
			WithResponse(404, nil, "not found"),
		).
		Post("/orders",
			WithOperationID("createOrder"),
			WithRequestBody("application/json", order{}, WithBodyRequired(true)),
			WithResponse(201, order{}, "created"),
		)
}

func TestComposer_Document_Structure(t *testing.T) {
	doc, err := buildOrders(schema.Version312).Document()
	require.NoError(t, err)

	assert.Equal(t, []string{"openapi", "info", "paths", "components"}, doc.Keys())

	version, _ := doc.Get("openapi")
	assert.Equal(t, "3.1.2", version)

	infoVal, _ := doc.Get("info")
	info := infoVal.(*wire.Object)
	title, _ := info.Get("title")
	assert.Equal(t, "Orders API", title)

	pathsVal, _ := doc.Get("paths")
	paths := pathsVal.(*wire.Object)
	// Paths are sorted for deterministic output.
	assert.Equal(t, []string{"/orders", "/orders/{id}"}, paths.Keys())
}

func TestComposer_Document_SharedComponent(t *testing.T) {
	c := buildOrders(schema.Version312)
	doc, err := c.Document()
	require.NoError(t, err)

	// Both operations reference one registered component.
	assert.Equal(t, 1, c.Components().SchemaCount())

	data, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), `"$ref"`))
}

func TestComposer_Document_NullableDialects(t *testing.T) {
	for _, tt := range []struct {
		version schema.Version
		want    string
		absent  string
	}{
		{schema.Version312, `"type":["string","null"]`, `"nullable"`},
		{schema.Version303, `"nullable":true`, `["string","null"]`},
	} {
		data, err := buildOrders(tt.version).MarshalJSON()
		require.NoError(t, err)
		stripped := strings.ReplaceAll(strings.ReplaceAll(string(data), " ", ""), "\n", "")
		assert.Contains(t, stripped, tt.want, tt.version.String())
		assert.NotContains(t, stripped, tt.absent, tt.version.String())
	}
}

func TestComposer_Document_DuplicateOperationID(t *testing.T) {
	c := New(schema.Version312).
		Get("/a", WithOperationID("dup")).
		Get("/b", WithOperationID("dup"))

	_, err := c.Document()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestComposer_Document_UnsupportedVersion(t *testing.T) {
	_, err := New(schema.Version20).Document()
	assert.ErrorIs(t, err, forgeerrors.ErrUnsupportedVersion)
}

func TestComposer_Document_DefaultResponse(t *testing.T) {
	doc, err := New(schema.Version312).
		SetTitle("t").SetAPIVersion("1").
		Get("/ping").
		Document()
	require.NoError(t, err)

	data, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"200":{"description":"OK"}`)
}

func TestComposer_MergeComponents(t *testing.T) {
	c := New(schema.Version312)
	c.RegisterType(order{})

	other := schema.NewComponents()
	other.SetSchema("External", &schema.Schema{Type: "string"})

	c.MergeComponents(other)
	assert.True(t, c.Components().HasSchema("External"))
}

func TestComposer_MarshalYAML(t *testing.T) {
	data, err := buildOrders(schema.Version312).MarshalYAML()
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "openapi: 3.1.2\n"))
	assert.Contains(t, text, "paths:")
	assert.Contains(t, text, "components:")
}

func TestComposer_WriteFile(t *testing.T) {
	dir := t.TempDir()
	c := buildOrders(schema.Version312)

	jsonPath := dir + "/doc.json"
	require.NoError(t, c.WriteFile(jsonPath))

	yamlPath := dir + "/doc.yaml"
	require.NoError(t, c.WriteFile(yamlPath))
}
