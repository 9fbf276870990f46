package scan

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasforge/registry"
	"github.com/erraggy/oasforge/schema"
)

func newScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	return New(registry.New(schema.NewComponents()), opts...)
}

type simpleUser struct {
	ID    string `json:"id" validate:"required,uuid"`
	Name  string `json:"name" oas:"description=Display name,minLength=1"`
	Email string `json:"email,omitempty" validate:"email"`
	Age   *int   `json:"age,omitempty"`
}

func TestScanner_Schema_NamedStruct(t *testing.T) {
	s := newScanner(t)

	node := s.Schema(simpleUser{})
	require.Equal(t, schema.KindReference, node.Kind())

	name := node.Ref.Name
	stored := s.Registry().Components().Schema(name)
	require.NotNil(t, stored)
	assert.Equal(t, "object", stored.Type)

	id, ok := stored.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "string", id.Type)
	assert.Equal(t, "uuid", id.Format)

	nameProp, ok := stored.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Display name", nameProp.Description)
	require.NotNil(t, nameProp.MinLength)
	assert.Equal(t, 1, *nameProp.MinLength)

	email, ok := stored.Properties.Get("email")
	require.True(t, ok)
	assert.Equal(t, "email", email.Format)

	age, ok := stored.Properties.Get("age")
	require.True(t, ok)
	assert.Equal(t, "integer", age.Type)
	assert.True(t, age.Nullable, "pointer fields are nullable")
}

func TestScanner_Schema_Required(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(simpleUser{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	// id: rule-required; name: non-pointer without omitempty.
	assert.ElementsMatch(t, []string{"id", "name"}, stored.Required)
}

type treeNode struct {
	Value    string      `json:"value"`
	Parent   *treeNode   `json:"parent,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

func TestScanner_Schema_SelfReferential(t *testing.T) {
	s := newScanner(t)

	node := s.Schema(treeNode{})
	require.Equal(t, schema.KindReference, node.Kind())

	stored := s.Registry().Components().Schema(node.Ref.Name)
	require.NotNil(t, stored)

	// The recursive field collapsed into a reference instead of recursing.
	parent, ok := stored.Properties.Get("parent")
	require.True(t, ok)
	require.Len(t, parent.AnyOf, 1)
	assert.Equal(t, node.Ref, parent.AnyOf[0].Ref)
	assert.True(t, parent.Nullable)

	children, ok := stored.Properties.Get("children")
	require.True(t, ok)
	assert.Equal(t, "array", children.Type)
	require.NotNil(t, children.Items)
}

func TestScanner_Schema_SameTypeScannedOnce(t *testing.T) {
	s := newScanner(t)

	first := s.Schema(simpleUser{})
	second := s.Schema(simpleUser{})

	assert.Equal(t, first.Ref, second.Ref)
	assert.Equal(t, 1, s.Registry().Components().SchemaCount())
}

func TestScanner_Schema_Primitives(t *testing.T) {
	s := newScanner(t)
	tests := []struct {
		value  any
		typ    string
		format string
	}{
		{"", "string", ""},
		{true, "boolean", ""},
		{int(0), "integer", "int32"},
		{int64(0), "integer", "int64"},
		{uint16(0), "integer", "int32"},
		{float32(0), "number", "float"},
		{float64(0), "number", "double"},
		{time.Time{}, "string", "date-time"},
		{map[string]int{}, "object", ""},
	}
	for _, tt := range tests {
		node := s.Schema(tt.value)
		assert.Equal(t, tt.typ, node.Type)
		assert.Equal(t, tt.format, node.Format)
	}
}

func TestScanner_Schema_Slice(t *testing.T) {
	s := newScanner(t)
	node := s.Schema([]string{})
	assert.Equal(t, "array", node.Type)
	require.NotNil(t, node.Items)
	assert.Equal(t, "string", node.Items.Type)
}

func TestScanner_Schema_Nil(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(nil)
	assert.Equal(t, schema.KindAny, node.Kind())
}

type withSkipped struct {
	Visible string `json:"visible"`
	Hidden  string `json:"-"`
	secret  string
}

func TestScanner_Schema_SkipsHiddenFields(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(withSkipped{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	assert.True(t, stored.HasProperty("visible"))
	assert.False(t, stored.HasProperty("Hidden"))
	assert.Equal(t, 1, stored.Properties.Len())
}

type auditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type order struct {
	auditFields
	ID string `json:"id"`
}

func TestScanner_Schema_EmbeddedInlined(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(order{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	assert.True(t, stored.HasProperty("id"))
	assert.True(t, stored.HasProperty("createdAt"))
	assert.True(t, stored.HasProperty("updatedAt"))
}

type annotated struct {
	Status string `json:"status" oas:"enum=draft|published,default=draft,deprecated"`
	Score  int    `json:"score" oas:"minimum=0,maximum=100,example=42,type=integer"`
}

func TestScanner_Schema_OASTagAnnotations(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(annotated{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	status, ok := stored.Properties.Get("status")
	require.True(t, ok)
	assert.Equal(t, []any{"draft", "published"}, status.Enum)
	assert.Equal(t, "draft", status.Default)
	assert.True(t, status.Deprecated)

	score, ok := stored.Properties.Get("score")
	require.True(t, ok)
	require.NotNil(t, score.Minimum)
	assert.Equal(t, float64(0), *score.Minimum)
	require.NotNil(t, score.Maximum)
	assert.Equal(t, float64(100), *score.Maximum)
	assert.Equal(t, int64(42), score.Example)
}

type requiredOverride struct {
	A string `json:"a,omitempty" oas:"required=true"`
	B string `json:"b" oas:"required=false"`
}

func TestScanner_Schema_RequiredOverride(t *testing.T) {
	s := newScanner(t)
	node := s.Schema(requiredOverride{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	assert.Equal(t, []string{"a"}, stored.Required)
}

type docProviderStub struct {
	byField map[string]*schema.Schema
}

func (d *docProviderStub) Fragment(typeName, fieldName string) *schema.Schema {
	return d.byField[typeName+"."+fieldName]
}

type documented struct {
	Email string `json:"email"`
}

func TestScanner_Schema_DocProvider(t *testing.T) {
	docs := &docProviderStub{byField: map[string]*schema.Schema{
		"scan.documented.Email": {Description: "Contact address.", Format: "email"},
	}}
	s := newScanner(t, WithDocProvider(docs))

	node := s.Schema(documented{})
	stored := s.Registry().Components().Schema(node.Ref.Name)

	email, ok := stored.Properties.Get("email")
	require.True(t, ok)
	assert.Equal(t, "Contact address.", email.Description)
	assert.Equal(t, "email", email.Format)
	assert.Equal(t, "string", email.Type)
}

func TestScanner_WithKeyFunc(t *testing.T) {
	s := New(registry.New(schema.NewComponents()), WithKeyFunc(func(rt reflect.Type) string {
		return "custom." + rt.Name()
	}))

	node := s.Schema(simpleUser{})
	assert.Equal(t, "CustomSimpleUser", node.Ref.Name)
}
