package scan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasforge/internal/tagparse"
)

func TestIsFieldRequired(t *testing.T) {
	type sample struct {
		Plain     string  `json:"plain"`
		Omitempty string  `json:"omitempty_field,omitempty"`
		Pointer   *string `json:"pointer"`
		Forced    *string `json:"forced" oas:"required=true"`
		Relaxed   string  `json:"relaxed" oas:"required=false"`
	}
	rt := reflect.TypeOf(sample{})

	get := func(name string) reflect.StructField {
		f, ok := rt.FieldByName(name)
		require.True(t, ok)
		return f
	}
	jsonOpts := func(f reflect.StructField) []string {
		_, opts := tagparse.JSONName(f.Tag.Get("json"))
		return opts
	}

	assert.True(t, isFieldRequired(get("Plain"), jsonOpts(get("Plain")), false))
	assert.False(t, isFieldRequired(get("Omitempty"), jsonOpts(get("Omitempty")), false))
	assert.True(t, isFieldRequired(get("Omitempty"), jsonOpts(get("Omitempty")), true), "rule requiredness wins over omitempty")
	assert.False(t, isFieldRequired(get("Pointer"), jsonOpts(get("Pointer")), false))
	assert.True(t, isFieldRequired(get("Forced"), jsonOpts(get("Forced")), false))
	assert.False(t, isFieldRequired(get("Relaxed"), jsonOpts(get("Relaxed")), true), "explicit override beats rules")
}
