package scan

import (
	"reflect"

	"github.com/erraggy/oasforge/internal/tagparse"
)

// isFieldRequired applies the shared requiredness rules to a reflected
// struct field.
func isFieldRequired(field reflect.StructField, jsonOpts []string, ruleRequired bool) bool {
	return tagparse.Required(field.Tag.Get("oas"), jsonOpts, ruleRequired, field.Type.Kind() == reflect.Ptr)
}
