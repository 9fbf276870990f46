// Package tagparse parses the struct tags shared by the reflection and
// source-level scanners: json naming, oas annotations, and the requiredness
// rules that combine them.
package tagparse

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasforge/schema"
)

// JSONName parses a struct field's json tag.
// Returns the field name and options (like "omitempty").
func JSONName(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if len(parts) > 1 {
		opts = parts[1:]
	}
	return name, opts
}

// HasOmitempty checks if json tag options include omitempty.
func HasOmitempty(opts []string) bool {
	for _, opt := range opts {
		if opt == "omitempty" {
			return true
		}
	}
	return false
}

// OASOptions parses the oas struct tag into a map of key-value pairs.
// Supports formats like: oas:"description=User ID,minLength=1,maxLength=100"
func OASOptions(tag string) map[string]string {
	result := make(map[string]string)
	if tag == "" {
		return result
	}

	parts := strings.Split(tag, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Handle key=value pairs
		if idx := strings.Index(part, "="); idx > 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			result[key] = value
		} else {
			// Handle boolean flags (e.g., "deprecated" without =true)
			result[part] = "true"
		}
	}

	return result
}

// AnnotationNode builds the annotation-tier partial schema an oas tag
// describes. Only the attributes the tag names are set; everything else is
// left for lower-precedence fragments. Returns nil when the tag contributes
// nothing.
func AnnotationNode(opts map[string]string) *schema.Schema {
	if len(opts) == 0 {
		return nil
	}

	node := &schema.Schema{}
	touched := false
	for key, value := range opts {
		switch key {
		case "type":
			node.Type = value
		case "format":
			node.Format = value
		case "title":
			node.Title = value
		case "description":
			node.Description = value
		case "enum":
			// Pipe-separated enum values
			values := strings.Split(value, "|")
			node.Enum = make([]any, len(values))
			for i, v := range values {
				node.Enum[i] = strings.TrimSpace(v)
			}
		case "minimum":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				node.Minimum = &f
			}
		case "maximum":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				node.Maximum = &f
			}
		case "minLength":
			if n, err := strconv.Atoi(value); err == nil {
				node.MinLength = &n
			}
		case "maxLength":
			if n, err := strconv.Atoi(value); err == nil {
				node.MaxLength = &n
			}
		case "minItems":
			if n, err := strconv.Atoi(value); err == nil {
				node.MinItems = &n
			}
		case "maxItems":
			if n, err := strconv.Atoi(value); err == nil {
				node.MaxItems = &n
			}
		case "pattern":
			node.Pattern = value
		case "example":
			node.Example = literal(value, opts["type"])
		case "default":
			node.Default = literal(value, opts["type"])
		case "nullable":
			node.Nullable = value == "true"
		case "deprecated":
			node.Deprecated = value == "true"
		case "readOnly":
			node.ReadOnly = value == "true"
		case "writeOnly":
			node.WriteOnly = value == "true"
		case "required":
			// Handled by the field requiredness rules, not the node.
			continue
		default:
			continue
		}
		touched = true
	}

	if !touched {
		return nil
	}
	return node
}

// literal parses a tag literal based on the annotated type, falling back to
// the raw string.
func literal(value, schemaType string) any {
	switch schemaType {
	case "integer":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case "boolean":
		return value == "true"
	}
	return value
}

// Required determines if a struct field should be marked as required.
// Rules:
//  1. Fields with oas:"required=true" are explicitly required
//  2. Fields with oas:"required=false" are explicitly optional
//  3. Fields whose validation rules say required are required
//  4. Pointer fields are optional by default
//  5. Non-pointer fields without omitempty are required
func Required(oasTag string, jsonOpts []string, ruleRequired, pointer bool) bool {
	if oasTag != "" {
		opts := OASOptions(oasTag)
		if val, ok := opts["required"]; ok {
			return val == "true"
		}
	}

	if ruleRequired {
		return true
	}

	if pointer {
		return false
	}

	return !HasOmitempty(jsonOpts)
}
