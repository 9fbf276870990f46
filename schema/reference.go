package schema

import "strings"

// Namespace identifies one of the five component namespaces a reference can
// point into.
type Namespace string

const (
	// NamespaceSchema is the components/schemas namespace.
	NamespaceSchema Namespace = "schemas"
	// NamespaceResponse is the components/responses namespace.
	NamespaceResponse Namespace = "responses"
	// NamespaceParameter is the components/parameters namespace.
	NamespaceParameter Namespace = "parameters"
	// NamespaceRequestBody is the components/requestBodies namespace.
	NamespaceRequestBody Namespace = "requestBodies"
	// NamespaceSecurityScheme is the components/securitySchemes namespace.
	NamespaceSecurityScheme Namespace = "securitySchemes"
)

// refPrefix is the common prefix of every component reference string.
const refPrefix = "#/components/"

// Ref is a typed pointer to a named entry in a component namespace.
//
// A Ref never embeds the content it points to; resolution is always an
// explicit lookup through a [Components] store. Two refs are equal when
// their namespace and name match, regardless of how they were constructed.
type Ref struct {
	Namespace Namespace
	Name      string
}

// SchemaRef returns a reference into the schemas namespace.
func SchemaRef(name string) Ref {
	return Ref{Namespace: NamespaceSchema, Name: name}
}

// ResponseRef returns a reference into the responses namespace.
func ResponseRef(name string) Ref {
	return Ref{Namespace: NamespaceResponse, Name: name}
}

// ParameterRef returns a reference into the parameters namespace.
func ParameterRef(name string) Ref {
	return Ref{Namespace: NamespaceParameter, Name: name}
}

// RequestBodyRef returns a reference into the requestBodies namespace.
func RequestBodyRef(name string) Ref {
	return Ref{Namespace: NamespaceRequestBody, Name: name}
}

// SecuritySchemeRef returns a reference into the securitySchemes namespace.
func SecuritySchemeRef(name string) Ref {
	return Ref{Namespace: NamespaceSecurityScheme, Name: name}
}

// IsZero reports whether the ref is the zero value (no target).
func (r Ref) IsZero() bool {
	return r.Namespace == "" && r.Name == ""
}

// String returns the reference in its wire form,
// e.g. "#/components/schemas/User".
func (r Ref) String() string {
	return refPrefix + string(r.Namespace) + "/" + r.Name
}

// ParseRef parses a reference string in the "#/components/<ns>/<name>" form.
// Returns false if the string does not address a known component namespace.
func ParseRef(s string) (Ref, bool) {
	rest, ok := strings.CutPrefix(s, refPrefix)
	if !ok {
		return Ref{}, false
	}
	ns, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" {
		return Ref{}, false
	}
	switch Namespace(ns) {
	case NamespaceSchema, NamespaceResponse, NamespaceParameter,
		NamespaceRequestBody, NamespaceSecurityScheme:
		return Ref{Namespace: Namespace(ns), Name: name}, true
	}
	return Ref{}, false
}

// Category extracts the namespace from a reference's string form.
// Returns the empty namespace if the string is not a component reference.
func Category(ref string) Namespace {
	r, ok := ParseRef(ref)
	if !ok {
		return ""
	}
	return r.Namespace
}

// RefName extracts the leaf identifier from a reference's string form.
// Returns the empty string if the string is not a component reference.
func RefName(ref string) string {
	r, ok := ParseRef(ref)
	if !ok {
		return ""
	}
	return r.Name
}
