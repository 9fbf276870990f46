package schema

import (
	"slices"
	"sort"
)

// Components is the store of named, registered entries across the five
// component namespaces.
//
// The schemas namespace holds canonical *Schema nodes; the other four hold
// opaque documents owned by whichever emission stage populates them. A store
// is created empty per document build, mutated by the registry (schemas) or
// emission-stage collaborators (everything else), and read out name-sorted
// at serialization time.
//
// Concurrency: a Components store is not safe for concurrent use. Parallel
// builders must each own a store and union them afterwards with [Merge].
type Components struct {
	schemas         map[string]*Schema
	responses       map[string]any
	parameters      map[string]any
	requestBodies   map[string]any
	securitySchemes map[string]any
}

// NewComponents creates an empty component store.
func NewComponents() *Components {
	return &Components{
		schemas:         make(map[string]*Schema),
		responses:       make(map[string]any),
		parameters:      make(map[string]any),
		requestBodies:   make(map[string]any),
		securitySchemes: make(map[string]any),
	}
}

// SetSchema registers a schema under the given name, replacing any previous
// entry.
func (c *Components) SetSchema(name string, s *Schema) {
	c.schemas[name] = s
}

// Schema returns the schema registered under name, or nil.
func (c *Components) Schema(name string) *Schema {
	return c.schemas[name]
}

// HasSchema reports whether a schema is registered under name.
func (c *Components) HasSchema(name string) bool {
	_, ok := c.schemas[name]
	return ok
}

// SchemaNames returns the registered schema names sorted for deterministic
// serialization.
func (c *Components) SchemaNames() []string {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaCount returns the number of registered schemas.
func (c *Components) SchemaCount() int {
	return len(c.schemas)
}

// Resolve looks up the entry a reference points at. Schema references
// resolve to a *Schema; the other namespaces resolve to whatever opaque
// document was registered. Returns false when the target is absent.
func (c *Components) Resolve(ref Ref) (any, bool) {
	switch ref.Namespace {
	case NamespaceSchema:
		s, ok := c.schemas[ref.Name]
		return s, ok
	case NamespaceResponse:
		v, ok := c.responses[ref.Name]
		return v, ok
	case NamespaceParameter:
		v, ok := c.parameters[ref.Name]
		return v, ok
	case NamespaceRequestBody:
		v, ok := c.requestBodies[ref.Name]
		return v, ok
	case NamespaceSecurityScheme:
		v, ok := c.securitySchemes[ref.Name]
		return v, ok
	}
	return nil, false
}

// Set registers an opaque entry under the given namespace and name.
// Use SetSchema for the schemas namespace; Set rejects it.
func (c *Components) Set(ns Namespace, name string, entry any) bool {
	switch ns {
	case NamespaceResponse:
		c.responses[name] = entry
	case NamespaceParameter:
		c.parameters[name] = entry
	case NamespaceRequestBody:
		c.requestBodies[name] = entry
	case NamespaceSecurityScheme:
		c.securitySchemes[name] = entry
	default:
		return false
	}
	return true
}

// Names returns the sorted entry names of the given namespace.
func (c *Components) Names(ns Namespace) []string {
	var m map[string]any
	switch ns {
	case NamespaceSchema:
		return c.SchemaNames()
	case NamespaceResponse:
		m = c.responses
	case NamespaceParameter:
		m = c.parameters
	case NamespaceRequestBody:
		m = c.requestBodies
	case NamespaceSecurityScheme:
		m = c.securitySchemes
	default:
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmpty reports whether no namespace holds any entry.
func (c *Components) IsEmpty() bool {
	return len(c.schemas) == 0 && len(c.responses) == 0 && len(c.parameters) == 0 &&
		len(c.requestBodies) == 0 && len(c.securitySchemes) == 0
}

// Merge unions another store into this one by namespace and name. Entries
// already present win; colliding names from other are reported back to the
// caller. This is the join step for parallel builds, where each worker built
// against its own store.
func (c *Components) Merge(other *Components) (collisions []Ref) {
	if other == nil {
		return nil
	}
	for name, s := range other.schemas {
		if _, exists := c.schemas[name]; exists {
			collisions = append(collisions, SchemaRef(name))
			continue
		}
		c.schemas[name] = s
	}
	opaque := []struct {
		dst map[string]any
		src map[string]any
		mk  func(string) Ref
	}{
		{c.responses, other.responses, ResponseRef},
		{c.parameters, other.parameters, ParameterRef},
		{c.requestBodies, other.requestBodies, RequestBodyRef},
		{c.securitySchemes, other.securitySchemes, SecuritySchemeRef},
	}
	for _, o := range opaque {
		names := make([]string, 0, len(o.src))
		for name := range o.src {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if _, exists := o.dst[name]; exists {
				collisions = append(collisions, o.mk(name))
				continue
			}
			o.dst[name] = o.src[name]
		}
	}
	return collisions
}
