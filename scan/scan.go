package scan

import (
	"fmt"
	"reflect"
	"time"

	"github.com/erraggy/oasforge/internal/tagparse"
	"github.com/erraggy/oasforge/merge"
	"github.com/erraggy/oasforge/registry"
	"github.com/erraggy/oasforge/rules"
	"github.com/erraggy/oasforge/schema"
)

// DocProvider supplies structure-tier fragments gathered outside the type
// system, such as source doc comments. Implementations return nil when they
// have nothing for the given type and field; field is empty for the type
// itself.
type DocProvider interface {
	Fragment(typeName, fieldName string) *schema.Schema
}

// Scanner derives schema nodes from Go values via reflection. Named struct
// types are registered with the scanner's registry so repeated and recursive
// types collapse into $ref nodes.
type Scanner struct {
	reg      *registry.Registry
	resolver *merge.Resolver
	logger   schema.Logger
	docs     DocProvider
	keyFor   func(reflect.Type) string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger schema.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKeyFunc overrides how registry keys are derived from types. The
// default uses the type's fully qualified name.
func WithKeyFunc(fn func(reflect.Type) string) Option {
	return func(s *Scanner) {
		if fn != nil {
			s.keyFor = fn
		}
	}
}

// WithDocProvider attaches a source of structure-tier fragments, typically
// backed by parsed doc comments.
func WithDocProvider(p DocProvider) Option {
	return func(s *Scanner) {
		s.docs = p
	}
}

// New creates a Scanner backed by the given registry.
func New(reg *registry.Registry, opts ...Option) *Scanner {
	s := &Scanner{
		reg:    reg,
		logger: schema.NopLogger{},
		keyFor: func(t reflect.Type) string { return t.String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = merge.NewResolver(merge.WithLogger(s.logger))
	return s
}

// Registry returns the registry the scanner registers named types with.
func (s *Scanner) Registry() *registry.Registry {
	return s.reg
}

// Schema derives the schema node for v. Named structs come back as $ref
// nodes pointing into the registry's component store; everything else is
// returned inline.
func (s *Scanner) Schema(v any) *schema.Schema {
	if v == nil {
		return &schema.Schema{}
	}
	return s.schemaFromType(reflect.TypeOf(v))
}

// SchemaForType is the reflect.Type flavor of Schema.
func (s *Scanner) SchemaForType(t reflect.Type) *schema.Schema {
	if t == nil {
		return &schema.Schema{}
	}
	return s.schemaFromType(t)
}

var (
	timeType = reflect.TypeOf(time.Time{})
)

func (s *Scanner) schemaFromType(t reflect.Type) *schema.Schema {
	// Pointers unwrap to nullable renditions of their element type.
	if t.Kind() == reflect.Ptr {
		elem := s.schemaFromType(t.Elem())
		return nullableNode(elem)
	}

	// Special types before general kind handling.
	if t == timeType {
		return &schema.Schema{Type: "string", Format: "date-time"}
	}
	if isUUIDType(t) {
		return &schema.Schema{Type: "string", Format: "uuid"}
	}

	switch t.Kind() {
	case reflect.Struct:
		if t.Name() != "" {
			return s.registerStruct(t)
		}
		return s.structNode(t)
	case reflect.Slice, reflect.Array:
		return &schema.Schema{
			Type:  "array",
			Items: s.schemaFromType(t.Elem()),
		}
	case reflect.Map:
		// Additional-properties shapes are not modeled; a plain object is
		// the closest honest rendition.
		return &schema.Schema{Type: "object"}
	case reflect.String:
		return &schema.Schema{Type: "string"}
	case reflect.Bool:
		return &schema.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &schema.Schema{Type: "integer", Format: "int32"}
	case reflect.Int64:
		return &schema.Schema{Type: "integer", Format: "int64"}
	case reflect.Float32:
		return &schema.Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &schema.Schema{Type: "number", Format: "double"}
	case reflect.Interface:
		return &schema.Schema{}
	default:
		s.logger.Warn("unsupported kind, emitting empty schema", "kind", t.Kind().String(), "type", t.String())
		return &schema.Schema{}
	}
}

// registerStruct routes a named struct through the registry so the type is
// built once and referenced everywhere, including from inside itself.
func (s *Scanner) registerStruct(t reflect.Type) *schema.Schema {
	key := s.keyFor(t)
	ref := s.reg.Register(key, func() *schema.Schema {
		return s.structNode(t)
	})
	return schema.NewRefNode(ref)
}

// structNode builds the object node for a struct type, merging the
// per-field fragments each tier contributes.
func (s *Scanner) structNode(t reflect.Type) *schema.Schema {
	node := &schema.Schema{Type: "object"}

	if s.docs != nil {
		if frag := s.docs.Fragment(t.String(), ""); frag != nil {
			node = s.resolver.Resolve(
				merge.Fragment{Tier: merge.TierStructure, Node: frag, Source: t.String()},
				merge.Fragment{Tier: merge.TierTypeInfo, Node: node, Source: t.String()},
			)
		}
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		jsonTag := field.Tag.Get("json")
		name, jsonOpts := tagparse.JSONName(jsonTag)
		if name == "-" {
			continue
		}

		// Embedded structs without a json name inline their fields.
		if field.Anonymous && name == "" {
			s.inlineEmbedded(node, field)
			continue
		}
		if name == "" {
			name = field.Name
		}

		fieldNode, ruleRequired := s.fieldNode(t, field)
		node = node.WithProperty(name, fieldNode)

		if isFieldRequired(field, jsonOpts, ruleRequired) {
			node = node.WithRequired(name)
		}
	}

	return node
}

// inlineEmbedded hoists an embedded struct's properties and required list
// into the parent node, matching encoding/json flattening.
func (s *Scanner) inlineEmbedded(node *schema.Schema, field reflect.StructField) {
	t := field.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	embedded := s.structNode(t)
	if embedded.Properties != nil {
		for name, child := range embedded.Properties.All() {
			if !node.HasProperty(name) {
				*node = *node.WithProperty(name, child)
			}
		}
	}
	if len(embedded.Required) > 0 {
		*node = *node.WithRequired(embedded.Required...)
	}
}

// fieldNode assembles the fragments a single field contributes and resolves
// them into one node. The second return reports whether the field's
// validation rules demand it be required.
func (s *Scanner) fieldNode(owner reflect.Type, field reflect.StructField) (*schema.Schema, bool) {
	fragments := make([]merge.Fragment, 0, 4)
	source := fmt.Sprintf("%s.%s", owner.String(), field.Name)

	if oasTag := field.Tag.Get("oas"); oasTag != "" {
		if ann := tagparse.AnnotationNode(tagparse.OASOptions(oasTag)); ann != nil {
			fragments = append(fragments, merge.Fragment{
				Tier:   merge.TierAnnotation,
				Node:   ann,
				Source: source,
			})
		}
	}

	if s.docs != nil {
		if frag := s.docs.Fragment(owner.String(), field.Name); frag != nil {
			fragments = append(fragments, merge.Fragment{
				Tier:   merge.TierStructure,
				Node:   frag,
				Source: source,
			})
		}
	}

	typed := s.schemaFromType(field.Type)
	fragments = append(fragments, merge.Fragment{
		Tier:   merge.TierTypeInfo,
		Node:   typed,
		Source: source,
	})

	ruleRequired := false
	if rule := field.Tag.Get("validate"); rule != "" {
		if frag, required := rules.Fragment(rule, source); frag.Node != nil {
			fragments = append(fragments, frag)
			ruleRequired = required
		} else {
			ruleRequired = required
		}
	}

	if len(fragments) == 1 {
		return typed, ruleRequired
	}
	return s.resolver.Resolve(fragments...), ruleRequired
}

// nullableNode marks a node nullable. Reference nodes are terminal, so a
// nullable pointer to a registered type wraps the ref in a composition the
// encoder can render for either version family.
func nullableNode(node *schema.Schema) *schema.Schema {
	if node == nil {
		return &schema.Schema{Nullable: true}
	}
	if !node.Ref.IsZero() {
		return &schema.Schema{
			AnyOf:    []*schema.Schema{node},
			Nullable: true,
		}
	}
	out := node.Clone()
	out.Nullable = true
	return out
}

// isUUIDType matches uuid types by name so the scanner does not need to
// import any particular uuid package.
func isUUIDType(t reflect.Type) bool {
	if t.Kind() != reflect.Array || t.Elem().Kind() != reflect.Uint8 || t.Len() != 16 {
		return false
	}
	return t.Name() == "UUID"
}
