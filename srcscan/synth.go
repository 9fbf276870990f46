package srcscan

import (
	"fmt"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/oasforge/internal/tagparse"
	"github.com/erraggy/oasforge/merge"
	"github.com/erraggy/oasforge/registry"
	"github.com/erraggy/oasforge/rules"
	"github.com/erraggy/oasforge/schema"
)

// Synthesize loads and type-checks the packages matched by patterns rooted
// at dir, derives schema nodes for every exported struct type, and interns
// them into the returned component store. It is the source-level counterpart
// of the reflection scanner for code the calling program does not import:
// fragments come from struct tags, doc comments, validation rules, and the
// checked types themselves, merged under the usual tier precedence.
func Synthesize(dir string, patterns []string, opts ...Option) (*schema.Components, error) {
	p := &Provider{
		types:  make(map[string]*schema.Schema),
		fields: make(map[string]map[string]*schema.Schema),
		logger: schema.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedImports | packages.NeedDeps,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("loading package %s: %v", pkg.Name, pkg.Errors[0])
		}
		for _, file := range pkg.Syntax {
			p.collectFile(pkg.Name, file)
		}
	}

	comps := schema.NewComponents()
	syn := &synthesizer{
		reg:      registry.New(comps, registry.WithLogger(p.logger)),
		resolver: merge.NewResolver(merge.WithLogger(p.logger)),
		docs:     p,
		logger:   p.logger,
	}
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Struct); !ok {
				continue
			}
			syn.registerNamed(named)
		}
	}
	return comps, nil
}

// synthesizer mirrors the reflection scanner over go/types: named structs
// route through the registry, fields resolve tiered fragments.
type synthesizer struct {
	reg      *registry.Registry
	resolver *merge.Resolver
	docs     *Provider
	logger   schema.Logger
}

func (s *synthesizer) keyFor(named *types.Named) string {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	// Matches reflect's Type.String() convention, so doc-comment fragment
	// keys line up with the reflection scanner's.
	return obj.Pkg().Name() + "." + obj.Name()
}

func (s *synthesizer) registerNamed(named *types.Named) *schema.Schema {
	key := s.keyFor(named)
	ref := s.reg.Register(key, func() *schema.Schema {
		st := named.Underlying().(*types.Struct)
		return s.structNode(st, key)
	})
	return schema.NewRefNode(ref)
}

func (s *synthesizer) typeNode(t types.Type) *schema.Schema {
	switch tt := t.(type) {
	case *types.Pointer:
		return nullableNode(s.typeNode(tt.Elem()))
	case *types.Alias:
		return s.typeNode(types.Unalias(tt))
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
			return &schema.Schema{Type: "string", Format: "date-time"}
		}
		if isUUIDNamed(tt) {
			return &schema.Schema{Type: "string", Format: "uuid"}
		}
		if _, ok := tt.Underlying().(*types.Struct); ok {
			return s.registerNamed(tt)
		}
		return s.typeNode(tt.Underlying())
	case *types.Basic:
		return s.basicNode(tt)
	case *types.Slice:
		return &schema.Schema{Type: "array", Items: s.typeNode(tt.Elem())}
	case *types.Array:
		return &schema.Schema{Type: "array", Items: s.typeNode(tt.Elem())}
	case *types.Map:
		return &schema.Schema{Type: "object"}
	case *types.Struct:
		return s.structNode(tt, "")
	case *types.Interface:
		return &schema.Schema{}
	default:
		s.logger.Warn("unsupported type, emitting empty schema", "type", t.String())
		return &schema.Schema{}
	}
}

func (s *synthesizer) basicNode(b *types.Basic) *schema.Schema {
	switch b.Kind() {
	case types.String:
		return &schema.Schema{Type: "string"}
	case types.Bool:
		return &schema.Schema{Type: "boolean"}
	case types.Int, types.Int8, types.Int16, types.Int32,
		types.Uint, types.Uint8, types.Uint16, types.Uint32:
		return &schema.Schema{Type: "integer", Format: "int32"}
	case types.Int64, types.Uint64:
		return &schema.Schema{Type: "integer", Format: "int64"}
	case types.Float32:
		return &schema.Schema{Type: "number", Format: "float"}
	case types.Float64:
		return &schema.Schema{Type: "number", Format: "double"}
	default:
		s.logger.Warn("unsupported basic kind, emitting empty schema", "type", b.String())
		return &schema.Schema{}
	}
}

// structNode builds the object node for a struct type. typeName keys
// doc-comment lookups and is empty for anonymous structs.
func (s *synthesizer) structNode(st *types.Struct, typeName string) *schema.Schema {
	node := &schema.Schema{Type: "object"}

	if typeName != "" {
		if frag := s.docs.Fragment(typeName, ""); frag != nil {
			node = s.resolver.Resolve(
				merge.Fragment{Tier: merge.TierStructure, Node: frag, Source: typeName},
				merge.Fragment{Tier: merge.TierTypeInfo, Node: node, Source: typeName},
			)
		}
	}

	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}
		tag := reflect.StructTag(st.Tag(i))

		name, jsonOpts := tagparse.JSONName(tag.Get("json"))
		if name == "-" {
			continue
		}
		if f.Embedded() && name == "" {
			s.inlineEmbedded(node, f.Type())
			continue
		}
		if name == "" {
			name = f.Name()
		}

		fieldNode, ruleRequired := s.fieldNode(typeName, f, tag)
		node = node.WithProperty(name, fieldNode)

		_, pointer := f.Type().(*types.Pointer)
		if tagparse.Required(tag.Get("oas"), jsonOpts, ruleRequired, pointer) {
			node = node.WithRequired(name)
		}
	}

	return node
}

// inlineEmbedded hoists an embedded struct's properties and required list
// into the parent node, matching encoding/json flattening.
func (s *synthesizer) inlineEmbedded(node *schema.Schema, t types.Type) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	t = types.Unalias(t)

	var embedded *schema.Schema
	switch tt := t.(type) {
	case *types.Named:
		st, ok := tt.Underlying().(*types.Struct)
		if !ok {
			return
		}
		embedded = s.structNode(st, s.keyFor(tt))
	case *types.Struct:
		embedded = s.structNode(tt, "")
	default:
		return
	}

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
func (s *synthesizer) fieldNode(typeName string, f *types.Var, tag reflect.StructTag) (*schema.Schema, bool) {
	fragments := make([]merge.Fragment, 0, 4)
	source := f.Name()
	if typeName != "" {
		source = typeName + "." + f.Name()
	}

	if oasTag := tag.Get("oas"); oasTag != "" {
		if ann := tagparse.AnnotationNode(tagparse.OASOptions(oasTag)); ann != nil {
			fragments = append(fragments, merge.Fragment{
				Tier:   merge.TierAnnotation,
				Node:   ann,
				Source: source,
			})
		}
	}

	if typeName != "" {
		if frag := s.docs.Fragment(typeName, f.Name()); frag != nil {
			fragments = append(fragments, merge.Fragment{
				Tier:   merge.TierStructure,
				Node:   frag,
				Source: source,
			})
		}
	}

	typed := s.typeNode(f.Type())
	fragments = append(fragments, merge.Fragment{
		Tier:   merge.TierTypeInfo,
		Node:   typed,
		Source: source,
	})

	ruleRequired := false
	if rule := tag.Get("validate"); rule != "" {
		frag, required := rules.Fragment(rule, source)
		ruleRequired = required
		if frag.Node != nil {
			fragments = append(fragments, frag)
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

// isUUIDNamed matches uuid types by shape and name so no particular uuid
// package needs importing.
func isUUIDNamed(named *types.Named) bool {
	if named.Obj().Name() != "UUID" {
		return false
	}
	arr, ok := named.Underlying().(*types.Array)
	if !ok || arr.Len() != 16 {
		return false
	}
	elem, ok := arr.Elem().(*types.Basic)
	return ok && elem.Kind() == types.Uint8
}
