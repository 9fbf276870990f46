package srcscan

import (
	"fmt"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/oasforge/schema"
)

// Provider holds structure-tier fragments harvested from Go source doc
// comments. It satisfies scan.DocProvider: keys follow reflect's
// Type.String() convention ("pkg.TypeName"), with field fragments keyed by
// the additional field name.
type Provider struct {
	types  map[string]*schema.Schema
	fields map[string]map[string]*schema.Schema
	logger schema.Logger
}

// Option configures Load.
type Option func(*Provider)

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger schema.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Load parses the packages matched by patterns and collects doc comments
// from exported struct types and their fields. Package load errors are
// returned; individual files missing comments simply contribute nothing.
func Load(dir string, patterns []string, opts ...Option) (*Provider, error) {
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
		Mode: packages.NeedSyntax | packages.NeedName | packages.NeedFiles,
		Dir:  dir,
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
	return p, nil
}

// Fragment returns the doc-comment fragment for a type (fieldName empty) or
// one of its fields, or nil when the source said nothing.
func (p *Provider) Fragment(typeName, fieldName string) *schema.Schema {
	if fieldName == "" {
		return p.types[typeName]
	}
	if fields, ok := p.fields[typeName]; ok {
		return fields[fieldName]
	}
	return nil
}

// TypeCount reports how many types contributed fragments.
func (p *Provider) TypeCount() int {
	return len(p.types)
}

func (p *Provider) collectFile(pkgName string, file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			key := pkgName + "." + ts.Name.Name

			// The type's own doc may sit on the GenDecl when the type is
			// declared alone, or on the TypeSpec inside a grouped block.
			doc := ts.Doc
			if doc == nil {
				doc = gen.Doc
			}
			if frag := commentFragment(doc, ts.Name.Name); frag != nil {
				p.types[key] = frag
			}

			p.collectFields(key, st)
		}
	}
}

func (p *Provider) collectFields(typeKey string, st *ast.StructType) {
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}
		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			frag := commentFragment(doc, name.Name)
			if frag == nil {
				continue
			}
			if p.fields[typeKey] == nil {
				p.fields[typeKey] = make(map[string]*schema.Schema)
			}
			p.fields[typeKey][name.Name] = frag
		}
	}
}

// commentFragment turns a doc comment into a partial node. Plain text
// becomes the description, with the conventional leading identifier
// stripped. Directive lines starting with "oasforge:" set individual
// attributes and do not appear in the description.
func commentFragment(doc *ast.CommentGroup, ident string) *schema.Schema {
	if doc == nil {
		return nil
	}

	var (
		node    schema.Schema
		touched bool
		lines   []string
	)
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if directive, ok := strings.CutPrefix(line, "oasforge:"); ok {
			if applyDirective(&node, directive) {
				touched = true
			}
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) > 0 {
		text := strings.Join(lines, " ")
		// "User is a registered account." reads better as
		// "A registered account." in a description field.
		if rest, ok := strings.CutPrefix(text, ident+" "); ok {
			for _, article := range []string{"is ", "holds ", "describes ", "represents "} {
				if after, ok := strings.CutPrefix(rest, article); ok {
					rest = after
					break
				}
			}
			text = capitalize(rest)
		}
		node.Description = text
		touched = true
	}

	if !touched {
		return nil
	}
	return &node
}

// applyDirective handles one "oasforge:" comment directive.
func applyDirective(node *schema.Schema, directive string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(directive), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "deprecated":
		node.Deprecated = true
	case "readonly":
		node.ReadOnly = true
	case "writeonly":
		node.WriteOnly = true
	case "nullable":
		node.Nullable = true
	case "format":
		if arg == "" {
			return false
		}
		node.Format = arg
	case "title":
		if arg == "" {
			return false
		}
		node.Title = arg
	case "example":
		if arg == "" {
			return false
		}
		node.Example = arg
	default:
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
