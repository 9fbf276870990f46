package composer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasforge/encoder"
	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/registry"
	"github.com/erraggy/oasforge/scan"
	"github.com/erraggy/oasforge/schema"
)

// Composer assembles an OpenAPI document from scanned Go types and declared
// operations. It owns a registry so every type registered through any
// operation lands in one shared component store.
//
// Concurrency: Composer instances are not safe for concurrent use.
type Composer struct {
	version schema.Version

	title          string
	apiVersion     string
	description    string
	termsOfService string
	contactName    string
	contactEmail   string
	licenseName    string
	licenseURL     string
	servers        []string

	paths      map[string]map[string]*operation // path -> lowercase method -> op
	components *schema.Components
	reg        *registry.Registry
	scanner    *scan.Scanner
	logger     schema.Logger

	operationIDs map[string]bool
	errors       []error
}

// Option configures a Composer.
type Option func(*config)

type config struct {
	logger schema.Logger
	docs   scan.DocProvider
	name   func(key string) string
}

// WithLogger sets the logger for composition diagnostics.
func WithLogger(logger schema.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDocProvider forwards doc-comment fragments to the scanner.
func WithDocProvider(p scan.DocProvider) Option {
	return func(c *config) {
		c.docs = p
	}
}

// WithNameFunc overrides how component names derive from registry keys.
func WithNameFunc(fn func(key string) string) Option {
	return func(c *config) {
		c.name = fn
	}
}

// New creates a Composer targeting the given OpenAPI version.
//
// Example:
//
//	doc := composer.New(schema.Version312).
//	    SetTitle("Orders API").
//	    SetAPIVersion("1.0.0").
//	    Get("/orders/{id}",
//	        composer.WithOperationID("getOrder"),
//	        composer.WithResponse(200, Order{}, "the order"),
//	    )
//	data, err := doc.MarshalJSON()
func New(version schema.Version, opts ...Option) *Composer {
	cfg := &config{logger: schema.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	components := schema.NewComponents()
	regOpts := []registry.Option{registry.WithLogger(cfg.logger)}
	if cfg.name != nil {
		regOpts = append(regOpts, registry.WithNameFunc(cfg.name))
	}
	reg := registry.New(components, regOpts...)

	scanOpts := []scan.Option{scan.WithLogger(cfg.logger)}
	if cfg.docs != nil {
		scanOpts = append(scanOpts, scan.WithDocProvider(cfg.docs))
	}

	return &Composer{
		version:      version,
		paths:        make(map[string]map[string]*operation),
		components:   components,
		reg:          reg,
		scanner:      scan.New(reg, scanOpts...),
		logger:       cfg.logger,
		operationIDs: make(map[string]bool),
	}
}

// SetTitle sets the document title.
func (c *Composer) SetTitle(title string) *Composer {
	c.title = title
	return c
}

// SetAPIVersion sets the document's info.version.
func (c *Composer) SetAPIVersion(version string) *Composer {
	c.apiVersion = version
	return c
}

// SetDescription sets the document description.
func (c *Composer) SetDescription(desc string) *Composer {
	c.description = desc
	return c
}

// SetTermsOfService sets the terms-of-service URL.
func (c *Composer) SetTermsOfService(url string) *Composer {
	c.termsOfService = url
	return c
}

// SetContact sets the contact name and email.
func (c *Composer) SetContact(name, email string) *Composer {
	c.contactName = name
	c.contactEmail = email
	return c
}

// SetLicense sets the license name and URL.
func (c *Composer) SetLicense(name, url string) *Composer {
	c.licenseName = name
	c.licenseURL = url
	return c
}

// AddServer appends a server URL.
func (c *Composer) AddServer(url string) *Composer {
	c.servers = append(c.servers, url)
	return c
}

// Scanner exposes the composer's scanner for direct type registration.
func (c *Composer) Scanner() *scan.Scanner {
	return c.scanner
}

// Components exposes the shared component store.
func (c *Composer) Components() *schema.Components {
	return c.components
}

// RegisterType scans a Go type into the component store and returns its
// node, a $ref for named structs.
func (c *Composer) RegisterType(v any) *schema.Schema {
	return c.scanner.Schema(v)
}

// Get declares a GET operation at path.
func (c *Composer) Get(path string, opts ...OperationOption) *Composer {
	return c.addOperation("get", path, opts...)
}

// Post declares a POST operation at path.
func (c *Composer) Post(path string, opts ...OperationOption) *Composer {
	return c.addOperation("post", path, opts...)
}

// Put declares a PUT operation at path.
func (c *Composer) Put(path string, opts ...OperationOption) *Composer {
	return c.addOperation("put", path, opts...)
}

// Patch declares a PATCH operation at path.
func (c *Composer) Patch(path string, opts ...OperationOption) *Composer {
	return c.addOperation("patch", path, opts...)
}

// Delete declares a DELETE operation at path.
func (c *Composer) Delete(path string, opts ...OperationOption) *Composer {
	return c.addOperation("delete", path, opts...)
}

func (c *Composer) addOperation(method, path string, opts ...OperationOption) *Composer {
	op := newOperation()
	for _, opt := range opts {
		opt(op)
	}

	if op.id != "" {
		if c.operationIDs[op.id] {
			c.errors = append(c.errors, fmt.Errorf("duplicate operationId %q at %s %s", op.id, strings.ToUpper(method), path))
		}
		c.operationIDs[op.id] = true
	}

	if c.paths[path] == nil {
		c.paths[path] = make(map[string]*operation)
	}
	if _, exists := c.paths[path][method]; exists {
		c.errors = append(c.errors, fmt.Errorf("duplicate operation %s %s", strings.ToUpper(method), path))
		return c
	}
	c.paths[path][method] = op
	return c
}

// MergeComponents folds another component store into the composer's,
// logging any collisions. Existing entries win.
func (c *Composer) MergeComponents(other *schema.Components) *Composer {
	for _, ref := range c.components.Merge(other) {
		c.logger.Warn("component collision during merge, keeping existing entry",
			"namespace", string(ref.Namespace), "name", ref.Name)
	}
	return c
}

// Document builds the complete document as an ordered object. Declared
// operations have their request and response types scanned first, so the
// component store is complete before encoding.
func (c *Composer) Document() (*wire.Object, error) {
	if !c.version.IsOAS3() {
		return nil, forgeerrors.NewUnsupportedVersion(c.version.String())
	}
	if len(c.errors) > 0 {
		return nil, fmt.Errorf("composition failed with %d error(s): %w", len(c.errors), c.errors[0])
	}

	doc := wire.NewObject()
	doc.Set("openapi", c.version.String())
	doc.Set("info", c.infoObject())

	if len(c.servers) > 0 {
		servers := make([]any, len(c.servers))
		for i, url := range c.servers {
			srv := wire.NewObject()
			srv.Set("url", url)
			servers[i] = srv
		}
		doc.Set("servers", servers)
	}

	paths, err := c.pathsObject()
	if err != nil {
		return nil, err
	}
	doc.Set("paths", paths)

	components, err := c.componentsObject()
	if err != nil {
		return nil, err
	}
	if components.Len() > 0 {
		doc.Set("components", components)
	}

	return doc, nil
}

func (c *Composer) infoObject() *wire.Object {
	info := wire.NewObject()
	info.Set("title", c.title)
	if c.description != "" {
		info.Set("description", c.description)
	}
	if c.termsOfService != "" {
		info.Set("termsOfService", c.termsOfService)
	}
	if c.contactName != "" || c.contactEmail != "" {
		contact := wire.NewObject()
		if c.contactName != "" {
			contact.Set("name", c.contactName)
		}
		if c.contactEmail != "" {
			contact.Set("email", c.contactEmail)
		}
		info.Set("contact", contact)
	}
	if c.licenseName != "" {
		license := wire.NewObject()
		license.Set("name", c.licenseName)
		if c.licenseURL != "" {
			license.Set("url", c.licenseURL)
		}
		info.Set("license", license)
	}
	info.Set("version", c.apiVersion)
	return info
}

var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

func (c *Composer) pathsObject() (*wire.Object, error) {
	paths := wire.NewObject()

	keys := make([]string, 0, len(c.paths))
	for path := range c.paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := wire.NewObject()
		for _, method := range methodOrder {
			op, ok := c.paths[path][method]
			if !ok {
				continue
			}
			encoded, err := c.encodeOperation(op)
			if err != nil {
				return nil, fmt.Errorf("encoding %s %s: %w", strings.ToUpper(method), path, err)
			}
			item.Set(method, encoded)
		}
		paths.Set(path, item)
	}
	return paths, nil
}

func (c *Composer) encodeOperation(op *operation) (*wire.Object, error) {
	out := wire.NewObject()
	if op.id != "" {
		out.Set("operationId", op.id)
	}
	if op.summary != "" {
		out.Set("summary", op.summary)
	}
	if op.description != "" {
		out.Set("description", op.description)
	}
	if len(op.tags) > 0 {
		tags := make([]any, len(op.tags))
		for i, t := range op.tags {
			tags[i] = t
		}
		out.Set("tags", tags)
	}
	if op.deprecated {
		out.Set("deprecated", true)
	}

	if len(op.params) > 0 {
		params := make([]any, 0, len(op.params))
		for _, p := range op.params {
			encoded, err := c.encodeParameter(p)
			if err != nil {
				return nil, err
			}
			params = append(params, encoded)
		}
		out.Set("parameters", params)
	}

	if op.requestBody != nil {
		body, err := c.encodeRequestBody(op.requestBody)
		if err != nil {
			return nil, err
		}
		out.Set("requestBody", body)
	}

	responses, err := c.encodeResponses(op)
	if err != nil {
		return nil, err
	}
	out.Set("responses", responses)
	return out, nil
}

func (c *Composer) encodeParameter(p *parameter) (*wire.Object, error) {
	out := wire.NewObject()
	out.Set("name", p.name)
	out.Set("in", p.in)
	if p.description != "" {
		out.Set("description", p.description)
	}
	if p.required {
		out.Set("required", true)
	}
	node := p.node
	if node == nil && p.value != nil {
		node = c.scanner.Schema(p.value)
	}
	if node == nil {
		node = &schema.Schema{Type: "string"}
	}
	encoded, err := encoder.Encode(node, c.version)
	if err != nil {
		return nil, err
	}
	out.Set("schema", encoded)
	return out, nil
}

func (c *Composer) encodeRequestBody(rb *requestBody) (*wire.Object, error) {
	node := rb.node
	if node == nil {
		node = c.scanner.Schema(rb.value)
	}
	encoded, err := encoder.Encode(node, c.version)
	if err != nil {
		return nil, err
	}

	media := wire.NewObject()
	media.Set("schema", encoded)
	content := wire.NewObject()
	content.Set(rb.contentType, media)

	out := wire.NewObject()
	if rb.description != "" {
		out.Set("description", rb.description)
	}
	if rb.required {
		out.Set("required", true)
	}
	out.Set("content", content)
	return out, nil
}

func (c *Composer) encodeResponses(op *operation) (*wire.Object, error) {
	out := wire.NewObject()

	codes := make([]int, 0, len(op.responses))
	for code := range op.responses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	for _, code := range codes {
		resp := op.responses[code]
		encoded := wire.NewObject()
		encoded.Set("description", resp.description)
		if resp.value != nil || resp.node != nil {
			node := resp.node
			if node == nil {
				node = c.scanner.Schema(resp.value)
			}
			schemaObj, err := encoder.Encode(node, c.version)
			if err != nil {
				return nil, err
			}
			media := wire.NewObject()
			media.Set("schema", schemaObj)
			content := wire.NewObject()
			content.Set(resp.contentType, media)
			encoded.Set("content", content)
		}
		out.Set(strconv.Itoa(code), encoded)
	}

	if out.Len() == 0 {
		// OpenAPI requires at least one response.
		fallback := wire.NewObject()
		fallback.Set("description", "OK")
		out.Set("200", fallback)
	}
	return out, nil
}

func (c *Composer) componentsObject() (*wire.Object, error) {
	out := wire.NewObject()

	names := c.components.SchemaNames()
	if len(names) > 0 {
		schemas := wire.NewObject()
		for _, name := range names {
			encoded, err := encoder.Encode(c.components.Schema(name), c.version)
			if err != nil {
				return nil, fmt.Errorf("encoding component schema %q: %w", name, err)
			}
			schemas.Set(name, encoded)
		}
		out.Set("schemas", schemas)
	}

	for _, ns := range []schema.Namespace{
		schema.NamespaceResponse,
		schema.NamespaceParameter,
		schema.NamespaceRequestBody,
		schema.NamespaceSecurityScheme,
	} {
		names := c.components.Names(ns)
		if len(names) == 0 {
			continue
		}
		section := wire.NewObject()
		for _, name := range names {
			entry, _ := c.components.Resolve(schema.Ref{Namespace: ns, Name: name})
			section.Set(name, entry)
		}
		out.Set(string(ns), section)
	}

	return out, nil
}

// MarshalJSON returns the document as indented JSON bytes.
func (c *Composer) MarshalJSON() ([]byte, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSONIndent("", "  ")
}

// MarshalYAML returns the document as YAML bytes.
func (c *Composer) MarshalYAML() ([]byte, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// outputFileMode is the file permission mode for output files (owner read/write only)
const outputFileMode = 0600

// WriteFile writes the document to a file. The format is inferred from the
// file extension (.json for JSON, .yaml/.yml for YAML; YAML is the default).
func (c *Composer) WriteFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = c.MarshalJSON()
	default:
		data, err = c.MarshalYAML()
	}
	if err != nil {
		return fmt.Errorf("composer: failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("composer: failed to write file: %w", err)
	}
	return nil
}
