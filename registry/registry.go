package registry

import (
	"fmt"

	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/internal/naming"
	"github.com/erraggy/oasforge/schema"
)

// BuildFunc produces the canonical schema node for one canonicalization key.
// It is invoked at most once per key per build. A BuildFunc may itself call
// [Registry.Register], including for its own key; the recursive call is
// short-circuited with a placeholder reference.
type BuildFunc func() *schema.Schema

// Registry interns named schemas into a component store and issues stable
// references to them. One Registry serves one document build: create a fresh
// instance (or call [Registry.Reset]) between independent builds so that no
// state leaks across them. Never share a Registry as a process-wide
// singleton.
//
// Concurrency: a Registry is not safe for concurrent use. Parallel builders
// must each own a Registry and component store, unioned afterwards with
// [schema.Components.Merge].
type Registry struct {
	components *schema.Components

	refs       map[string]schema.Ref // canonicalization key -> issued reference
	names      map[string]string     // canonicalization key -> derived component name
	nameOwner  map[string]string     // derived component name -> owning key
	inProgress map[string]bool       // keys currently being built (cycle detection)

	logger schema.Logger
	derive func(key string) string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry warnings (naming collisions,
// duplicate registrations). Defaults to a no-op logger.
func WithLogger(logger schema.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNameFunc overrides how component names are derived from
// canonicalization keys. The default Pascal-cases the key with its package
// and variant parts folded in.
func WithNameFunc(fn func(key string) string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.derive = fn
		}
	}
}

// New creates a Registry bound to the given component store. The store must
// outlive the registry; registered schemas are written into its schemas
// namespace.
func New(components *schema.Components, opts ...Option) *Registry {
	r := &Registry{
		components: components,
		refs:       make(map[string]schema.Ref),
		names:      make(map[string]string),
		nameOwner:  make(map[string]string),
		inProgress: make(map[string]bool),
		logger:     schema.NopLogger{},
		derive:     naming.FromKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register returns the reference for the given canonicalization key,
// building and interning the schema on first use.
//
//  1. If the key is already registered, the existing reference is returned
//     and build is not invoked.
//  2. If the key is currently being built (this call is nested inside its own
//     construction — a circular type graph), a placeholder reference to the
//     not-yet-finished entry is returned instead of recursing. Once the outer
//     build completes, the entry the placeholder points at is fully
//     populated.
//  3. Otherwise build is invoked, the resulting node is registered into the
//     component store under a name derived from the key, and the new
//     reference is returned.
//
// The in-progress marker is cleared when the build unwinds, including on
// panic, so a failed build leaves no stale cycle state behind.
func (r *Registry) Register(key string, build BuildFunc) schema.Ref {
	if ref, ok := r.refs[key]; ok {
		r.logger.Debug("registry hit", "key", key, "ref", ref.String())
		return ref
	}

	name := r.nameForKey(key)

	if r.inProgress[key] {
		// Nested inside our own construction: hand back a reference to the
		// entry the outer call is about to complete.
		return schema.SchemaRef(name)
	}

	r.inProgress[key] = true
	defer delete(r.inProgress, key)

	node := build()
	r.components.SetSchema(name, node)

	ref := schema.SchemaRef(name)
	r.refs[key] = ref
	r.logger.Debug("registered schema", "key", key, "name", name)
	return ref
}

// Ref returns the reference previously issued for a key, if any.
func (r *Registry) Ref(key string) (schema.Ref, bool) {
	ref, ok := r.refs[key]
	return ref, ok
}

// Components returns the store this registry writes into.
func (r *Registry) Components() *schema.Components {
	return r.components
}

// Reset clears all registry state so the instance can serve a new document
// build. The component store is not touched; pair Reset with a fresh store
// when starting over.
func (r *Registry) Reset() {
	r.refs = make(map[string]schema.Ref)
	r.names = make(map[string]string)
	r.nameOwner = make(map[string]string)
	r.inProgress = make(map[string]bool)
}

// nameForKey derives (and memoizes) the component name for a key. The name
// is pinned on first derivation so the placeholder reference issued during a
// cyclic build and the final registration always agree.
//
// When two different keys derive the same name, the first key keeps it and
// later keys get a numeric suffix; the collision is logged as a warning
// rather than raised, since a present schema under an imperfect name beats
// aborting generation.
func (r *Registry) nameForKey(key string) string {
	if name, ok := r.names[key]; ok {
		return name
	}

	name := r.derive(key)
	if owner, taken := r.nameOwner[name]; taken && owner != key {
		collision := &forgeerrors.CollisionError{Key: key, ExistingKey: owner, Name: name}
		r.logger.Warn("canonicalization key collision", "key", key, "existing_key", owner, "name", name, "err", collision)
		base := name
		for i := 2; ; i++ {
			name = fmt.Sprintf("%s%d", base, i)
			if _, taken := r.nameOwner[name]; !taken {
				break
			}
		}
	}

	r.names[key] = name
	r.nameOwner[name] = key
	return name
}
