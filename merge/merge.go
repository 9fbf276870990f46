package merge

import (
	"reflect"
	"slices"
	"sort"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/erraggy/oasforge/forgeerrors"
	"github.com/erraggy/oasforge/schema"
)

// Resolver combines partial schema fragments into canonical nodes.
// The zero value is usable; NewResolver exists to attach a logger for
// conflict diagnostics.
type Resolver struct {
	logger schema.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger that receives same-tier conflict warnings.
// Defaults to a no-op logger.
func WithLogger(logger schema.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: schema.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges fragments for one logical field using a default Resolver.
func Resolve(fragments ...Fragment) *schema.Schema {
	return NewResolver().Resolve(fragments...)
}

// Resolve merges the given fragments into one node.
//
// Fragments are visited from highest to lowest precedence (stable within a
// tier, so caller order decides ties). Per scalar attribute the first set
// value wins; properties union their key sets with a recursive per-key merge
// across the fragments that define that key; required is unioned across all
// fragments, never intersected — a field marked required by any contributing
// source stays required, since omission elsewhere does not prove
// optionality.
//
// Contradictory scalar values at the same tier keep the earliest-seen value;
// the dropped value is logged, never fatal. An empty fragment list yields an
// empty (accept-anything) node.
func (r *Resolver) Resolve(fragments ...Fragment) *schema.Schema {
	ordered := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Node != nil {
			ordered = append(ordered, f)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Tier < ordered[j].Tier })

	out := &schema.Schema{}
	st := &mergeState{setBy: make(map[string]Tier)}
	for _, f := range ordered {
		r.apply(out, f, st)
	}

	r.mergeProperties(out, ordered)
	r.mergeItems(out, ordered)

	return out
}

// mergeState remembers which tier set each scalar attribute, so that a
// contradiction at the same tier can be told apart from a lower-precedence
// value that simply lost.
type mergeState struct {
	setBy map[string]Tier
}

// apply folds one fragment's scalar attributes into out.
func (r *Resolver) apply(out *schema.Schema, f Fragment, st *mergeState) {
	frag := f.Node

	// A reference fragment is terminal: it can seed the result, but never
	// overrides structure contributed by a higher-precedence fragment.
	if !frag.Ref.IsZero() && out.Ref.IsZero() && out.Kind() == schema.KindAny {
		out.Ref = frag.Ref
	}

	r.setString(&out.Type, frag.Type, "type", f, st)
	r.setString(&out.Format, frag.Format, "format", f, st)
	r.setString(&out.Title, frag.Title, "title", f, st)
	r.setString(&out.Description, frag.Description, "description", f, st)
	r.setString(&out.Pattern, frag.Pattern, "pattern", f, st)

	r.setAny(&out.Default, frag.Default, "default", f, st)
	r.setAny(&out.Example, frag.Example, "example", f, st)

	if len(frag.Enum) > 0 {
		if len(out.Enum) == 0 {
			out.Enum = slices.Clone(frag.Enum)
			st.setBy["enum"] = f.Tier
		} else {
			r.conflict("enum", out.Enum, frag.Enum, f, st)
		}
	}

	r.setFloat(&out.Minimum, frag.Minimum, "minimum", f, st)
	r.setFloat(&out.Maximum, frag.Maximum, "maximum", f, st)
	r.setInt(&out.MinLength, frag.MinLength, "minLength", f, st)
	r.setInt(&out.MaxLength, frag.MaxLength, "maxLength", f, st)
	r.setInt(&out.MinItems, frag.MinItems, "minItems", f, st)
	r.setInt(&out.MaxItems, frag.MaxItems, "maxItems", f, st)

	// Boolean markers union across tiers: a source asserting nullability or
	// deprecation is never silenced by another source's zero value.
	out.Nullable = out.Nullable || frag.Nullable
	out.Deprecated = out.Deprecated || frag.Deprecated
	out.ReadOnly = out.ReadOnly || frag.ReadOnly
	out.WriteOnly = out.WriteOnly || frag.WriteOnly

	// Composition lists behave like scalars: first non-empty wins.
	if len(out.OneOf) == 0 && len(frag.OneOf) > 0 {
		out.OneOf = slices.Clone(frag.OneOf)
	}
	if len(out.AllOf) == 0 && len(frag.AllOf) > 0 {
		out.AllOf = slices.Clone(frag.AllOf)
	}
	if len(out.AnyOf) == 0 && len(frag.AnyOf) > 0 {
		out.AnyOf = slices.Clone(frag.AnyOf)
	}

	// Required unions across every fragment.
	for _, name := range frag.Required {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}

	// Extension keys union with first-wins per key.
	if frag.Extra != nil && frag.Extra.Len() > 0 {
		if out.Extra == nil {
			out.Extra = sequencedmap.New[string, any]()
		}
		for key, val := range frag.Extra.All() {
			if !out.Extra.Has(key) {
				out.Extra.Set(key, val)
			}
		}
	}
}

// mergeProperties unions property key sets across fragments and recursively
// merges the per-key child fragments. Key order follows first appearance in
// precedence order.
func (r *Resolver) mergeProperties(out *schema.Schema, ordered []Fragment) {
	var keys []string
	perKey := make(map[string][]Fragment)
	for _, f := range ordered {
		if f.Node.Properties == nil {
			continue
		}
		for key, child := range f.Node.Properties.All() {
			if _, seen := perKey[key]; !seen {
				keys = append(keys, key)
			}
			perKey[key] = append(perKey[key], Fragment{Tier: f.Tier, Node: child, Source: f.Source})
		}
	}
	if len(keys) == 0 {
		return
	}

	props := sequencedmap.New[string, *schema.Schema]()
	for _, key := range keys {
		subs := perKey[key]
		if len(subs) == 1 {
			props.Set(key, subs[0].Node)
			continue
		}
		props.Set(key, r.Resolve(subs...))
	}
	out.Properties = props
}

// mergeItems recursively merges the array element schema across fragments.
func (r *Resolver) mergeItems(out *schema.Schema, ordered []Fragment) {
	var subs []Fragment
	for _, f := range ordered {
		if f.Node.Items != nil {
			subs = append(subs, Fragment{Tier: f.Tier, Node: f.Node.Items, Source: f.Source})
		}
	}
	switch len(subs) {
	case 0:
	case 1:
		out.Items = subs[0].Node
	default:
		out.Items = r.Resolve(subs...)
	}
}

func (r *Resolver) setString(dst *string, val, attr string, f Fragment, st *mergeState) {
	if val == "" {
		return
	}
	if *dst == "" {
		*dst = val
		st.setBy[attr] = f.Tier
		return
	}
	if *dst != val {
		r.conflict(attr, *dst, val, f, st)
	}
}

func (r *Resolver) setAny(dst *any, val any, attr string, f Fragment, st *mergeState) {
	if val == nil {
		return
	}
	if *dst == nil {
		*dst = val
		st.setBy[attr] = f.Tier
		return
	}
	if !reflect.DeepEqual(*dst, val) {
		r.conflict(attr, *dst, val, f, st)
	}
}

func (r *Resolver) setFloat(dst **float64, val *float64, attr string, f Fragment, st *mergeState) {
	if val == nil {
		return
	}
	if *dst == nil {
		v := *val
		*dst = &v
		st.setBy[attr] = f.Tier
		return
	}
	if **dst != *val {
		r.conflict(attr, **dst, *val, f, st)
	}
}

func (r *Resolver) setInt(dst **int, val *int, attr string, f Fragment, st *mergeState) {
	if val == nil {
		return
	}
	if *dst == nil {
		v := *val
		*dst = &v
		st.setBy[attr] = f.Tier
		return
	}
	if **dst != *val {
		r.conflict(attr, **dst, *val, f, st)
	}
}

// conflict records a dropped attribute value. Contradictions at the same
// tier are the anomaly worth warning about; lower-precedence values losing
// is the normal merge outcome and only logged at debug level.
func (r *Resolver) conflict(attr string, kept, dropped any, f Fragment, st *mergeState) {
	if tier, ok := st.setBy[attr]; ok && tier == f.Tier {
		err := &forgeerrors.FragmentError{Attribute: attr, Kept: kept, Dropped: dropped, Source: f.Source}
		r.logger.Warn("fragment conflict", "attr", attr, "tier", f.Tier.String(), "source", f.Source, "err", err)
		return
	}
	r.logger.Debug("fragment attribute shadowed", "attr", attr, "tier", f.Tier.String(), "source", f.Source)
}
