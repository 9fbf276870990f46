// Package oasforge synthesizes OpenAPI documents from partial schema
// descriptions contributed by independent static-analysis sources.
//
// Several analyzers can describe the same field: a declared Go type, an
// oas struct tag, a validation-rule string, a doc comment. Each produces a
// partial schema tagged with a precedence tier. oasforge combines those
// fragments into one canonical schema graph, interns reusable shapes behind
// stable references, and serializes the result for a selected OpenAPI
// version.
//
// # Packages
//
//   - schema: the canonical schema node model, references, and the
//     component store
//   - merge: combines precedence-ordered schema fragments for one field
//   - registry: interns named schemas and breaks reference cycles
//   - encoder: version-aware wire serialization (3.0.x and 3.1.x nullable
//     encodings from the same in-memory model)
//   - scan: reflection-driven fragment producer for Go types
//   - rules: validation-rule string analyzer
//   - srcscan: doc-comment fragment producer built on go/packages
//   - composer: assembles operations and components into a full document
//   - forgeerrors: structured error types shared across packages
//
// # Quick start
//
// Synthesize a schema for a Go type and emit it for OpenAPI 3.1:
//
//	comps := schema.NewComponents()
//	reg := registry.New(comps)
//	sc := scan.New(reg)
//	node := sc.Schema(User{})
//	doc, err := encoder.Encode(node, schema.Version310)
//
// Merge fragments from multiple analyzers for one field:
//
//	node := merge.Resolve(
//	    merge.Fragment{Tier: merge.TierAnnotation, Node: fromTag},
//	    merge.Fragment{Tier: merge.TierTypeInfo, Node: fromType},
//	    merge.Fragment{Tier: merge.TierRule, Node: fromRules},
//	)
package oasforge
