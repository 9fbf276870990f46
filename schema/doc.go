// Package schema defines the canonical in-memory schema node model, typed
// component references, and the per-build component store.
//
// A [Schema] is an immutable value: transformations return new nodes, so one
// node can appear under many parents. A [Ref] points into one of the five
// component namespaces without embedding its target's content, and a
// [Components] store holds the named entries a document build accumulates.
//
// Nullability is stored as an abstract boolean on the node; the encoder
// package decides how it appears on the wire for a given [Version].
package schema
