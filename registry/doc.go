// Package registry interns named schemas behind stable references and breaks
// reference cycles.
//
// Analyzers hand the registry a canonicalization key — their identity for
// "this is the same reusable shape" — together with a build function. The
// registry either returns the reference already issued for that key or runs
// the build once, registers the result in the component store, and issues a
// new reference.
//
// Self-referential shapes terminate because a build nested inside its own
// construction receives a placeholder reference instead of recursing:
//
//	var reg *registry.Registry // one per document build
//	ref := reg.Register("models.User", func() *schema.Schema {
//	    node := &schema.Schema{Type: "object"}
//	    // The nested Register call below returns a placeholder ref
//	    // instead of re-entering this function.
//	    parent := reg.Register("models.User", buildUser)
//	    node = node.WithProperty("parent", schema.NewRefNode(parent))
//	    return node
//	})
//
// Breadth of cycles (A -> B -> A) is handled identically, since the
// in-progress set is keyed by canonicalization key rather than call depth.
package registry
