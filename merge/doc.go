// Package merge combines partial schema fragments, each produced by an
// independent analyzer, into one canonical node per field.
//
// Every fragment carries a precedence [Tier]. Merging is per-attribute, not
// per-node: a high-precedence fragment that only knows the description does
// not blank out the type contributed by a lower tier, and an attribute set
// by a higher tier is never overwritten by a lower one. Required names union
// across all fragments, and property maps union their key sets with a
// recursive per-key merge.
//
//	node := merge.Resolve(
//	    merge.Fragment{Tier: merge.TierAnnotation, Node: &schema.Schema{Description: "primary email"}},
//	    merge.Fragment{Tier: merge.TierTypeInfo, Node: &schema.Schema{Type: "string"}},
//	    merge.Fragment{Tier: merge.TierRule, Node: &schema.Schema{Format: "email"}},
//	)
//	// node: {type: string, format: email, description: "primary email"}
package merge
