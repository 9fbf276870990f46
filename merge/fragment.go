package merge

import "github.com/erraggy/oasforge/schema"

// Tier is the precedence tier of a fragment's contributing analyzer.
// Lower values win: an explicit annotation beats structural analysis, which
// beats declared type metadata, which beats validation-rule inference, which
// beats the generic fallback.
type Tier int

const (
	// TierAnnotation is an explicit declarative annotation in the analyzed
	// source (struct tags, attribute annotations).
	TierAnnotation Tier = iota
	// TierStructure is structural or pattern analysis of the source (AST
	// matches, doc comments).
	TierStructure
	// TierTypeInfo is declared type metadata (reflection, type declarations).
	TierTypeInfo
	// TierRule is inference from validation-rule strings.
	TierRule
	// TierFallback is the generic last-resort description.
	TierFallback
)

var tierNames = map[Tier]string{
	TierAnnotation: "annotation",
	TierStructure:  "structure",
	TierTypeInfo:   "type-info",
	TierRule:       "rule",
	TierFallback:   "fallback",
}

// String returns the tier's analyzer-facing name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTier parses a tier name as produced by [Tier.String].
func ParseTier(s string) (Tier, bool) {
	for t, name := range tierNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Fragment is one analyzer's partial, precedence-tagged description of a
// field's shape. Fragments describing the same logical field are grouped by
// the caller; the resolver never discovers groupings on its own.
type Fragment struct {
	// Tier is the precedence of the contributing analyzer.
	Tier Tier
	// Node is the partial schema. A nil node contributes nothing.
	Node *schema.Schema
	// Source identifies the analyzer for diagnostics (e.g. "oas-tag",
	// "validate-tag", "reflect").
	Source string
}
