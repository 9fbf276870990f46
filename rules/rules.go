package rules

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasforge/merge"
	"github.com/erraggy/oasforge/schema"
)

// ruleToken is one parsed rule with its optional parameter,
// e.g. "max:255" -> {name: "max", param: "255"}.
type ruleToken struct {
	name  string
	param string
}

// Parse infers a partial schema from a validation-rule string.
//
// Both common syntaxes are accepted: pipe-separated rules with colon
// parameters ("required|string|email|max:255") and comma-separated rules
// with equals parameters ("required,email,max=255"). The returned node is a
// rule-tier fragment: it describes only what the rules imply and is meant to
// be merged with fragments from other analyzers.
//
// The second return value reports whether the rules mark the field required;
// required-ness belongs to the enclosing object, not the field's own schema.
// Unrecognized rules are skipped — rule inference must never fail a build.
func Parse(rule string) (*schema.Schema, bool) {
	tokens := tokenize(rule)
	node := &schema.Schema{}
	required := false

	// Type-establishing rules first, so that bound rules know whether
	// min/max speak about value, length, or item count.
	for _, tok := range tokens {
		applyType(node, tok)
	}
	for _, tok := range tokens {
		switch tok.name {
		case "required":
			required = true
		case "nullable":
			node.Nullable = true
		case "min", "gte":
			applyMin(node, tok.param)
		case "max", "lte":
			applyMax(node, tok.param)
		case "gt":
			applyMin(node, tok.param)
		case "lt":
			applyMax(node, tok.param)
		case "size", "len":
			applyMin(node, tok.param)
			applyMax(node, tok.param)
		case "between":
			if lo, hi, ok := strings.Cut(tok.param, ","); ok {
				applyMin(node, strings.TrimSpace(lo))
				applyMax(node, strings.TrimSpace(hi))
			}
		case "in":
			node.Enum = enumValues(strings.Split(tok.param, ","), node.Type)
		case "oneof":
			node.Enum = enumValues(strings.Fields(tok.param), node.Type)
		case "regex", "regexp":
			node.Pattern = strings.TrimSuffix(strings.TrimPrefix(tok.param, "/"), "/")
		}
	}

	return node, required
}

// Fragment wraps Parse for callers assembling merge inputs. The source tag
// identifies the analyzer in conflict diagnostics.
func Fragment(rule, source string) (merge.Fragment, bool) {
	node, required := Parse(rule)
	return merge.Fragment{Tier: merge.TierRule, Node: node, Source: source}, required
}

// tokenize splits a rule string into tokens. Pipe separation with colon
// parameters and comma separation with equals parameters are both handled;
// the presence of a pipe decides which dialect the string is in.
func tokenize(rule string) []ruleToken {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil
	}

	sep, paramSep := ",", "="
	if strings.Contains(rule, "|") {
		sep, paramSep = "|", ":"
	}

	parts := strings.Split(rule, sep)
	tokens := make([]ruleToken, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, _ := strings.Cut(part, paramSep)
		tokens = append(tokens, ruleToken{name: strings.ToLower(strings.TrimSpace(name)), param: param})
	}
	return tokens
}

// applyType maps type-establishing rules onto the node.
func applyType(node *schema.Schema, tok ruleToken) {
	switch tok.name {
	case "string":
		setType(node, "string")
	case "integer", "int", "digits":
		setType(node, "integer")
	case "numeric", "number", "decimal":
		setType(node, "number")
	case "boolean", "bool", "accepted":
		setType(node, "boolean")
	case "array":
		setType(node, "array")
	case "email":
		setType(node, "string")
		setFormat(node, "email")
	case "uuid":
		setType(node, "string")
		setFormat(node, "uuid")
	case "url", "uri", "active_url":
		setType(node, "string")
		setFormat(node, "uri")
	case "ip":
		setType(node, "string")
		setFormat(node, "ipv4")
	case "ipv4":
		setType(node, "string")
		setFormat(node, "ipv4")
	case "ipv6":
		setType(node, "string")
		setFormat(node, "ipv6")
	case "date", "date_format", "datetime":
		setType(node, "string")
		setFormat(node, "date-time")
	case "alpha":
		setType(node, "string")
		node.Pattern = "^[a-zA-Z]+$"
	case "alpha_num", "alphanum":
		setType(node, "string")
		node.Pattern = "^[a-zA-Z0-9]+$"
	case "alpha_dash":
		setType(node, "string")
		node.Pattern = "^[a-zA-Z0-9_-]+$"
	}
}

func setType(node *schema.Schema, typ string) {
	if node.Type == "" {
		node.Type = typ
	}
}

func setFormat(node *schema.Schema, format string) {
	if node.Format == "" {
		node.Format = format
	}
}

// applyMin assigns a lower bound to the field the resolved type implies:
// length for strings, item count for arrays, value otherwise.
func applyMin(node *schema.Schema, param string) {
	switch node.Type {
	case "string":
		if n, err := strconv.Atoi(param); err == nil {
			node.MinLength = schema.Int(n)
		}
	case "array":
		if n, err := strconv.Atoi(param); err == nil {
			node.MinItems = schema.Int(n)
		}
	default:
		if f, err := strconv.ParseFloat(param, 64); err == nil {
			node.Minimum = schema.Float(f)
		}
	}
}

// applyMax assigns an upper bound, mirroring applyMin.
func applyMax(node *schema.Schema, param string) {
	switch node.Type {
	case "string":
		if n, err := strconv.Atoi(param); err == nil {
			node.MaxLength = schema.Int(n)
		}
	case "array":
		if n, err := strconv.Atoi(param); err == nil {
			node.MaxItems = schema.Int(n)
		}
	default:
		if f, err := strconv.ParseFloat(param, 64); err == nil {
			node.Maximum = schema.Float(f)
		}
	}
}

// enumValues converts in:/oneof= parameters into enum literals, honoring the
// resolved type so numeric enums stay numeric in the emitted document.
func enumValues(raw []string, typ string) []any {
	out := make([]any, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch typ {
		case "integer":
			if n, err := strconv.Atoi(v); err == nil {
				out = append(out, n)
				continue
			}
		case "number":
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, f)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
