package encoder

// primitiveAliases normalizes shorthand primitive names to the four OpenAPI
// primitive type names.
var primitiveAliases = map[string]string{
	"int":    "integer",
	"bool":   "boolean",
	"float":  "number",
	"double": "number",
}

// formatAliases expands domain-shorthand type names to string types with a
// canonical format tag.
var formatAliases = map[string]string{
	"date":      "date",
	"datetime":  "date-time",
	"date-time": "date-time",
	"time":      "time",
	"timestamp": "date-time",
	"email":     "email",
	"url":       "uri",
	"uri":       "uri",
	"uuid":      "uuid",
	"ip":        "ipv4",
	"ipv4":      "ipv4",
	"ipv6":      "ipv6",
	"binary":    "binary",
	"byte":      "byte",
	"password":  "password",
}

// expandAlias normalizes a node's declared type and format. Domain shorthand
// types become string plus a canonical format; shorthand primitive names map
// to the canonical primitive. An explicitly declared format always wins over
// the one an alias implies. Expansion happens before nullable encoding.
func expandAlias(typ, format string) (string, string) {
	if canonical, ok := formatAliases[typ]; ok {
		if format == "" {
			format = canonical
		}
		return "string", format
	}
	if canonical, ok := primitiveAliases[typ]; ok {
		return canonical, format
	}
	return typ, format
}
