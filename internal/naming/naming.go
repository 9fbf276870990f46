// Package naming derives component names from canonicalization keys.
//
// A canonicalization key is whatever identity a calling analyzer assigns to
// "the same reusable shape" — typically a package-qualified type name plus an
// optional variant discriminator, e.g. "models.User" or "models.User#collection".
// The registry is agnostic to key derivation; this package only turns keys
// into names that are safe inside $ref URIs.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser handles proper Unicode title casing (strings.Title is deprecated).
var titleCaser = cases.Title(language.English, cases.NoLower)

// FromKey derives a component name from a canonicalization key.
// Path and package separators become word boundaries, a "#variant" suffix is
// folded into the name, and the result is Pascal-cased.
//
// Examples:
//
//	"models.User"            -> "ModelsUser"
//	"models.User#collection" -> "ModelsUserCollection"
//	"billing/invoice-line"   -> "BillingInvoiceLine"
func FromKey(key string) string {
	base, variant, _ := strings.Cut(key, "#")
	name := ToPascalCase(Sanitize(base))
	if variant != "" {
		name += ToPascalCase(Sanitize(variant))
	}
	return name
}

// Sanitize replaces characters that are problematic inside $ref URIs.
// Example: "Response[User]" -> "Response_User"
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "[", "_")
	name = strings.ReplaceAll(name, "]", "_")
	name = strings.ReplaceAll(name, ",", "_")
	name = strings.ReplaceAll(name, " ", "_")
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.TrimSuffix(name, "_")
	return name
}

// ToPascalCase converts a string to PascalCase. Separators (underscore,
// hyphen, dot, slash) trigger capitalization of the next letter and existing
// capitalization is preserved.
// Example: "user_profile" -> "UserProfile"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToSnakeCase converts a string to snake_case. Uppercase letters are
// prefixed with underscore and lowercased; existing separators become
// underscores.
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == '.' || r == '/' {
			result.WriteRune('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
