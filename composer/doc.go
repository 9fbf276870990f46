// Package composer assembles complete OpenAPI documents from scanned Go
// types and declared operations.
//
// A Composer pairs a registry-backed scanner with a fluent operation API:
// request and response types are registered as components, operations
// reference them by $ref, and Document renders the whole thing through the
// version-aware encoder. The same composer state serializes to either the
// 3.0 or 3.1 nullable dialect depending on the version it was created with.
package composer
