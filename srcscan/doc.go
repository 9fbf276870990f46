// Package srcscan harvests schema fragments from Go source doc comments.
//
// Load parses packages with go/packages and records each exported struct
// type's doc comment and field comments as structure-tier fragments. The
// resulting Provider plugs into scan.WithDocProvider, so descriptions land
// in the generated schemas without duplicating prose into struct tags.
//
// Comment lines starting with "oasforge:" are directives rather than
// description text:
//
//	// Email is the account's contact address.
//	// oasforge:format email
//	// oasforge:deprecated
//	Email string `json:"email"`
//
// Synthesize goes further: it type-checks the loaded packages and derives
// complete component schemas for their exported struct types, for code the
// calling program does not import.
package srcscan
