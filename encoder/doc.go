// Package encoder serializes canonical schema nodes to version-targeted
// wire documents.
//
// Two incompatible historical encodings of "nullable" are producible from
// the same in-memory model:
//
//	node := &schema.Schema{Type: "string", Nullable: true}
//
//	doc31, _ := encoder.Encode(node, schema.Version310)
//	// {"type": ["string", "null"]}
//
//	doc30, _ := encoder.Encode(node, schema.Version303)
//	// {"type": "string", "nullable": true}
//
// Domain-shorthand types (date, uuid, email, ...) expand to string types
// with canonical formats before nullable encoding, arrays without an element
// schema receive an items default of {type: "string"}, and empty property
// and required collections are omitted entirely. Output is deterministic:
// encoding the same node twice produces byte-identical documents.
//
// [Decode] is the matching reference decoder; Encode at one version followed
// by Decode yields the same abstract node regardless of which supported
// version carried it.
package encoder
