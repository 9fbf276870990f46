// Package scan derives schema nodes from Go types via reflection.
//
// A Scanner walks struct fields and assembles each field's node from the
// sources that describe it: oas struct tags, doc comments (through a
// DocProvider), the Go type itself, and validation rule strings. Conflicting
// sources are reconciled by the merge package's precedence tiers.
//
// Named struct types register with a registry.Registry, so the same type
// scanned twice produces one component and two $ref nodes, and
// self-referential types terminate cleanly:
//
//	type User struct {
//	    ID      string `json:"id" validate:"required,uuid"`
//	    Name    string `json:"name" oas:"description=Display name"`
//	    Manager *User  `json:"manager,omitempty"`
//	}
//
//	reg := registry.New(schema.NewComponents())
//	node := scan.New(reg).Schema(User{})
package scan
