package hydrate

// Record is a loosely-structured input record: an unordered mapping from
// string key to value. Values may be scalars, nested records, or sequences
// of nested records ([]any).
type Record map[string]any

// RenameTable maps target field names to their input-source declarations.
// It is scoped to a single hydration call and must be set before the record
// is applied (WithRenameTable, or the table argument of New).
//
// Lookup is by source key: an incoming record key is matched against the
// Source of every entry, and the matching entry's field name wins. Go maps
// are unordered, so if two fields declare the same Source, which field
// receives the key is undefined.
type RenameTable map[string]Rename

// Rename declares how one target field is fed from the input record.
type Rename struct {
	// Source is the input key whose value populates the field. When set,
	// only this key feeds the field; the field's own name appearing as an
	// input key is ignored.
	Source string

	// Nested is the rename table applied when hydration recurses into the
	// field (a nested struct or a slice of structs).
	Nested RenameTable
}
