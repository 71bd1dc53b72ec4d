// Package recordfile loads hydration records from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .json, .toml).
// Nesting is preserved: nested mappings become nested records.
//
// Example:
//
//	rec, err := recordfile.Load("user.yaml", recordfile.Options{Required: true})
//	user, err := hydrate.New[User](rec, nil)
package recordfile
