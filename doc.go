// Package hydrate populates typed object graphs from loosely-structured records.
//
// Quick Start:
//
//	type User struct {
//	    FirstName string
//	    Age       int
//	}
//
//	user, err := hydrate.New[User](hydrate.Record{
//	    "first_name": "Ada",
//	    "years_old":  36,
//	}, hydrate.RenameTable{
//	    "age": {Source: "years_old"},
//	})
//
// Record keys are normalized to camelCase (first_name → firstName) and matched
// against the target's declared fields. Unknown keys are silently ignored.
// Nested structs and slices of structs are hydrated recursively. Computed-default
// hooks registered with RegisterHook take precedence over direct assignment and
// fire again after hydration for any field still empty.
//
// Tag directives: name:<key>, ignore
//
// See example_test.go and README.md for detailed usage.
package hydrate
