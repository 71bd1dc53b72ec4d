// Package recordenv builds hydration records from environment variables.
//
// Key normalization: GDPR__EMAIL → nested record {gdpr: {email: ...}},
// FIRST_NAME → first_name. All values are strings; pair string-typed fields
// or computed-default hooks with them.
//
// Example:
//
//	rec := recordenv.Load(recordenv.Options{Prefix: "APP_"})
//	user, err := hydrate.New[User](rec, nil)
package recordenv
