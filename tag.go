package hydrate

import "strings"

// tagOptions holds parsed directives from a struct field's `hydrate` tag.
type tagOptions struct {
	name   string // Custom hydration key (name:custom_key)
	ignore bool   // Field is excluded from hydration and serialization
}

// parseTag parses a `hydrate` struct tag into a structured tagOptions.
// Tag format: "directive1:value1,directive2,..."
// Supported directives: name:<key>, ignore. A bare "-" is shorthand for
// ignore. The name value is normalized to camelCase by the dispatcher, so
// snake_case and camelCase spellings are equivalent.
func parseTag(tag string) tagOptions {
	opts := tagOptions{}

	if tag == "" {
		return opts
	}
	if tag == "-" {
		opts.ignore = true
		return opts
	}

	for _, directive := range strings.Split(tag, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1]
		}

		switch name {
		case "name":
			opts.name = value
		case "ignore":
			opts.ignore = true
		}
	}

	return opts
}
