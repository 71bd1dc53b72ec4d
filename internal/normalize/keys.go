package normalize

import (
	"strings"
	"unicode"
)

// ToCamel normalizes a record key to conventional camelCase. The key is
// split on underscores and internal spaces, each segment is title-cased,
// the segments are rejoined, and the first rune is lowered.
// Examples:
//   - "first_name" → "firstName"
//   - "First Name" → "firstName"
//   - "surname" → "surname"
func ToCamel(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == ' '
	})
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	runes := []rune(b.String())
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// FieldKey derives a hydration key from a struct field name.
// It lowercases the first letter of the field name.
// Examples:
//   - "FirstName" → "firstName"
//   - "Age" → "age"
//   - "APIKey" → "aPIKey"
func FieldKey(fieldName string) string {
	if fieldName == "" {
		return ""
	}

	// Convert first rune to lowercase
	runes := []rune(fieldName)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToLowerDotPath normalizes an environment variable name to a lowercase
// dot-separated path. Double underscores (__) are treated as level
// separators and converted to dots. Single underscores within a level
// are preserved.
// Examples:
//   - "GDPR__EMAIL" → "gdpr.email"
//   - "FIRST_NAME" → "first_name"
//   - "USER__DISPLAY_NAME" → "user.display_name"
func ToLowerDotPath(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// ApplyPrefix combines a parent path with a key to create a nested field path.
// If prefix is empty, returns the key unchanged.
// Otherwise, returns "prefix.key".
// Examples:
//   - ApplyPrefix("gdpr", "email") → "gdpr.email"
//   - ApplyPrefix("", "email") → "email"
func ApplyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
