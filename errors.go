package hydrate

import (
	"errors"
	"fmt"
)

// ErrCyclicSchema is returned when hydration recurses past the depth limit,
// which indicates a target type nested within itself, directly or indirectly.
var ErrCyclicSchema = errors.New("hydrate: nesting exceeds depth limit (cyclic target type?)")

// ShapeError reports an input value whose shape does not match the declared
// field type, e.g. a scalar supplied for a nested-struct field.
type ShapeError struct {
	FieldPath string // Dot notation with indices (e.g., "gdpr.email", "roles[0]")
	Expected  string // Expected shape or type
	Got       string // Dynamic type of the supplied value
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("hydrate: shape mismatch at %s: expected %s, got %s", e.FieldPath, e.Expected, e.Got)
}

// SerializationError reports a field value that has no structured
// representation (functions, channels, complex numbers).
type SerializationError struct {
	FieldPath string // Dot notation with indices
	Type      string // Type of the offending value
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("hydrate: field %s holds non-serializable value of type %s", e.FieldPath, e.Type)
}
