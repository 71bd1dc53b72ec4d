package hydrate

import (
	"fmt"
	"reflect"

	"github.com/Azhovan/hydrate/internal/normalize"
)

// maxDepth bounds schema recursion. A legitimate target type graph never
// approaches this; exceeding it means the type nests itself.
const maxDepth = 32

// Hydrator populates instances of T from loosely-structured records.
// A Hydrator holds no per-call state and may be reused; no two goroutines
// may hydrate the same target instance concurrently.
type Hydrator[T any] struct {
	renames RenameTable
}

// NewHydrator creates a Hydrator with no rename table.
func NewHydrator[T any]() *Hydrator[T] {
	return &Hydrator[T]{}
}

// WithRenameTable sets the rename table applied on subsequent Hydrate calls.
// The table is keyed by target field name and maps each field to the input
// key that feeds it.
func (h *Hydrator[T]) WithRenameTable(rt RenameTable) *Hydrator[T] {
	h.renames = rt
	return h
}

// Hydrate allocates a new T, populates it from rec, and runs the
// default-completion pass. Unknown record keys are silently ignored.
func (h *Hydrator[T]) Hydrate(rec Record) (*T, error) {
	target := new(T)
	if err := h.HydrateInto(target, rec); err != nil {
		return nil, err
	}
	return target, nil
}

// HydrateInto populates a caller-owned instance from rec and runs the
// default-completion pass.
func (h *Hydrator[T]) HydrateInto(target *T, rec Record) error {
	v := reflect.ValueOf(target).Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("hydrate: target must be a struct, got %s", v.Kind())
	}
	if err := hydrateStruct(v, rec, h.renames, "", 0); err != nil {
		return err
	}
	return completeDefaults(v, "", 0)
}

// New is a one-shot convenience: hydrate a fresh T from rec using rt.
// A nil rt means no renaming.
func New[T any](rec Record, rt RenameTable) (*T, error) {
	return NewHydrator[T]().WithRenameTable(rt).Hydrate(rec)
}

// CompleteDefaults runs the default-completion pass over target, which must
// be a pointer to a struct. Hydrate runs the pass automatically; it is
// exported so callers can re-run it after mutating an instance. Running it
// twice is safe: only fields still empty at pass time are touched.
func CompleteDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hydrate: target must be a non-nil pointer to struct, got %T", target)
	}
	return completeDefaults(v.Elem(), "", 0)
}

// resolveKey reverse-maps an incoming record key to a target field name and
// normalizes it to camelCase. The second return reports whether the key must
// be skipped because the resolved field declares a different source key.
func resolveKey(sourceKey string, rt RenameTable) (string, bool) {
	for field, rename := range rt {
		if rename.Source == sourceKey {
			return normalize.ToCamel(field), false
		}
	}

	fieldName := normalize.ToCamel(sourceKey)
	if rename, ok := rt[fieldName]; ok && rename.Source != "" {
		// The field is fed by its declared source key only.
		return fieldName, true
	}
	return fieldName, false
}

// hydrateStruct applies every record entry to v through the field dispatcher.
func hydrateStruct(v reflect.Value, rec Record, rt RenameTable, path string, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w (at %q)", ErrCyclicSchema, path)
	}

	t := v.Type()
	for key, value := range rec {
		fieldName, masked := resolveKey(key, rt)
		if masked {
			continue
		}

		sf, ok := findField(t, fieldName)
		if !ok {
			// Undeclared fields are silently ignored.
			continue
		}

		if err := dispatchField(v, sf, fieldName, value, rt[fieldName].Nested, path, depth); err != nil {
			return err
		}
	}
	return nil
}

// findField locates the struct field whose hydration key matches fieldName.
// Unexported and ignored fields never match.
func findField(t reflect.Type, fieldName string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		opts := parseTag(sf.Tag.Get("hydrate"))
		if opts.ignore {
			continue
		}
		if fieldKey(sf, opts) == fieldName {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

// fieldKey returns the hydration key for a struct field: the name directive
// of its tag when present, otherwise the field name with its first letter
// lowered. Tag-declared names pass through the same camelCase normalization
// as incoming record keys, so name:full_name and name:fullName match the
// same inputs.
func fieldKey(sf reflect.StructField, opts tagOptions) string {
	if opts.name != "" {
		return normalize.ToCamel(opts.name)
	}
	return normalize.FieldKey(sf.Name)
}

// dispatchField routes a resolved field to its computed-default hook, nested
// hydration, or direct assignment. Hooks win unconditionally: when one is
// registered the dispatcher never assigns the field itself. Empty values are
// no-ops on the composite branches so the default-completion pass can safely
// re-dispatch fields that are still empty.
func dispatchField(owner reflect.Value, sf reflect.StructField, fieldName string, value any, nested RenameTable, path string, depth int) error {
	fieldPath := normalize.ApplyPrefix(path, fieldName)

	if fn, ok := lookupHook(owner.Type(), fieldName); ok {
		return fn(owner.Addr().Interface(), value)
	}

	fv := owner.FieldByIndex(sf.Index)

	switch {
	case isNestedStruct(sf.Type):
		rec, ok := asRecord(value)
		if !ok {
			if isEmptyAny(value) {
				return nil
			}
			return &ShapeError{FieldPath: fieldPath, Expected: "record", Got: fmt.Sprintf("%T", value)}
		}
		child, err := hydrateNested(structElem(sf.Type), rec, nested, fieldPath, depth+1)
		if err != nil {
			return err
		}
		if sf.Type.Kind() == reflect.Ptr {
			fv.Set(child.Addr())
		} else {
			fv.Set(child)
		}
		return nil

	case isNestedSlice(sf.Type):
		seq, ok := asSequence(value)
		if !ok {
			if isEmptyAny(value) {
				return nil
			}
			return &ShapeError{FieldPath: fieldPath, Expected: "sequence of records", Got: fmt.Sprintf("%T", value)}
		}
		elemType := sf.Type.Elem()
		for i, entry := range seq {
			entryPath := fmt.Sprintf("%s[%d]", fieldPath, i)
			rec, ok := asRecord(entry)
			if !ok {
				return &ShapeError{FieldPath: entryPath, Expected: "record", Got: fmt.Sprintf("%T", entry)}
			}
			child, err := hydrateNested(structElem(elemType), rec, nested, entryPath, depth+1)
			if err != nil {
				return err
			}
			if elemType.Kind() == reflect.Ptr {
				fv.Set(reflect.Append(fv, child.Addr()))
			} else {
				fv.Set(reflect.Append(fv, child))
			}
		}
		return nil

	default:
		return assignRaw(fv, fieldPath, value)
	}
}

// hydrateNested instantiates and hydrates one nested struct, including its
// own default-completion pass.
func hydrateNested(t reflect.Type, rec Record, rt RenameTable, path string, depth int) (reflect.Value, error) {
	child := reflect.New(t).Elem()
	if err := hydrateStruct(child, rec, rt, path, depth); err != nil {
		return reflect.Value{}, err
	}
	if err := completeDefaults(child, path, depth); err != nil {
		return reflect.Value{}, err
	}
	return child, nil
}

// completeDefaults re-dispatches every declared field whose value is still
// empty, using the field's own current value as input and no rename table.
// Hooks registered for absent or falsy fields fire exactly once per
// hydration; the remaining branches are no-ops on empty values.
func completeDefaults(v reflect.Value, path string, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w (at %q)", ErrCyclicSchema, path)
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		opts := parseTag(sf.Tag.Get("hydrate"))
		if opts.ignore {
			continue
		}

		fv := v.Field(i)
		if !isEmptyValue(fv) {
			continue
		}

		if err := dispatchField(v, sf, fieldKey(sf, opts), fv.Interface(), nil, path, depth); err != nil {
			return err
		}
	}
	return nil
}

// assignRaw assigns value to fv without coercion. The only latitude is
// between numeric kinds: loosely-typed decoders collapse all numbers into a
// single type (float64 for JSON), so an exactly-representable number is not
// a shape mismatch. Lossy conversions are.
func assignRaw(fv reflect.Value, fieldPath string, value any) error {
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return nil
	}

	if isNumericKind(rv.Kind()) && isNumericKind(fv.Kind()) {
		if wrapsSign(rv, fv.Type()) {
			return &ShapeError{FieldPath: fieldPath, Expected: fv.Type().String(), Got: rv.Type().String()}
		}
		converted := rv.Convert(fv.Type())
		if converted.Convert(rv.Type()).Interface() == rv.Interface() {
			fv.Set(converted)
			return nil
		}
	}

	return &ShapeError{FieldPath: fieldPath, Expected: fv.Type().String(), Got: rv.Type().String()}
}

// isNestedStruct reports whether t is a struct (or pointer to struct) that
// hydration recurses into. Types from the time package are treated as
// scalars, matching their record representation.
func isNestedStruct(t reflect.Type) bool {
	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	return base.Kind() == reflect.Struct && base.PkgPath() != "time"
}

// isNestedSlice reports whether t is a slice whose elements hydration
// recurses into.
func isNestedSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && isNestedStruct(t.Elem())
}

// structElem strips one level of pointer indirection.
func structElem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// asRecord converts a dispatched value to a Record. map[any]any is accepted
// for the benefit of legacy YAML decoders.
func asRecord(value any) (Record, bool) {
	switch rec := value.(type) {
	case Record:
		return rec, true
	case map[string]any:
		return rec, true
	case map[any]any:
		out := make(Record, len(rec))
		for key, val := range rec {
			keyStr, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[keyStr] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asSequence converts a dispatched value to a sequence of entries.
func asSequence(value any) ([]any, bool) {
	switch seq := value.(type) {
	case []any:
		return seq, true
	case []Record:
		out := make([]any, len(seq))
		for i, rec := range seq {
			out[i] = rec
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(seq))
		for i, rec := range seq {
			out[i] = rec
		}
		return out, true
	default:
		return nil, false
	}
}

// isEmptyAny reports whether a dispatched value counts as empty.
func isEmptyAny(value any) bool {
	if value == nil {
		return true
	}
	return isEmptyValue(reflect.ValueOf(value))
}

// isEmptyValue reports whether v is empty: nil, false, numeric zero, empty
// string, or empty collection. Zero structs count as empty so the
// default-completion pass can target untouched nested fields.
func isEmptyValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	case reflect.Struct:
		return v.IsZero()
	default:
		return v.IsZero()
	}
}

// wrapsSign reports whether converting rv to a field of type target wraps
// around zero. Same-width sign wrapping survives the round-trip equality
// check, so it must be rejected before conversion.
func wrapsSign(rv reflect.Value, target reflect.Type) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return isUintKind(target.Kind()) && rv.Int() < 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isIntKind(target.Kind()) {
			return false
		}
		signedMax := uint64(1)<<(target.Bits()-1) - 1
		return rv.Uint() > signedMax
	case reflect.Float32, reflect.Float64:
		return isUintKind(target.Kind()) && rv.Float() < 0
	}
	return false
}

// isIntKind reports whether k is a signed integer kind.
func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// isUintKind reports whether k is an unsigned integer kind.
func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// isNumericKind reports whether k is an integer or floating-point kind.
func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
