package hydrate

import (
	"fmt"
	"reflect"
	"time"

	"github.com/Azhovan/hydrate/internal/normalize"
)

// ToStructuredValue deep-converts target into a plain mapping of field name
// to value. Nested structs and slices of structs are converted recursively;
// time values pass through untouched. It fails with *SerializationError when
// a reachable value has no structured representation (functions, channels,
// complex numbers, maps with non-string keys) rather than dropping it.
func ToStructuredValue(target any) (map[string]any, error) {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("hydrate: target is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("hydrate: target must be a struct or pointer to struct, got %T", target)
	}
	return structToMap(v, "")
}

// ToRawFieldMap returns a shallow, non-recursive snapshot of target's current
// field values. Nested structs are included as-is, without conversion.
// Returns nil if target is not a struct or pointer to struct.
func ToRawFieldMap(target any) map[string]any {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		opts := parseTag(sf.Tag.Get("hydrate"))
		if opts.ignore {
			continue
		}
		out[fieldKey(sf, opts)] = v.Field(i).Interface()
	}
	return out
}

// structToMap converts one struct level, keyed by hydration field names.
func structToMap(v reflect.Value, path string) (map[string]any, error) {
	t := v.Type()
	out := make(map[string]any, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		opts := parseTag(sf.Tag.Get("hydrate"))
		if opts.ignore {
			continue
		}

		key := fieldKey(sf, opts)
		val, err := structuredValue(v.Field(i), normalize.ApplyPrefix(path, key))
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

// structuredValue converts a single value for the structured mapping.
func structuredValue(v reflect.Value, path string) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return structuredValue(v.Elem(), path)

	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t, nil
		}
		return structToMap(v, path)

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface(), nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			val, err := structuredValue(v.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, &SerializationError{FieldPath: path, Type: v.Type().String()}
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			val, err := structuredValue(iter.Value(), normalize.ApplyPrefix(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = val
		}
		return out, nil

	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128,
		reflect.UnsafePointer, reflect.Uintptr:
		return nil, &SerializationError{FieldPath: path, Type: v.Type().String()}

	default:
		return v.Interface(), nil
	}
}
