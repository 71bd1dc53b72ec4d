package hydrate

import (
	"reflect"
	"sync"
)

// Hook is a computed-default hook for one field of T. It receives the raw
// input value for the field (or the field's current empty value during the
// default-completion pass) and is solely responsible for assigning the
// field's final value.
type Hook[T any] func(target *T, value any) error

// hookFunc is the type-erased form stored in the registry.
type hookFunc func(target, value any) error

var (
	hooksMu sync.RWMutex
	hooks   = make(map[reflect.Type]map[string]hookFunc)
)

// RegisterHook registers a computed-default hook for a field of T, keyed by
// the field's hydration name (camelCase, e.g. "displayName"). A registered
// hook takes precedence over direct assignment: the dispatcher hands the
// hook the raw value and never assigns the field itself. Registration is
// per target type, typically done once from the consumer package's init.
// Thread-safe.
func RegisterHook[T any](field string, fn Hook[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	hooksMu.Lock()
	defer hooksMu.Unlock()

	m := hooks[t]
	if m == nil {
		m = make(map[string]hookFunc)
		hooks[t] = m
	}
	m[field] = func(target, value any) error {
		return fn(target.(*T), value)
	}
}

// ClearHooks removes every hook registered for T. Intended for tests.
func ClearHooks[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()

	hooksMu.Lock()
	defer hooksMu.Unlock()
	delete(hooks, t)
}

func lookupHook(t reflect.Type, field string) (hookFunc, bool) {
	hooksMu.RLock()
	defer hooksMu.RUnlock()

	fn, ok := hooks[t][field]
	return fn, ok
}
