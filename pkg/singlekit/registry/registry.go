package registry

import (
	"errors"
	"reflect"
	"sync"
)

// Sentinel errors.
var (
	// ErrNotRegistered indicates no instance is registered for the requested type.
	ErrNotRegistered = errors.New("no instance registered for type")

	// ErrWrongType indicates the registered instance does not have the requested runtime type.
	ErrWrongType = errors.New("registered instance has mismatched type")

	// ErrNilInstance indicates a nil value was passed to Register.
	ErrNilInstance = errors.New("instance cannot be nil")
)

// Registry maps runtime types to single registered instances.
// It uses sync.RWMutex for optimal read-heavy workloads.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]any
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{entries: make(map[reflect.Type]any)}
}

// Default is the process-wide registry.
var Default = New()

// Register stores the instance for type T, overwriting any prior
// registration. A nil instance fails with ErrNilInstance.
func Register[T any](r *Registry, instance T) error {
	if isNil(instance) {
		return ErrNilInstance
	}
	key := reflect.TypeFor[T]()

	r.mu.Lock()
	r.entries[key] = instance
	r.mu.Unlock()
	return nil
}

// Get returns the instance registered for type T. Fails with
// ErrNotRegistered when absent and ErrWrongType when the stored instance
// does not assert to T.
func Get[T any](r *Registry) (T, error) {
	var zero T
	r.mu.RLock()
	v, ok := r.entries[reflect.TypeFor[T]()]
	r.mu.RUnlock()
	if !ok {
		return zero, ErrNotRegistered
	}
	t, ok := v.(T)
	if !ok {
		return zero, ErrWrongType
	}
	return t, nil
}

// Lookup returns the instance registered for type T and whether a valid
// registration exists. The non-failing equivalent of Get.
func Lookup[T any](r *Registry) (T, bool) {
	t, err := Get[T](r)
	return t, err == nil
}

// Remove evicts the registration for type T. No-op when absent.
func Remove[T any](r *Registry) {
	r.mu.Lock()
	delete(r.entries, reflect.TypeFor[T]())
	r.mu.Unlock()
}

// Clear evicts every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.entries = make(map[reflect.Type]any)
	r.mu.Unlock()
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// isNil reports whether v holds no instance: a nil interface, or a nil
// pointer, map, slice, func, or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
