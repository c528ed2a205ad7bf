package singlekit

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// keyedStore is the per-(key-type, value-type) store behind the static
// keyed accessors. Keys are held as any; equality is the key type's value
// equality.
type keyedStore struct {
	mu      sync.RWMutex
	entries map[any]any
	factory func() (any, error)
}

// typePair identifies one closed (K, T) instantiation.
type typePair struct {
	key, val reflect.Type
}

var keyedStores = newArena[typePair, keyedStore]()

func keyedStoreFor[K comparable, T any]() *keyedStore {
	return keyedStores.slot(typePair{key: reflect.TypeFor[K](), val: reflect.TypeFor[T]()})
}

// KeyedInstance returns the process-wide instance of T cached under key,
// creating it on first access. The per-call factory is preferred over the
// factory registered with SetKeyedFactory. The guard covers the whole
// (K, T) store with a double-check on the specific key, so exactly one
// factory invocation succeeds per key regardless of concurrent callers.
//
// Fails with ErrNilKey for a nil key, ErrNoFactory when a first-time key
// has no factory available, and ErrNoInstanceProduced when the factory
// returns no instance. Factory errors propagate unchanged and are not
// cached.
func KeyedInstance[K comparable, T any](key K, factory ...Factory[T]) (T, error) {
	var zero T
	if isNil(key) {
		return zero, ErrNilKey
	}
	st := keyedStoreFor[K, T]()

	st.mu.RLock()
	v, ok := st.entries[key]
	st.mu.RUnlock()
	if ok {
		return v.(T), nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if v, ok := st.entries[key]; ok {
		return v.(T), nil
	}

	f := st.factory
	if len(factory) > 0 {
		if factory[0] == nil {
			return zero, ErrNilFactory
		}
		tf := factory[0]
		f = func() (any, error) { return tf() }
	}
	if f == nil {
		return zero, ErrNoFactory
	}

	start := time.Now()
	created, err := f()
	recordCreation(context.Background(), variantKeyed, typeNameOf[T](), time.Since(start), err)
	if err != nil {
		return zero, err
	}
	if isNil(created) {
		return zero, ErrNoInstanceProduced
	}

	if st.entries == nil {
		st.entries = make(map[any]any)
	}
	st.entries[key] = created
	return created.(T), nil
}

// SetKeyedFactory registers the default factory for first-time keys of the
// (K, T) store. Replaces any prior registration. Fails with ErrNilFactory
// for a nil factory.
func SetKeyedFactory[K comparable, T any](factory Factory[T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	st := keyedStoreFor[K, T]()

	st.mu.Lock()
	st.factory = func() (any, error) { return factory() }
	st.mu.Unlock()
	return nil
}

// RemoveKeyedInstance evicts the instance cached under key, leaving every
// other key untouched. Reports whether an instance was removed.
func RemoveKeyedInstance[K comparable, T any](key K) bool {
	if isNil(key) {
		return false
	}
	st := keyedStoreFor[K, T]()

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.entries[key]; !ok {
		return false
	}
	delete(st.entries, key)
	recordReset(context.Background(), variantKeyed, typeNameOf[T]())
	return true
}
