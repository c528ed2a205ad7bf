package singlekit

import (
	"context"
	"sync"
	"time"
)

// Scoped is a keyed instance store bound to one value rather than the
// process: two Scoped holders never share instances even for equal keys.
// The synchronous and context-aware creation paths run the same
// double-checked discipline over one store, so callers may mix them freely.
type Scoped[K comparable, T any] struct {
	mu      sync.RWMutex
	entries map[K]T

	factoryMu sync.RWMutex
	factory   CtxFactory[T]
}

// NewScoped creates an empty store with no default factory.
func NewScoped[K comparable, T any]() *Scoped[K, T] {
	return &Scoped[K, T]{entries: make(map[K]T)}
}

// SetDefaultFactory registers the factory used when Get or GetContext is
// called without a per-call factory. Fails with ErrNilFactory for a nil
// factory.
func (s *Scoped[K, T]) SetDefaultFactory(factory Factory[T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	s.factoryMu.Lock()
	s.factory = func(context.Context) (T, error) { return factory() }
	s.factoryMu.Unlock()
	return nil
}

// Get returns the instance cached under key, creating it on first access
// with the per-call factory or the registered default.
func (s *Scoped[K, T]) Get(key K, factory ...Factory[T]) (T, error) {
	var zero T
	if len(factory) > 0 {
		if factory[0] == nil {
			return zero, ErrNilFactory
		}
		f := factory[0]
		return s.getOrCreate(context.Background(), key, func(context.Context) (T, error) { return f() })
	}
	return s.getOrCreate(context.Background(), key, nil)
}

// GetContext is Get with a context-aware factory; ctx is passed through to
// the factory only. Creation waits on the store guard are not cancelable.
func (s *Scoped[K, T]) GetContext(ctx context.Context, key K, factory ...CtxFactory[T]) (T, error) {
	var zero T
	if len(factory) > 0 {
		if factory[0] == nil {
			return zero, ErrNilFactory
		}
		return s.getOrCreate(ctx, key, factory[0])
	}
	return s.getOrCreate(ctx, key, nil)
}

func (s *Scoped[K, T]) getOrCreate(ctx context.Context, key K, perCall CtxFactory[T]) (T, error) {
	var zero T
	if isNil(key) {
		return zero, ErrNilKey
	}

	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		return v, nil
	}

	f := perCall
	if f == nil {
		s.factoryMu.RLock()
		f = s.factory
		s.factoryMu.RUnlock()
	}
	if f == nil {
		return zero, ErrNoFactory
	}

	fctx, span, spans := startCreationSpan(ctx, variantScoped, typeNameOf[T]())
	start := time.Now()
	v, err := f(fctx)
	recordCreation(ctx, variantScoped, typeNameOf[T](), time.Since(start), err)
	if spans != nil {
		spans.EndSpanWithError(span, err)
	}
	if err != nil {
		return zero, err
	}
	if isNil(v) {
		return zero, ErrNoInstanceProduced
	}

	s.entries[key] = v
	return v, nil
}

// Has reports whether an instance is cached under key, without creating
// one.
func (s *Scoped[K, T]) Has(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Remove evicts the instance cached under key, leaving other keys
// untouched. Reports whether an instance was removed.
func (s *Scoped[K, T]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	recordReset(context.Background(), variantScoped, typeNameOf[T]())
	return true
}

// Clear evicts every cached instance under the guard. Serves both the
// synchronous and context-aware paths; there is nothing asynchronous about
// eviction.
func (s *Scoped[K, T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return
	}
	s.entries = make(map[K]T)
	recordReset(context.Background(), variantScoped, typeNameOf[T]())
}

// Len returns the number of cached instances.
func (s *Scoped[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
