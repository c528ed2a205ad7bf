package singlekit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
	"weak"
)

// Weak holds a non-owning reference to one instance of T. The held
// reference never keeps the instance alive: once every caller drops its
// strong reference the garbage collector may reclaim it, and the next Get
// invokes the factory again. Callers must therefore retain the returned
// pointer for as long as they need the instance, and must not assume two
// Gets separated by a reclamation return the same identity.
type Weak[T any] struct {
	mu  sync.Mutex
	ref atomic.Value // weak.Pointer[T]

	factoryMu sync.RWMutex
	factory   Factory[*T]
}

// NewWeak creates an empty holder with no default factory.
func NewWeak[T any]() *Weak[T] {
	return &Weak[T]{}
}

// SetDefaultFactory registers the factory used when Get is called without a
// per-call factory. Fails with ErrNilFactory for a nil factory.
func (w *Weak[T]) SetDefaultFactory(factory Factory[*T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	w.factoryMu.Lock()
	w.factory = factory
	w.factoryMu.Unlock()
	return nil
}

// Get returns the current instance while it is still live, otherwise
// re-creates it. The per-call factory is preferred over the default.
// Fails with ErrNoFactory when no factory is available and with
// ErrNoInstanceProduced when the factory returns nil.
func (w *Weak[T]) Get(factory ...Factory[*T]) (*T, error) {
	if v := w.live(); v != nil {
		return v, nil
	}

	f, err := w.pickFactory(factory)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if v := w.live(); v != nil {
		return v, nil
	}

	start := time.Now()
	v, err := f()
	recordCreation(context.Background(), variantWeak, typeNameOf[T](), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNoInstanceProduced
	}

	w.ref.Store(weak.Make(v))
	return v, nil
}

// live returns the referent if the weak reference still points at a
// reachable instance.
func (w *Weak[T]) live() *T {
	r, ok := w.ref.Load().(weak.Pointer[T])
	if !ok {
		return nil
	}
	return r.Value()
}

func (w *Weak[T]) pickFactory(perCall []Factory[*T]) (Factory[*T], error) {
	if len(perCall) > 0 {
		if perCall[0] == nil {
			return nil, ErrNilFactory
		}
		return perCall[0], nil
	}
	w.factoryMu.RLock()
	defer w.factoryMu.RUnlock()
	if w.factory == nil {
		return nil, ErrNoFactory
	}
	return w.factory, nil
}
