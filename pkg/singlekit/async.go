package singlekit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// asyncBox wraps the created value so an unset holder is distinguishable
// from a holder of a zero value.
type asyncBox[T any] struct {
	val T
}

// Async holds one instance of T created by a context-aware factory. The
// already-created path is a lock-free read; the creation path serializes
// callers on a capacity-1 semaphore so concurrent first accesses wait for
// the in-flight attempt instead of blocking an OS thread.
//
// Creation waits are deliberately not cancelable: a stuck factory blocks
// every concurrent creator of the slot. The caller's context is passed to
// the factory only.
type Async[T any] struct {
	inst atomic.Pointer[asyncBox[T]]
	sem  *semaphore.Weighted

	factoryMu sync.RWMutex
	factory   CtxFactory[T]
}

// NewAsync creates an empty holder with no default factory.
func NewAsync[T any]() *Async[T] {
	return &Async[T]{sem: semaphore.NewWeighted(1)}
}

// SetDefaultFactory registers the factory used when Get is called without a
// per-call factory. Fails with ErrNilFactory for a nil factory.
func (a *Async[T]) SetDefaultFactory(factory CtxFactory[T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	a.factoryMu.Lock()
	a.factory = factory
	a.factoryMu.Unlock()
	return nil
}

// Get returns the held instance, creating it on first access. The per-call
// factory is preferred over the default. Exactly one factory invocation
// succeeds in populating the slot regardless of the number of concurrent
// callers; a failed attempt is not cached, so the next call retries.
//
// Fails with ErrNoFactory when no factory is available and with
// ErrNoInstanceProduced when the factory returns no instance.
func (a *Async[T]) Get(ctx context.Context, factory ...CtxFactory[T]) (T, error) {
	var zero T
	if b := a.inst.Load(); b != nil {
		return b.val, nil
	}

	f, err := a.pickFactory(factory)
	if err != nil {
		return zero, err
	}

	// Uncancelable by design; see type comment.
	_ = a.sem.Acquire(context.Background(), 1)
	defer a.sem.Release(1)

	if b := a.inst.Load(); b != nil {
		return b.val, nil
	}

	fctx, span, spans := startCreationSpan(ctx, variantAsync, typeNameOf[T]())
	start := time.Now()
	v, err := f(fctx)
	recordCreation(ctx, variantAsync, typeNameOf[T](), time.Since(start), err)
	if spans != nil {
		spans.EndSpanWithError(span, err)
	}
	if err != nil {
		return zero, err
	}
	if isNil(v) {
		return zero, ErrNoInstanceProduced
	}

	a.inst.Store(&asyncBox[T]{val: v})
	return v, nil
}

func (a *Async[T]) pickFactory(perCall []CtxFactory[T]) (CtxFactory[T], error) {
	if len(perCall) > 0 {
		if perCall[0] == nil {
			return nil, ErrNilFactory
		}
		return perCall[0], nil
	}
	a.factoryMu.RLock()
	defer a.factoryMu.RUnlock()
	if a.factory == nil {
		return nil, ErrNoFactory
	}
	return a.factory, nil
}
