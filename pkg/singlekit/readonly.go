package singlekit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ReadOnly holds one instance of T that is frozen on first use: either the
// first Get constructs it lazily, or a single Set supplies it before any
// Get. Once initialized by either path, Set always fails. The zero value is
// ready to use.
type ReadOnly[T any] struct {
	mu  sync.Mutex
	val atomic.Pointer[T]
}

// Get returns the held instance, constructing it with new(T) on first
// access and permanently initializing the holder.
func (r *ReadOnly[T]) Get() *T {
	if v := r.val.Load(); v != nil {
		return v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := r.val.Load(); v != nil {
		return v
	}

	start := time.Now()
	v := new(T)
	recordCreation(context.Background(), variantReadOnly, typeNameOf[T](), time.Since(start), nil)
	r.val.Store(v)
	return v
}

// Set supplies the instance. Fails with ErrNilInstance for a nil value and
// with ErrAlreadyInitialized once any Get or Set has occurred.
func (r *ReadOnly[T]) Set(v *T) error {
	if v == nil {
		return ErrNilInstance
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.val.Load() != nil {
		return ErrAlreadyInitialized
	}
	r.val.Store(v)
	return nil
}
