package singlekit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Resettable holds one lazily constructed instance of T that can be dropped
// and rebuilt. The zero value is ready to use.
//
//	var conns singlekit.Resettable[ConnTable]
//
//	t1 := conns.Get()
//	conns.Reset()
//	t2 := conns.Get() // a fresh instance, t2 != t1
type Resettable[T any] struct {
	mu  sync.Mutex
	val atomic.Pointer[T]
}

// Get returns the held instance, constructing it with new(T) on first
// access. Concurrent first accesses construct exactly once.
func (r *Resettable[T]) Get() *T {
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
	recordCreation(context.Background(), variantResettable, typeNameOf[T](), time.Since(start), nil)
	r.val.Store(v)
	return v
}

// Reset drops the held instance so the next Get constructs a new one.
// No-op when nothing is held.
func (r *Resettable[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.val.Swap(nil) != nil {
		recordReset(context.Background(), variantResettable, typeNameOf[T]())
	}
}
