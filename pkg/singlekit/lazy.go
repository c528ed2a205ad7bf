package singlekit

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// Initializer is the one-time setup hook for types built by [Instance].
// Init runs under the creation guard before the instance is published.
// If Init returns an error nothing is cached and the next access retries.
type Initializer interface {
	Init() error
}

// lazySlot holds one process-wide instance. The value is published through
// an atomic so the fast path never takes the mutex.
type lazySlot struct {
	mu  sync.Mutex
	val atomic.Value // *T once constructed
}

var lazySlots = newArena[reflect.Type, lazySlot]()

// Instance returns the process-wide instance of T, constructing it on first
// access. Concurrent first accesses result in exactly one construction; all
// callers observe the same instance.
//
// T is built with new(T). If *T implements [Initializer], Init runs once
// under the guard; its error is returned to the caller and the construction
// is retried on the next access.
func Instance[T any]() (*T, error) {
	s := lazySlots.slot(reflect.TypeFor[T]())
	if v := s.val.Load(); v != nil {
		return v.(*T), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v := s.val.Load(); v != nil {
		return v.(*T), nil
	}

	start := time.Now()
	inst := new(T)
	var err error
	if init, ok := any(inst).(Initializer); ok {
		err = init.Init()
	}
	recordCreation(context.Background(), variantLazy, typeNameOf[T](), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.val.Store(inst)
	return inst, nil
}

// MustInstance is Instance, panicking if construction fails.
func MustInstance[T any]() *T {
	v, err := Instance[T]()
	if err != nil {
		panic(fmt.Sprintf("singlekit: construct %s: %v", typeNameOf[T](), err))
	}
	return v
}
