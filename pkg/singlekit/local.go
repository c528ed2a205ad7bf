package singlekit

import (
	"context"
	"sync"
	"time"
)

// localSlot is the per-context cell carried by a prepared context.
type localSlot[T any] struct {
	once sync.Once
	val  *T
}

// Local scopes one instance of T to a prepared context: every Get on the
// same prepared context (or a context derived from it) returns the same
// instance, and distinct prepared contexts never share. This is the Go
// analog of thread-local storage, with the context tree playing the role
// of the execution thread.
//
// There is no teardown operation; the instance lives exactly as long as the
// prepared context is referenced.
//
//	local := singlekit.NewLocal[RequestState]()
//
//	ctx = local.Prepare(ctx)
//	s, err := local.Get(ctx) // same *RequestState for this ctx tree
type Local[T any] struct {
	// marker makes each Local allocation distinct so the holder itself can
	// serve as a context key.
	marker *byte
}

// NewLocal creates a holder with its own context key.
func NewLocal[T any]() *Local[T] {
	return &Local[T]{marker: new(byte)}
}

// Prepare returns a context carrying a fresh, empty slot for this holder.
// Preparing an already prepared context replaces its slot, so the returned
// context starts over with its own instance.
func (l *Local[T]) Prepare(ctx context.Context) context.Context {
	return context.WithValue(ctx, l, &localSlot[T]{})
}

// Get returns the instance for the prepared context, constructing it with
// new(T) on first access. Concurrent Gets sharing one context construct
// exactly once. Fails with ErrContextNotPrepared when ctx was never passed
// through Prepare.
func (l *Local[T]) Get(ctx context.Context) (*T, error) {
	slot, ok := ctx.Value(l).(*localSlot[T])
	if !ok {
		return nil, ErrContextNotPrepared
	}
	slot.once.Do(func() {
		start := time.Now()
		slot.val = new(T)
		recordCreation(ctx, variantLocal, typeNameOf[T](), time.Since(start), nil)
	})
	return slot.val, nil
}
