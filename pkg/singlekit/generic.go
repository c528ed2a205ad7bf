package singlekit

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// genericBox is what a generic slot publishes. ok distinguishes "holds a
// value" from "cleared by a factory overwrite" since an atomic.Value cannot
// store nil.
type genericBox struct {
	val any
	ok  bool
}

// genericSlot is a single-shot assignment slot: a value or a factory may be
// assigned once, and the factory is evaluated lazily on the first Get.
type genericSlot struct {
	mu      sync.Mutex
	val     atomic.Value // genericBox
	factory func() (any, error)
}

func (s *genericSlot) published() (any, bool) {
	b, ok := s.val.Load().(genericBox)
	if !ok || !b.ok {
		return nil, false
	}
	return b.val, true
}

// assigned reports whether the slot holds a value or a pending factory.
// Callers must hold s.mu.
func (s *genericSlot) assigned() bool {
	_, ok := s.published()
	return ok || s.factory != nil
}

var genericSlots = newArena[reflect.Type, genericSlot]()

// Get returns the value assigned for T. If a factory was registered and not
// yet evaluated, it runs now, under the guard, exactly once across
// concurrent callers. Returns ErrNotSet when nothing was assigned. A factory
// error is returned unchanged and not cached; a factory returning no
// instance is ErrNoInstanceProduced.
func Get[T any]() (T, error) {
	var zero T
	s := genericSlots.slot(reflect.TypeFor[T]())
	if v, ok := s.published(); ok {
		return v.(T), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.published(); ok {
		return v.(T), nil
	}
	if s.factory == nil {
		return zero, ErrNotSet
	}

	start := time.Now()
	v, err := s.factory()
	recordCreation(context.Background(), variantGeneric, typeNameOf[T](), time.Since(start), err)
	if err != nil {
		return zero, err
	}
	if isNil(v) {
		return zero, ErrNoInstanceProduced
	}

	s.val.Store(genericBox{val: v, ok: true})
	s.factory = nil
	return v.(T), nil
}

// MustGet is Get, panicking on error.
func MustGet[T any]() T {
	v, err := Get[T]()
	if err != nil {
		panic(fmt.Sprintf("singlekit: get %s: %v", typeNameOf[T](), err))
	}
	return v
}

// Set assigns the value for T. Fails with ErrAlreadySet if a value or
// factory was already assigned, and with ErrNilInstance for a nil value.
// Equivalent to FromInstance(v, false).
func Set[T any](v T) error {
	return FromInstance(v, false)
}

// FromInstance assigns the value for T, optionally overwriting a prior
// assignment. A nil value is rejected before any state changes.
func FromInstance[T any](v T, overwrite bool) error {
	if isNil(v) {
		return ErrNilInstance
	}
	s := genericSlots.slot(reflect.TypeFor[T]())

	s.mu.Lock()
	defer s.mu.Unlock()

	if !overwrite && s.assigned() {
		return ErrAlreadySet
	}
	s.val.Store(genericBox{val: v, ok: true})
	s.factory = nil
	return nil
}

// SetFactory registers the factory evaluated on the first Get for T. The
// factory does not run here. Fails with ErrAlreadySet if a value or factory
// was already assigned unless overwrite is true, in which case any published
// value is dropped so the next Get evaluates the new factory.
func SetFactory[T any](factory Factory[T], overwrite bool) error {
	if factory == nil {
		return ErrNilFactory
	}
	s := genericSlots.slot(reflect.TypeFor[T]())

	s.mu.Lock()
	defer s.mu.Unlock()

	if !overwrite && s.assigned() {
		return ErrAlreadySet
	}
	s.val.Store(genericBox{})
	s.factory = func() (any, error) { return factory() }
	return nil
}
