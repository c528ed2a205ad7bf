package singlekit

import (
	"context"
	"reflect"
)

// Factory produces one instance of T.
type Factory[T any] func() (T, error)

// CtxFactory produces one instance of T and may block on context-aware work.
// The context is passed through to the factory only; guard acquisition does
// not observe it.
type CtxFactory[T any] func(ctx context.Context) (T, error)

// isNil reports whether v holds no instance: a nil interface, or a nil
// pointer, map, slice, func, or channel. Non-nillable kinds always hold
// an instance.
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

// typeNameOf returns the display name of T for metrics and log events.
func typeNameOf[T any]() string {
	return reflect.TypeFor[T]().String()
}
