package singlekit

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Disposable holds one lazily constructed instance of T and disposes of it
// on Reset: if *T implements io.Closer, Close runs synchronously before the
// slot is cleared, so the disposal side effect always happens before a
// replacement can be constructed. The zero value is ready to use.
type Disposable[T any] struct {
	mu  sync.Mutex
	val atomic.Pointer[T]
}

// Get returns the held instance, constructing it with new(T) on first
// access. Concurrent first accesses construct exactly once.
func (d *Disposable[T]) Get() *T {
	if v := d.val.Load(); v != nil {
		return v
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if v := d.val.Load(); v != nil {
		return v
	}

	start := time.Now()
	v := new(T)
	recordCreation(context.Background(), variantDisposable, typeNameOf[T](), time.Since(start), nil)
	d.val.Store(v)
	return v
}

// Reset closes the held instance (when it implements io.Closer) and drops
// it. The slot is cleared even when Close fails; the Close error is
// returned. No-op when nothing is held.
func (d *Disposable[T]) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := d.val.Load()
	if v == nil {
		return nil
	}

	var err error
	if closer, ok := any(v).(io.Closer); ok {
		err = closer.Close()
	}
	d.val.Store(nil)
	recordReset(context.Background(), variantDisposable, typeNameOf[T]())
	return err
}
