package singlekit

import "sync"

// arena is a process-wide store of per-type state, keyed by a type identity
// token. It stands in for "one static slot per closed generic type": Go does
// not give generic instantiations their own package-level state, so each
// static strategy keeps one arena and looks its slot up by reflect.Type.
//
// Slots are created on first access and never removed; the set of types a
// program touches is finite and small.
type arena[K comparable, S any] struct {
	mu    sync.RWMutex
	slots map[K]*S
}

func newArena[K comparable, S any]() *arena[K, S] {
	return &arena[K, S]{slots: make(map[K]*S)}
}

// slot returns the slot for key, creating it if needed. The returned pointer
// is stable for the life of the process.
func (a *arena[K, S]) slot(key K) *S {
	a.mu.RLock()
	s, ok := a.slots[key]
	a.mu.RUnlock()
	if ok {
		return s
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.slots[key]; ok {
		return s
	}
	s = new(S)
	a.slots[key] = s
	return s
}
