package singlekit

import "errors"

// Sentinel errors for invalid-state conditions.
var (
	// ErrNotSet indicates Get was called before any value or factory was assigned.
	ErrNotSet = errors.New("instance not set")

	// ErrAlreadySet indicates a single-assignment slot already holds a value or factory.
	ErrAlreadySet = errors.New("instance already set")

	// ErrAlreadyInitialized indicates a read-only holder was initialized by a prior Get or Set.
	ErrAlreadyInitialized = errors.New("singleton already initialized")

	// ErrNoFactory indicates neither a per-call nor a default factory is available.
	ErrNoFactory = errors.New("no instance factory provided")

	// ErrNoInstanceProduced indicates a factory returned successfully but yielded no instance.
	ErrNoInstanceProduced = errors.New("factory produced no instance")

	// ErrContextNotPrepared indicates Local.Get was called on a context without a prepared slot.
	ErrContextNotPrepared = errors.New("context not prepared for local instance")
)

// Sentinel errors for invalid arguments.
var (
	// ErrNilInstance indicates a nil value was passed where an instance is required.
	ErrNilInstance = errors.New("instance cannot be nil")

	// ErrNilFactory indicates a nil factory was passed where a factory is required.
	ErrNilFactory = errors.New("factory cannot be nil")

	// ErrNilKey indicates a nil key was passed to a keyed store.
	ErrNilKey = errors.New("key cannot be nil")
)
