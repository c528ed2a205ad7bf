/*
Package singlekit provides a catalogue of single-instance lifecycle
strategies: lazy process-wide instances, single-shot explicit assignment,
resettable and disposable holders, read-only freeze-on-first-use, async
creation behind a suspendable guard, weakly referenced instances, keyed
stores, and context-scoped instances.

Every strategy implements the same contract (get-or-create exactly one
instance per slot under a concurrency guard) and they differ only in how
the slot is keyed, guarded, and torn down. All creation paths use
double-checked locking: an unguarded fast-path read, then a guarded
re-check before a single factory invocation publishes the instance.

# Process-Wide Lazy Instances

Instance returns one instance of T per process, built on first access:

	type Cache struct {
	    entries map[string][]byte
	}

	func (c *Cache) Init() error {
	    c.entries = make(map[string][]byte)
	    return nil
	}

	c, err := singlekit.Instance[Cache]()
	// every later call returns the same *Cache

If the type implements [Initializer], Init runs once under the creation
guard; an Init error leaves the slot empty so the next call retries.

# Explicit Single-Shot Assignment

Set assigns a value for T exactly once; a second Set fails:

	singlekit.Set[*Config](cfg)          // ok
	singlekit.Set[*Config](other)        // ErrAlreadySet
	singlekit.FromInstance(other, true)  // explicit overwrite

SetFactory registers a factory evaluated lazily on the first Get.

# Keyed and Scoped Stores

KeyedInstance keys a process-wide store by any comparable value:

	pool, err := singlekit.KeyedInstance[string, Pool]("users_db", newPool)

Scoped is the same contract bound to one value instead of the process:

	s := singlekit.NewScoped[string, *Conn]()
	conn, err := s.Get("primary", dial)
	s.Remove("primary")

# Holders

Resettable, Disposable, ReadOnly, Async, Weak, and Local are holder types
for a single instance with different teardown policies. See each type's
documentation.

# Errors

All failures surface at the failing call and match the package sentinels
with errors.Is. Factory errors propagate unchanged and are never cached,
so the caller's next request retries creation.

# Observability

Creation and reset events can be reported to OpenTelemetry metrics,
spans, and slog via [SetHooks]; see the observability subpackage.
Hooks observe lifecycle events only and never alter behavior.
*/
package singlekit
