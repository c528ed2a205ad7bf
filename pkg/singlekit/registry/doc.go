// Package registry provides a thread-safe registry of instances keyed by
// their runtime type: at most one registered instance per type.
//
// # Basic Usage
//
// Register instances and fetch them back by type:
//
//	r := registry.New()
//	registry.Register(r, &Mailer{})
//	registry.Register(r, &Scheduler{})
//
//	m, err := registry.Get[*Mailer](r)
//	if err != nil {
//	    // not registered
//	}
//
// Register overwrites any prior registration for the same type. Lookup is
// the non-failing form of Get:
//
//	if s, ok := registry.Lookup[*Scheduler](r); ok {
//	    s.Start()
//	}
//
// # Process-Wide Default
//
// Default is a shared registry for code that wants one process-wide
// mapping:
//
//	registry.Register(registry.Default, cfg)
//	cfg, err := registry.Get[*Config](registry.Default)
//
// # Thread Safety
//
// All operations are safe for concurrent use; Registry uses sync.RWMutex
// for read-heavy workloads.
package registry
