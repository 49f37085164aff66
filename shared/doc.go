// Package shared provides Handle, a reference-counted owning reference to a
// single heap value with an explicit copy-on-write escape hatch.
//
// # Ownership
//
// Every handle that refers to the same value belongs to one alias group.
// The group's value and share count live in a single control block that is
// created when a raw value is adopted and finalized when the last handle
// releases it:
//
//	p := &Point{X: 2, Y: -5}
//	a := shared.Adopt(&p)  // p is now nil, a.RefCount() == 1
//	defer a.Release()
//
//	b := a.Copy()          // alias, count 2
//	b.Release()            // count 1
//
//	c := shared.Empty[Point]()
//	c.Assign(a)            // alias by assignment, count 2
//	d := a.Move()          // a is empty, count still 2
//
// Go has no destructors, so scope exit is spelled Release, usually
// deferred. Release is idempotent.
//
// # Construction
//
//	Empty / zero value   - no value, count 0
//	Adopt(&p)            - own *p, clear the caller's pointer
//	FromPointer(p)       - own p, leave the caller's variable alone
//	Make(v)              - own a fresh copy of v
//
// # Copy-on-write
//
// Clone makes a handle the sole owner of an independent copy of the value
// it shares. It reports false when the handle is empty or already the sole
// owner. Values that hold maps, slices or pointers should implement
// Copier so the copy does not share their internals.
//
// # Access
//
// Deref and With are the only operations that can fail: on an empty handle
// they return an error matching ErrNullAccess.
//
//	v, err := h.Deref()
//	if errors.Is(err, shared.ErrNullAccess) {
//	    ...
//	}
//
// # Finalization and observers
//
// Values implementing Dropper are finalized exactly once, when the last
// share is released. Observers registered with WithObserver are notified
// synchronously of every lifecycle step of the group.
//
// # Concurrency
//
// Handles are not safe for concurrent use. The share count is not
// synchronized; all handles of an alias group must be used from one
// goroutine or under the caller's own locking.
package shared
