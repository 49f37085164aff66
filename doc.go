// Package sharedptr is a shared-ownership reference-counted handle for Go.
//
// The library is organized into a few packages:
//
//	sharedptr/
//	├── shared/               Handle[T]: adopt, alias, move, release, copy-on-write
//	├── errors/               Structured error types (NullAccess and friends)
//	├── internal/playground/  Named-handle command interpreter
//	└── cmd/run/              Scenario replay, scripts and an interactive TUI
//
// # Quick Start
//
//	p := &Config{Name: "primary"}
//	h := shared.Adopt(&p) // p is now nil
//	defer h.Release()
//
//	view := h.Copy()      // h.RefCount() == 2
//	defer view.Release()
//
//	if view.Clone() {     // view now owns a private copy
//	    cfg, _ := view.Deref()
//	    cfg.Name = "scratch"
//	}
//
// # Error Handling
//
// Dereferencing an empty handle is the only failing operation. It returns
// an *errors.Error that matches shared.ErrNullAccess:
//
//	if _, err := h.Deref(); errors.Is(err, shared.ErrNullAccess) {
//	    // handle was released or moved from
//	}
//
// # Logging
//
// Lifecycle steps are logged at debug level through zap:
//
//	shared.SetLogger(zap.Must(zap.NewDevelopment()))
//
// # Concurrency
//
// Handles are not safe for concurrent use; see package shared.
package sharedptr
