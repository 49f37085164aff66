// Package errors provides structured error types for the sharedptr module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: the failing operation, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidInput).
//		Op("set").
//		Path("line", "3").
//		Detail("value %q is not an integer", arg).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullAccess("deref", "int")
//	err := errors.NotFound(errors.PhaseRuntime, "handle", "sp1")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind are equal.
package errors
