// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines the error taxonomy shared by the workflow engine and the
// HTTP layer:
//   - ObjectNotFoundError: a referenced entity does not exist or fails its
//     role-scoped lookup
//   - InvalidStateError: an operation attempted against an entity in a terminal
//     state, or a structural precondition is unmet
//   - ConflictError: a uniqueness violation (duplicate email, duplicate
//     buyer+product pair)
//   - UpstreamIOError: a blob-store or record-store call failed independent of
//     business validity
//   - ErrCompensationIncomplete: a workflow failed AND at least one reverse
//     compensation also failed, implying orphaned resources
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// NotFound/InvalidState/Conflict are recovered into 4xx responses with a
// descriptive message; UpstreamIO and CompensationIncomplete surface as 5xx
// with internal detail logged, never exposing storage internals to the caller.
package errs
