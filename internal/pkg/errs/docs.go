// Package errs provides the typed errors shared by the dispatch domain and its adapters.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value breaks a domain rule
//   - ValueIsOutOfRangeError: a value lies outside of its allowed bounds
//   - ObjectNotFoundError: an aggregate could not be found in storage
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) returned by Unwrap
//   - a struct type with the error details
//   - constructor functions with and without cause
//
// Adapters rely on the sentinels to map failures onto transport responses
// (for example ErrObjectNotFound becomes a "not found" answer).
package errs
