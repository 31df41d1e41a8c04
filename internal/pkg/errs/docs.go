// Package errs provides standardized error types for the restock order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside an allowed interval
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For optimistic concurrency conflicts
//   - ValidationError: For payload validation, carrying every field violation at once
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The HTTP adapter relies on the sentinels to pick status codes and on
// CollectFieldErrors to render field level messages.
package errs
