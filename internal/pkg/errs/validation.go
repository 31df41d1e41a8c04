package errs

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// FieldError is a single violation. Field is a dotted path into the payload,
// e.g. "items.0.quantity".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a payload, never only the first one.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(fieldErrors ...FieldError) *ValidationError {
	return &ValidationError{Errors: fieldErrors}
}

// Add appends a violation unless the same field is already reported.
func (e *ValidationError) Add(field, message string) {
	if e.Has(field) {
		return
	}
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) Empty() bool {
	return len(e.Errors) == 0
}

// OrNil returns nil when nothing was collected, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CollectFieldErrors flattens an error tree (errors.Join, wrapping) into field errors.
// Only the value errors of this package and ValidationError contribute; ok is false
// when the tree holds anything else, since that is not a client mistake.
func CollectFieldErrors(err error) (fieldErrors []FieldError, ok bool) {
	if err == nil {
		return nil, false
	}
	ok = true
	var walk func(error)
	walk = func(e error) {
		var (
			validation *ValidationError
			required   *ValueIsRequiredError
			invalid    *ValueIsInvalidError
			outOfRange *ValueIsOutOfRangeError
		)
		switch {
		case errors.As(e, &validation) && isDirect(e, validation):
			fieldErrors = append(fieldErrors, validation.Errors...)
		case errors.As(e, &required) && isDirect(e, required):
			fieldErrors = append(fieldErrors, FieldError{Field: required.ParamName, Message: causeOr(required.Cause, "is required")})
		case errors.As(e, &invalid) && isDirect(e, invalid):
			fieldErrors = append(fieldErrors, FieldError{Field: invalid.ParamName, Message: causeOr(invalid.Cause, "is invalid")})
		case errors.As(e, &outOfRange) && isDirect(e, outOfRange):
			fieldErrors = append(fieldErrors, FieldError{Field: outOfRange.ParamName, Message: outOfRange.Error()})
		default:
			if joined, isJoin := e.(interface{ Unwrap() []error }); isJoin {
				for _, inner := range joined.Unwrap() {
					walk(inner)
				}
				return
			}
			ok = false
		}
	}
	walk(err)
	return fieldErrors, ok && len(fieldErrors) > 0
}

// isDirect reports whether target is reachable from e without passing a join,
// so a joined tree is always walked branch by branch.
func isDirect(e error, target error) bool {
	for e != nil {
		if e == target {
			return true
		}
		if _, isJoin := e.(interface{ Unwrap() []error }); isJoin {
			return false
		}
		e = errors.Unwrap(e)
	}
	return false
}

func causeOr(cause error, fallback string) string {
	if cause == nil {
		return fallback
	}
	return cause.Error()
}
