// Package guard holds the constructor guard shared by value objects, commands and queries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes values built by their constructor from zero values.
// Embed it in a struct, set it with NewConstructorGuard inside the constructor and call
// Validate before the value is used:
//
//	var ErrPageNotConstructed = errors.New("Page must be created via NewPage")
//
//	type Page struct {
//	    limit int
//	    guard guard.ConstructorGuard
//	}
//
//	func (p Page) Validate() error {
//	    return p.guard.Validate(ErrPageNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a zero value guard, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
