// Package guard provides a defensive construction pattern for commands and
// value objects, ensuring they are only created through their designated
// constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate() when a nil error is passed as the validation
// error. This ensures validation always fails with a meaningful message even
// if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard enforces constructor usage for structs that carry
// validation invariants. A zero-value guard fails validation; only a guard
// produced by NewConstructorGuard passes.
//
// Example usage:
//
//	type CreateStoreCommand struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCreateStoreCommand(name string) (CreateStoreCommand, error) {
//	    if name == "" {
//	        return CreateStoreCommand{}, errors.New("name is required")
//	    }
//	    return CreateStoreCommand{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c CreateStoreCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateStoreCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
