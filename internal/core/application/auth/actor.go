// Package auth implements the actor authorization check that gates every
// mutating workflow. It confirms that the calling identity corresponds to a
// live, non-deleted row of the claimed role before any step executes.
package auth

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

var (
	// ErrActorContextIsNotConstructed is returned when an ActorContext was
	// not created via NewActorContext.
	ErrActorContextIsNotConstructed = errors.New("ActorContext must be created via NewActorContext")
)

// ActorContext carries the authenticated caller's identity: the actor id and
// the claimed role, both extracted from a verified identity token. It is
// constructed per request and discarded after the request. The context is a
// claim, not a fact; Verifier.Verify resolves it against the record store.
type ActorContext struct {
	actorID kernel.UUID
	role    kernel.Role

	isConstructed bool
}

// NewActorContext creates a validated actor context.
func NewActorContext(actorID kernel.UUID, role kernel.Role) (ActorContext, error) {
	if err := errors.Join(actorID.Validate(), role.Validate()); err != nil {
		return ActorContext{}, err
	}

	return ActorContext{actorID: actorID, role: role, isConstructed: true}, nil
}

// Validate ensures the context was created via NewActorContext.
func (a ActorContext) Validate() error {
	if !a.isConstructed {
		return ErrActorContextIsNotConstructed
	}
	return nil
}

// ActorID returns the caller's identifier: the user id for administrative
// roles, the profile id for buyer/seller/rider roles.
func (a ActorContext) ActorID() kernel.UUID {
	return a.actorID
}

// Role returns the claimed role.
func (a ActorContext) Role() kernel.Role {
	return a.role
}
