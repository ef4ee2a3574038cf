package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteStoreCommandIsNotConstructed = errors.New(
	"DeleteStoreCommand must be created via NewDeleteStoreCommand constructor",
)

// DeleteStoreCommand represents a request to permanently delete a storefront
// together with its media.
type DeleteStoreCommand struct { //nolint:recvcheck //using for validation
	actor   auth.ActorContext
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteStoreCommand creates a validated store deletion command.
func NewDeleteStoreCommand(actor auth.ActorContext, storeID kernel.UUID) (DeleteStoreCommand, error) {
	cmd := DeleteStoreCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), storeID.Validate()); err != nil {
		return DeleteStoreCommand{}, err
	}

	cmd.actor = actor
	cmd.storeID = storeID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteStoreCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStoreCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c DeleteStoreCommand) Actor() auth.ActorContext { return c.actor }

// StoreID returns the store to delete.
func (c DeleteStoreCommand) StoreID() kernel.UUID { return c.storeID }
