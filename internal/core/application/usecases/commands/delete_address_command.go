package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteAddressCommandIsNotConstructed = errors.New(
	"DeleteAddressCommand must be created via NewDeleteAddressCommand constructor",
)

// DeleteAddressCommand represents a buyer's request to delete one of their
// delivery addresses.
type DeleteAddressCommand struct { //nolint:recvcheck //using for validation
	actor     auth.ActorContext
	addressID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteAddressCommand creates a validated address deletion command.
func NewDeleteAddressCommand(actor auth.ActorContext, addressID kernel.UUID) (DeleteAddressCommand, error) {
	cmd := DeleteAddressCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), addressID.Validate()); err != nil {
		return DeleteAddressCommand{}, err
	}

	cmd.actor = actor
	cmd.addressID = addressID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c DeleteAddressCommand) Actor() auth.ActorContext { return c.actor }

// AddressID returns the address to delete.
func (c DeleteAddressCommand) AddressID() kernel.UUID { return c.addressID }
