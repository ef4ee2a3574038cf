package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteProductCommandIsNotConstructed = errors.New(
	"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
)

// DeleteProductCommand represents a request to permanently delete a product
// together with its media.
type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	actor     auth.ActorContext
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteProductCommand creates a validated product deletion command.
func NewDeleteProductCommand(actor auth.ActorContext, productID kernel.UUID) (DeleteProductCommand, error) {
	cmd := DeleteProductCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), productID.Validate()); err != nil {
		return DeleteProductCommand{}, err
	}

	cmd.actor = actor
	cmd.productID = productID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c DeleteProductCommand) Actor() auth.ActorContext { return c.actor }

// ProductID returns the product to delete.
func (c DeleteProductCommand) ProductID() kernel.UUID { return c.productID }
