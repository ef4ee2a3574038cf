package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddToCartCommandIsNotConstructed = errors.New(
	"AddToCartCommand must be created via NewAddToCartCommand constructor",
)

// AddToCartCommand represents a buyer's request to put a product in their
// cart.
type AddToCartCommand struct { //nolint:recvcheck //using for validation
	actor     auth.ActorContext
	itemID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddToCartCommand creates a validated cart addition command.
func NewAddToCartCommand(actor auth.ActorContext, itemID, productID kernel.UUID, quantity int) (AddToCartCommand, error) {
	cmd := AddToCartCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		itemID.Validate(),
		productID.Validate(),
		validateQuantity(quantity),
	); err != nil {
		return AddToCartCommand{}, err
	}

	cmd.actor = actor
	cmd.itemID = itemID
	cmd.productID = productID
	cmd.quantity = quantity
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c AddToCartCommand) Actor() auth.ActorContext { return c.actor }

// ItemID returns the identifier the new cart entry will be created under.
func (c AddToCartCommand) ItemID() kernel.UUID { return c.itemID }

// ProductID returns the product to add.
func (c AddToCartCommand) ProductID() kernel.UUID { return c.productID }

// Quantity returns the requested quantity.
func (c AddToCartCommand) Quantity() int { return c.quantity }

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return nil
}
