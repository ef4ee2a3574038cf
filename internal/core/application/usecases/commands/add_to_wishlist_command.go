package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAddToWishlistCommandIsNotConstructed = errors.New(
	"AddToWishlistCommand must be created via NewAddToWishlistCommand constructor",
)

// AddToWishlistCommand represents a buyer's request to save a product to
// their wishlist.
type AddToWishlistCommand struct { //nolint:recvcheck //using for validation
	actor     auth.ActorContext
	itemID    kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddToWishlistCommand creates a validated wishlist addition command.
func NewAddToWishlistCommand(actor auth.ActorContext, itemID, productID kernel.UUID) (AddToWishlistCommand, error) {
	cmd := AddToWishlistCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), itemID.Validate(), productID.Validate()); err != nil {
		return AddToWishlistCommand{}, err
	}

	cmd.actor = actor
	cmd.itemID = itemID
	cmd.productID = productID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddToWishlistCommand) Validate() error {
	return c.guard.Validate(ErrAddToWishlistCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c AddToWishlistCommand) Actor() auth.ActorContext { return c.actor }

// ItemID returns the identifier the new wishlist entry will be created under.
func (c AddToWishlistCommand) ItemID() kernel.UUID { return c.itemID }

// ProductID returns the product to save.
func (c AddToWishlistCommand) ProductID() kernel.UUID { return c.productID }
