package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveFromWishlistCommandIsNotConstructed = errors.New(
	"RemoveFromWishlistCommand must be created via NewRemoveFromWishlistCommand constructor",
)

// RemoveFromWishlistCommand represents a buyer's request to remove a wishlist
// entry.
type RemoveFromWishlistCommand struct { //nolint:recvcheck //using for validation
	actor  auth.ActorContext
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveFromWishlistCommand creates a validated wishlist removal command.
func NewRemoveFromWishlistCommand(actor auth.ActorContext, itemID kernel.UUID) (RemoveFromWishlistCommand, error) {
	cmd := RemoveFromWishlistCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), itemID.Validate()); err != nil {
		return RemoveFromWishlistCommand{}, err
	}

	cmd.actor = actor
	cmd.itemID = itemID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveFromWishlistCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromWishlistCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c RemoveFromWishlistCommand) Actor() auth.ActorContext { return c.actor }

// ItemID returns the wishlist entry to remove.
func (c RemoveFromWishlistCommand) ItemID() kernel.UUID { return c.itemID }
