package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RemoveFromWishlistCommandHandler removes a wishlist entry.
type RemoveFromWishlistCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewRemoveFromWishlistCommandHandler creates a handler for wishlist removals.
func NewRemoveFromWishlistCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) RemoveFromWishlistCommandHandler {
	return RemoveFromWishlistCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the wishlist removal. Buyers only.
func (h *RemoveFromWishlistCommandHandler) Handle(ctx context.Context, cmd RemoveFromWishlistCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().Role() != kernel.RoleBuyer {
		return errs.NewInvalidStateError("wishlist", "only buyers can manage wishlists")
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return uow.BasketRepository().RemoveWishlistItem(ctx, cmd.ItemID())
}
