package commands

import (
	"context"

	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AddToWishlistCommandHandler saves a product to a buyer's wishlist. The
// buyer+product pair is unique; adding it twice surfaces as Conflict from the
// record store's duplicate-key signal, with no read-then-write race.
type AddToWishlistCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewAddToWishlistCommandHandler creates a handler for wishlist additions.
func NewAddToWishlistCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) AddToWishlistCommandHandler {
	return AddToWishlistCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the wishlist addition. Buyers only; the referenced product
// must exist and not be blocked.
func (h *AddToWishlistCommandHandler) Handle(ctx context.Context, cmd AddToWishlistCommand) error {
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

	target, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if target.OperationalState().IsTerminal() {
		return errs.NewObjectNotFoundError("productId", cmd.ProductID().String())
	}

	item, err := basket.NewWishlistItem(cmd.ItemID(), cmd.Actor().ActorID(), cmd.ProductID())
	if err != nil {
		return err
	}

	return uow.BasketRepository().AddWishlistItem(ctx, item)
}
