package commands

import (
	"context"

	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AddToCartCommandHandler puts a product in a buyer's cart. The same
// duplicate-pair rule as the wishlist applies: the second add of a product
// already in the cart surfaces as Conflict.
type AddToCartCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewAddToCartCommandHandler creates a handler for cart additions.
func NewAddToCartCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) AddToCartCommandHandler {
	return AddToCartCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the cart addition. Buyers only; the product must exist,
// not be blocked, and have stock to cover the requested quantity.
func (h *AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().Role() != kernel.RoleBuyer {
		return errs.NewInvalidStateError("cart", "only buyers can manage carts")
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
	if target.Stock() < cmd.Quantity() {
		return errs.NewInvalidStateError("product", "insufficient stock")
	}

	item, err := basket.NewCartItem(cmd.ItemID(), cmd.Actor().ActorID(), cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return err
	}

	return uow.BasketRepository().AddCartItem(ctx, item)
}
