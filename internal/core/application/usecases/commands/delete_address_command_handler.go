package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DeleteAddressCommandHandler deletes a buyer's delivery address. A user
// always keeps at least one address, so deleting the sole address is
// InvalidState. When the deleted address was primary, the oldest remaining
// address is promoted in the same transaction.
type DeleteAddressCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewDeleteAddressCommandHandler creates a handler for address deletion.
func NewDeleteAddressCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the address deletion. Buyers only.
func (h *DeleteAddressCommandHandler) Handle(ctx context.Context, cmd DeleteAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().Role() != kernel.RoleBuyer {
		return errs.NewInvalidStateError("address", "only buyers can manage addresses")
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := uow.ProfileRepository().GetBuyer(ctx, cmd.Actor().ActorID())
	if err != nil {
		return err
	}

	entity, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if err != nil {
		return err
	}
	if !entity.UserID().IsEqual(profile.UserID) {
		return errs.NewObjectNotFoundError("addressId", cmd.AddressID().String())
	}

	count, err := uow.AddressRepository().CountByUser(ctx, profile.UserID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return errs.NewInvalidStateError("address", "cannot delete the only address")
	}

	if err = uow.AddressRepository().Delete(ctx, cmd.AddressID()); err != nil {
		return err
	}

	if entity.IsPrimary() {
		oldest, err := uow.AddressRepository().GetOldestByUser(ctx, profile.UserID)
		if err != nil {
			return err
		}
		oldest.MakePrimary()
		if err = uow.AddressRepository().Update(ctx, oldest); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
