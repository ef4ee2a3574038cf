package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateAddressCommandHandler edits a buyer's delivery address. Promoting an
// address to primary demotes the previous primary in the same transaction.
type UpdateAddressCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewUpdateAddressCommandHandler creates a handler for address updates.
func NewUpdateAddressCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) UpdateAddressCommandHandler {
	return UpdateAddressCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the address update. Buyers only; an address owned by a
// different user surfaces as NotFound.
func (h *UpdateAddressCommandHandler) Handle(ctx context.Context, cmd UpdateAddressCommand) error {
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

	if err = entity.Edit(cmd.Line(), cmd.City(), cmd.Province(), cmd.PostalCode(), cmd.Phone()); err != nil {
		return err
	}

	if cmd.IsPrimary() && !entity.IsPrimary() {
		if err = uow.AddressRepository().DemotePrimary(ctx, profile.UserID); err != nil {
			return err
		}
		entity.MakePrimary()
	}

	if err = uow.AddressRepository().Update(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
