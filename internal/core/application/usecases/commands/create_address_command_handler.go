package commands

import (
	"context"

	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateAddressCommandHandler adds a delivery address for a buyer. The first
// address is always primary; a later address marked primary demotes the
// previous primary in the same transaction, so exactly one primary exists at
// every commit point.
type CreateAddressCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
}

// NewCreateAddressCommandHandler creates a handler for address creation.
func NewCreateAddressCommandHandler(uowFactory ports.UnitOfWorkFactory, verifier ActorVerifier) CreateAddressCommandHandler {
	return CreateAddressCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

// Handle processes the address creation. Buyers only.
func (h *CreateAddressCommandHandler) Handle(ctx context.Context, cmd CreateAddressCommand) error {
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

	count, err := uow.AddressRepository().CountByUser(ctx, profile.UserID)
	if err != nil {
		return err
	}

	isPrimary := cmd.IsPrimary() || count == 0
	if isPrimary && count > 0 {
		if err = uow.AddressRepository().DemotePrimary(ctx, profile.UserID); err != nil {
			return err
		}
	}

	entity, err := address.NewAddress(
		cmd.AddressID(), profile.UserID,
		cmd.Line(), cmd.City(), cmd.Province(), cmd.PostalCode(), cmd.Phone(),
		isPrimary,
	)
	if err != nil {
		return err
	}
	if err = uow.AddressRepository().Add(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
