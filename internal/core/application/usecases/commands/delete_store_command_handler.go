package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DeleteStoreCommandHandler permanently deletes a storefront. The icon and
// banner are staged into the trash prefix first; the row delete is the commit
// point; the trash objects are purged only afterwards. A failed row delete
// moves the media back to its live keys by compensation.
type DeleteStoreCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewDeleteStoreCommandHandler creates a handler for store deletion.
func NewDeleteStoreCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) DeleteStoreCommandHandler {
	return DeleteStoreCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle deletes the store. Allowed for the owning seller and for
// administrative roles; a non-owning seller gets NotFound, never a hint that
// the store exists.
func (h *DeleteStoreCommandHandler) Handle(ctx context.Context, cmd DeleteStoreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.StoreRepository().Get(ctx, cmd.StoreID())
	if err != nil {
		return err
	}
	if err = requireStoreAccess(cmd.Actor(), cmd.StoreID(), aggregate.SellerID()); err != nil {
		return err
	}

	now := time.Now().UTC()
	trashIcon := saga.TrashKey(cmd.StoreID(), now, "icon", aggregate.IconKey())
	trashBanner := saga.TrashKey(cmd.StoreID(), now, "banner", aggregate.BannerKey())

	plan := saga.NewPlan(fmt.Sprintf("delete store %s", cmd.StoreID())).
		Add(saga.NewBlobMove(h.blobs, "stage store icon to trash",
			aggregate.IconKey(), trashIcon)).
		Add(saga.NewBlobMove(h.blobs, "stage store banner to trash",
			aggregate.BannerKey(), trashBanner)).
		Add(saga.NewRecordWrite("delete store row",
			func(ctx context.Context) error {
				return uow.StoreRepository().Delete(ctx, cmd.StoreID())
			},
			nil,
		)).
		AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed store icon", trashIcon)).
		AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed store banner", trashBanner))

	return h.engine.Run(ctx, plan)
}

// requireStoreAccess admits administrative roles and the owning seller.
// Everyone else gets NotFound so the check does not leak store existence.
func requireStoreAccess(actor auth.ActorContext, storeID, sellerID kernel.UUID) error {
	if actor.Role().IsAdministrative() {
		return nil
	}
	if actor.Role() == kernel.RoleSeller && actor.ActorID().IsEqual(sellerID) {
		return nil
	}
	return errs.NewObjectNotFoundError("storeId", storeID.String())
}
