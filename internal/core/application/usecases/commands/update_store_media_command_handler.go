package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateStoreMediaCommandHandler replaces a store's icon and/or banner with
// trash-then-commit-then-purge ordering, the same shape as the product media
// replacement: old objects are staged into the trash prefix, new objects are
// uploaded, the row update commits the switch, and only then is the trash
// purged. A failed row update deletes the new uploads and moves the old
// objects back to their live keys, in strict reverse order.
type UpdateStoreMediaCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewUpdateStoreMediaCommandHandler creates a handler for media replacement.
func NewUpdateStoreMediaCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) UpdateStoreMediaCommandHandler {
	return UpdateStoreMediaCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle runs the media replacement plan for the owning seller.
func (h *UpdateStoreMediaCommandHandler) Handle(ctx context.Context, cmd UpdateStoreMediaCommand) error {
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
	if aggregate.OperationalState().IsTerminal() {
		return errs.NewInvalidStateError("store", "cannot update media of a blocked store")
	}

	now := time.Now().UTC()
	plan := saga.NewPlan(fmt.Sprintf("update store media %s", cmd.StoreID()))

	// Stage every object being replaced into the trash prefix before any new
	// upload, so the forward order is trash-move, upload, row update and the
	// reverse order on failure is delete-new, move-back.
	if cmd.Icon() != nil {
		trashKey := saga.TrashKey(cmd.StoreID(), now, "icon", aggregate.IconKey())
		plan.Add(saga.NewBlobMove(h.blobs, "stage old icon to trash",
			aggregate.IconKey(), trashKey))
		plan.AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed icon", trashKey))
	}
	if cmd.Banner() != nil {
		trashKey := saga.TrashKey(cmd.StoreID(), now, "banner", aggregate.BannerKey())
		plan.Add(saga.NewBlobMove(h.blobs, "stage old banner to trash",
			aggregate.BannerKey(), trashKey))
		plan.AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed banner", trashKey))
	}

	newIconKey := ""
	if icon := cmd.Icon(); icon != nil {
		newIconKey = saga.UploadKey(icon.Filename)
		plan.Add(saga.NewBlobUpload(h.blobs, "upload new icon",
			newIconKey, icon.Data, icon.ContentType))
	}
	newBannerKey := ""
	if banner := cmd.Banner(); banner != nil {
		newBannerKey = saga.UploadKey(banner.Filename)
		plan.Add(saga.NewBlobUpload(h.blobs, "upload new banner",
			newBannerKey, banner.Data, banner.ContentType))
	}

	plan.Add(saga.NewRecordWrite("update store media keys",
		func(ctx context.Context) error {
			aggregate.ReplaceMedia(newIconKey, newBannerKey)
			return uow.StoreRepository().Update(ctx, aggregate)
		},
		nil,
	))

	return h.engine.Run(ctx, plan)
}
