package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateProductMediaCommandHandler replaces a product's media with
// trash-then-commit-then-purge ordering. Old objects are staged into the
// trash prefix, new objects are uploaded, the row update commits the switch,
// and only then is the trash purged. A failed row update deletes the new
// uploads and moves the old objects back to their live keys, in strict
// reverse order of the forward steps.
type UpdateProductMediaCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewUpdateProductMediaCommandHandler creates a handler for media replacement.
func NewUpdateProductMediaCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) UpdateProductMediaCommandHandler {
	return UpdateProductMediaCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle runs the media replacement plan for the owning seller.
func (h *UpdateProductMediaCommandHandler) Handle(ctx context.Context, cmd UpdateProductMediaCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	parent, err := uow.StoreRepository().Get(ctx, aggregate.StoreID())
	if err != nil {
		return err
	}
	if err = requireStoreAccess(cmd.Actor(), aggregate.StoreID(), parent.SellerID()); err != nil {
		return err
	}
	if aggregate.OperationalState().IsTerminal() {
		return errs.NewInvalidStateError("product", "cannot update media of a blocked product")
	}

	now := time.Now().UTC()
	plan := saga.NewPlan(fmt.Sprintf("update product media %s", cmd.ProductID()))

	// Stage every object being replaced into the trash prefix before any new
	// upload, so the forward order is trash-move, upload, row update and the
	// reverse order on failure is delete-new, move-back.
	var newImageKeys []string
	if cmd.Images() != nil {
		for i, oldKey := range aggregate.ImageKeys() {
			trashKey := saga.TrashKey(cmd.ProductID(), now, "image", oldKey)
			plan.Add(saga.NewBlobMove(h.blobs, fmt.Sprintf("stage old image %d to trash", i+1),
				oldKey, trashKey))
			plan.AddCleanup(saga.NewBlobDelete(h.blobs, fmt.Sprintf("purge trashed image %d", i+1), trashKey))
		}
	}
	if cmd.Video() != nil && aggregate.VideoKey() != "" {
		trashKey := saga.TrashKey(cmd.ProductID(), now, "video", aggregate.VideoKey())
		plan.Add(saga.NewBlobMove(h.blobs, "stage old video to trash",
			aggregate.VideoKey(), trashKey))
		plan.AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed video", trashKey))
	}

	if cmd.Images() != nil {
		newImageKeys = make([]string, 0, len(cmd.Images()))
		for i, img := range cmd.Images() {
			key := saga.UploadKey(img.Filename)
			newImageKeys = append(newImageKeys, key)
			plan.Add(saga.NewBlobUpload(h.blobs, fmt.Sprintf("upload new image %d", i+1),
				key, img.Data, img.ContentType))
		}
	}
	newVideoKey := ""
	if video := cmd.Video(); video != nil {
		newVideoKey = saga.UploadKey(video.Filename)
		plan.Add(saga.NewBlobUpload(h.blobs, "upload new video",
			newVideoKey, video.Data, video.ContentType))
	}

	plan.Add(saga.NewRecordWrite("update product media keys",
		func(ctx context.Context) error {
			aggregate.ReplaceMedia(newImageKeys, newVideoKey)
			return uow.ProductRepository().Update(ctx, aggregate)
		},
		nil,
	))

	return h.engine.Run(ctx, plan)
}
