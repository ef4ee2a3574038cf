package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/ports"
)

// DeleteProductCommandHandler permanently deletes a product. Every media
// object is staged into the trash prefix before the row delete; a failed
// delete moves all of them back, and a successful delete purges the trash.
type DeleteProductCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewDeleteProductCommandHandler creates a handler for product deletion.
func NewDeleteProductCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle deletes the product. Allowed for the owning seller and for
// administrative roles.
func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
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

	now := time.Now().UTC()
	plan := saga.NewPlan(fmt.Sprintf("delete product %s", cmd.ProductID()))

	for i, key := range aggregate.ImageKeys() {
		trashKey := saga.TrashKey(cmd.ProductID(), now, "image", key)
		plan.Add(saga.NewBlobMove(h.blobs, fmt.Sprintf("stage image %d to trash", i+1), key, trashKey))
		plan.AddCleanup(saga.NewBlobDelete(h.blobs, fmt.Sprintf("purge trashed image %d", i+1), trashKey))
	}
	if aggregate.VideoKey() != "" {
		trashKey := saga.TrashKey(cmd.ProductID(), now, "video", aggregate.VideoKey())
		plan.Add(saga.NewBlobMove(h.blobs, "stage video to trash", aggregate.VideoKey(), trashKey))
		plan.AddCleanup(saga.NewBlobDelete(h.blobs, "purge trashed video", trashKey))
	}

	plan.Add(saga.NewRecordWrite("delete product row",
		func(ctx context.Context) error {
			return uow.ProductRepository().Delete(ctx, cmd.ProductID())
		},
		nil,
	))

	return h.engine.Run(ctx, plan)
}
