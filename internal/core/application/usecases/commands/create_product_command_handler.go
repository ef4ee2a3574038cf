package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateProductCommandHandler lists a product under a store. All media
// uploads and the row insert run as one mutation plan: a failed insert
// deletes every uploaded object by compensation.
type CreateProductCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewCreateProductCommandHandler creates a handler for product creation.
func NewCreateProductCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle runs the product creation plan. The acting seller must own the
// target store.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().Role() != kernel.RoleSeller {
		return errs.NewInvalidStateError("product", "only sellers can create products")
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	parent, err := uow.StoreRepository().Get(ctx, cmd.StoreID())
	if err != nil {
		return err
	}
	if err = requireStoreAccess(cmd.Actor(), cmd.StoreID(), parent.SellerID()); err != nil {
		return err
	}
	if parent.OperationalState() != kernel.OperationalStateActive {
		return errs.NewInvalidStateError("store", "cannot list products on an inactive store")
	}

	plan := saga.NewPlan(fmt.Sprintf("create product %s", cmd.ProductID()))

	imageKeys := make([]string, 0, len(cmd.Images()))
	for i, img := range cmd.Images() {
		key := saga.UploadKey(img.Filename)
		imageKeys = append(imageKeys, key)
		plan.Add(saga.NewBlobUpload(h.blobs, fmt.Sprintf("upload product image %d", i+1),
			key, img.Data, img.ContentType))
	}

	videoKey := ""
	if video := cmd.Video(); video != nil {
		videoKey = saga.UploadKey(video.Filename)
		plan.Add(saga.NewBlobUpload(h.blobs, "upload product video",
			videoKey, video.Data, video.ContentType))
	}

	plan.Add(saga.NewRecordWrite("insert product row",
		func(ctx context.Context) error {
			aggregate, err := product.NewProduct(
				cmd.ProductID(), cmd.StoreID(),
				cmd.Title(), cmd.Description(),
				cmd.PriceCents(), cmd.Stock(),
				imageKeys, videoKey,
			)
			if err != nil {
				return err
			}
			return uow.ProductRepository().Add(ctx, aggregate)
		},
		nil,
	))

	return h.engine.Run(ctx, plan)
}
