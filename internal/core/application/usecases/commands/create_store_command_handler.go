package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/store"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateStoreCommandHandler opens a storefront for a seller. The icon and
// banner uploads plus the row insert run as one mutation plan: if the insert
// fails, both uploaded objects are deleted by compensation and no partial
// storefront remains.
type CreateStoreCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	engine     WorkflowEngine
	blobs      ports.BlobStore
}

// NewCreateStoreCommandHandler creates a handler for store creation.
func NewCreateStoreCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	engine WorkflowEngine,
	blobs ports.BlobStore,
) CreateStoreCommandHandler {
	return CreateStoreCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		engine:     engine,
		blobs:      blobs,
	}
}

// Handle runs the store creation plan. Only sellers may create stores; the
// acting seller profile becomes the owner.
func (h *CreateStoreCommandHandler) Handle(ctx context.Context, cmd CreateStoreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().Role() != kernel.RoleSeller {
		return errs.NewInvalidStateError("store", "only sellers can create stores")
	}
	if err := h.verifier.Verify(ctx, cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	iconKey := saga.UploadKey(cmd.Icon().Filename)
	bannerKey := saga.UploadKey(cmd.Banner().Filename)

	plan := saga.NewPlan(fmt.Sprintf("create store %s", cmd.StoreID())).
		Add(saga.NewBlobUpload(h.blobs, "upload store icon",
			iconKey, cmd.Icon().Data, cmd.Icon().ContentType)).
		Add(saga.NewBlobUpload(h.blobs, "upload store banner",
			bannerKey, cmd.Banner().Data, cmd.Banner().ContentType)).
		Add(saga.NewRecordWrite("insert store row",
			func(ctx context.Context) error {
				aggregate, err := store.NewStore(
					cmd.StoreID(), cmd.Actor().ActorID(),
					cmd.Name(), cmd.Description(),
					iconKey, bannerKey,
				)
				if err != nil {
					return err
				}
				return uow.StoreRepository().Add(ctx, aggregate)
			},
			nil,
		))

	return h.engine.Run(ctx, plan)
}
