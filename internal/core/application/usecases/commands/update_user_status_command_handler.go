package commands

import (
	"context"

	"marketplace/internal/core/application/cascade"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateUserStatusCommandHandler applies an administrative operational-state
// change to a user. The Blocked transition cascades to everything the user
// owns inside one transaction; Active and Suspended transitions touch only
// the user row. Reactivation is an explicit administrative action, never a
// reversal replayed by the workflow engine, and it does not resurrect
// children that were blocked by an earlier cascade.
type UpdateUserStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	propagator *cascade.Propagator
}

// NewUpdateUserStatusCommandHandler creates a handler for user status updates.
func NewUpdateUserStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	propagator *cascade.Propagator,
) UpdateUserStatusCommandHandler {
	return UpdateUserStatusCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		propagator: propagator,
	}
}

// Handle processes the status update. Administrative roles only.
func (h *UpdateUserStatusCommandHandler) Handle(ctx context.Context, cmd UpdateUserStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().Role().IsAdministrative() {
		return errs.NewInvalidStateError("user", "only administrators can change user status")
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

	aggregate, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if cmd.NewState() == kernel.OperationalStateBlocked {
		if err = aggregate.Block(); err != nil {
			return err
		}
	} else if err = aggregate.ChangeOperationalState(cmd.NewState()); err != nil {
		return err
	}

	if err = uow.UserRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.NewState() == kernel.OperationalStateBlocked {
		if _, err = h.propagator.BlockUserChildren(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
