package commands

import (
	"context"

	"marketplace/internal/core/application/cascade"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DeleteUserCommandHandler soft-deletes a user: the terminal Blocked
// transition on the user row plus the full ownership cascade, committed as
// one transaction. A failure anywhere in the cascade leaves nothing visible.
type DeleteUserCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	verifier   ActorVerifier
	propagator *cascade.Propagator
}

// NewDeleteUserCommandHandler creates a handler for user soft deletion.
func NewDeleteUserCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	verifier ActorVerifier,
	propagator *cascade.Propagator,
) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		propagator: propagator,
	}
}

// Handle processes the deletion. Administrative roles only; deleting an
// already blocked user returns InvalidState.
func (h *DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().Role().IsAdministrative() {
		return errs.NewInvalidStateError("user", "only administrators can delete users")
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
	if err = aggregate.Block(); err != nil {
		return err
	}
	if err = uow.UserRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if _, err = h.propagator.BlockUserChildren(ctx, uow, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
