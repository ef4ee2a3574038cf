package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateUserStatusCommandIsNotConstructed = errors.New(
	"UpdateUserStatusCommand must be created via NewUpdateUserStatusCommand constructor",
)

// UpdateUserStatusCommand represents an administrative request to change a
// user's operational state.
type UpdateUserStatusCommand struct { //nolint:recvcheck //using for validation
	actor    auth.ActorContext
	userID   kernel.UUID
	newState kernel.OperationalState

	guard guard.ConstructorGuard
}

// NewUpdateUserStatusCommand creates a validated status update command.
func NewUpdateUserStatusCommand(
	actor auth.ActorContext,
	userID kernel.UUID,
	newState kernel.OperationalState,
) (UpdateUserStatusCommand, error) {
	cmd := UpdateUserStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), userID.Validate(), newState.Validate()); err != nil {
		return UpdateUserStatusCommand{}, err
	}

	cmd.actor = actor
	cmd.userID = userID
	cmd.newState = newState
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateUserStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserStatusCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c UpdateUserStatusCommand) Actor() auth.ActorContext { return c.actor }

// UserID returns the user whose state changes.
func (c UpdateUserStatusCommand) UserID() kernel.UUID { return c.userID }

// NewState returns the target operational state.
func (c UpdateUserStatusCommand) NewState() kernel.OperationalState { return c.newState }
