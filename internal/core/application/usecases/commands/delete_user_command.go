package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteUserCommandIsNotConstructed = errors.New(
	"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
)

// DeleteUserCommand represents an administrative request to soft-delete a
// user. Deletion is the terminal Blocked transition, never a row removal.
type DeleteUserCommand struct { //nolint:recvcheck //using for validation
	actor  auth.ActorContext
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteUserCommand creates a validated user deletion command.
func NewDeleteUserCommand(actor auth.ActorContext, userID kernel.UUID) (DeleteUserCommand, error) {
	cmd := DeleteUserCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return DeleteUserCommand{}, err
	}

	cmd.actor = actor
	cmd.userID = userID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c DeleteUserCommand) Actor() auth.ActorContext { return c.actor }

// UserID returns the user to soft-delete.
func (c DeleteUserCommand) UserID() kernel.UUID { return c.userID }
