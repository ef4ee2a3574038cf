package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateStoreMediaCommandIsNotConstructed = errors.New(
	"UpdateStoreMediaCommand must be created via NewUpdateStoreMediaCommand constructor",
)

// UpdateStoreMediaCommand represents a request to replace a store's icon
// and/or banner. A nil icon keeps the existing icon; a nil banner keeps the
// existing banner. At least one of the two must be present.
type UpdateStoreMediaCommand struct { //nolint:recvcheck //using for validation
	actor   auth.ActorContext
	storeID kernel.UUID
	icon    *UploadFile
	banner  *UploadFile

	guard guard.ConstructorGuard
}

// NewUpdateStoreMediaCommand creates a validated media replacement command.
func NewUpdateStoreMediaCommand(
	actor auth.ActorContext,
	storeID kernel.UUID,
	icon *UploadFile,
	banner *UploadFile,
) (UpdateStoreMediaCommand, error) {
	cmd := UpdateStoreMediaCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setStoreID(storeID),
		cmd.setMedia(icon, banner),
	); err != nil {
		return UpdateStoreMediaCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStoreMediaCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStoreMediaCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c UpdateStoreMediaCommand) Actor() auth.ActorContext { return c.actor }

// StoreID returns the store whose media is replaced.
func (c UpdateStoreMediaCommand) StoreID() kernel.UUID { return c.storeID }

// Icon returns the replacement icon upload, or nil to keep existing.
func (c UpdateStoreMediaCommand) Icon() *UploadFile { return c.icon }

// Banner returns the replacement banner upload, or nil to keep existing.
func (c UpdateStoreMediaCommand) Banner() *UploadFile { return c.banner }

func (c *UpdateStoreMediaCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateStoreMediaCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.storeID = id
	return nil
}

func (c *UpdateStoreMediaCommand) setMedia(icon, banner *UploadFile) error {
	if icon == nil && banner == nil {
		return errs.NewValueIsRequiredError("media")
	}
	if icon != nil {
		if err := icon.validate("icon"); err != nil {
			return err
		}
		i := *icon
		c.icon = &i
	}
	if banner != nil {
		if err := banner.validate("banner"); err != nil {
			return err
		}
		b := *banner
		c.banner = &b
	}

	return nil
}
