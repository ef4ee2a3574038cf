package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateStoreCommandIsNotConstructed = errors.New(
	"CreateStoreCommand must be created via NewCreateStoreCommand constructor",
)

// CreateStoreCommand represents a seller's request to open a storefront with
// an icon and a banner image.
type CreateStoreCommand struct { //nolint:recvcheck //using for validation
	actor       auth.ActorContext
	storeID     kernel.UUID
	name        string
	description string
	icon        UploadFile
	banner      UploadFile

	guard guard.ConstructorGuard
}

// NewCreateStoreCommand creates a validated store creation command.
// Both media files are required; the storefront is never created without them.
func NewCreateStoreCommand(
	actor auth.ActorContext,
	storeID kernel.UUID,
	name, description string,
	icon, banner UploadFile,
) (CreateStoreCommand, error) {
	cmd := CreateStoreCommand{
		description: description,
		icon:        icon,
		banner:      banner,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setStoreID(storeID),
		cmd.setName(name),
		icon.validate("icon"),
		banner.validate("banner"),
	); err != nil {
		return CreateStoreCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStoreCommand) Validate() error {
	return c.guard.Validate(ErrCreateStoreCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c CreateStoreCommand) Actor() auth.ActorContext { return c.actor }

// StoreID returns the identifier the new store will be created under.
func (c CreateStoreCommand) StoreID() kernel.UUID { return c.storeID }

// Name returns the store display name.
func (c CreateStoreCommand) Name() string { return c.name }

// Description returns the store description.
func (c CreateStoreCommand) Description() string { return c.description }

// Icon returns the icon upload.
func (c CreateStoreCommand) Icon() UploadFile { return c.icon }

// Banner returns the banner upload.
func (c CreateStoreCommand) Banner() UploadFile { return c.banner }

func (c *CreateStoreCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateStoreCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateStoreCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("storeName")
	}

	c.name = name
	return nil
}
