package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateProductMediaCommandIsNotConstructed = errors.New(
	"UpdateProductMediaCommand must be created via NewUpdateProductMediaCommand constructor",
)

// UpdateProductMediaCommand represents a request to replace a product's
// images and/or video. A nil images slice keeps the existing images; a nil
// video keeps the existing video. At least one of the two must be present.
type UpdateProductMediaCommand struct { //nolint:recvcheck //using for validation
	actor     auth.ActorContext
	productID kernel.UUID
	images    []UploadFile
	video     *UploadFile

	guard guard.ConstructorGuard
}

// NewUpdateProductMediaCommand creates a validated media replacement command.
func NewUpdateProductMediaCommand(
	actor auth.ActorContext,
	productID kernel.UUID,
	images []UploadFile,
	video *UploadFile,
) (UpdateProductMediaCommand, error) {
	cmd := UpdateProductMediaCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setProductID(productID),
		cmd.setMedia(images, video),
	); err != nil {
		return UpdateProductMediaCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductMediaCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductMediaCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c UpdateProductMediaCommand) Actor() auth.ActorContext { return c.actor }

// ProductID returns the product whose media is replaced.
func (c UpdateProductMediaCommand) ProductID() kernel.UUID { return c.productID }

// Images returns the replacement image uploads, or nil to keep existing.
func (c UpdateProductMediaCommand) Images() []UploadFile { return c.images }

// Video returns the replacement video upload, or nil to keep existing.
func (c UpdateProductMediaCommand) Video() *UploadFile { return c.video }

func (c *UpdateProductMediaCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateProductMediaCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *UpdateProductMediaCommand) setMedia(images []UploadFile, video *UploadFile) error {
	if images == nil && video == nil {
		return errs.NewValueIsRequiredError("media")
	}
	if images != nil && len(images) == 0 {
		return errs.NewValueIsRequiredError("images")
	}
	for _, img := range images {
		if err := img.validate("images"); err != nil {
			return err
		}
	}
	if video != nil {
		if err := video.validate("video"); err != nil {
			return err
		}
		v := *video
		c.video = &v
	}

	if images != nil {
		c.images = append([]UploadFile(nil), images...)
	}
	return nil
}
