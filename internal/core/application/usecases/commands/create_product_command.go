package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a seller's request to list a product with
// at least one image and an optional video.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	actor       auth.ActorContext
	productID   kernel.UUID
	storeID     kernel.UUID
	title       string
	description string
	priceCents  int64
	stock       int
	images      []UploadFile
	video       *UploadFile

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a validated product creation command.
func NewCreateProductCommand(
	actor auth.ActorContext,
	productID, storeID kernel.UUID,
	title, description string,
	priceCents int64,
	stock int,
	images []UploadFile,
	video *UploadFile,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setProductID(productID),
		cmd.setStoreID(storeID),
		cmd.setTitle(title),
		cmd.setPrice(priceCents),
		cmd.setStock(stock),
		cmd.setImages(images),
		cmd.setVideo(video),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c CreateProductCommand) Actor() auth.ActorContext { return c.actor }

// ProductID returns the identifier the new product will be created under.
func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }

// StoreID returns the store the product is listed under.
func (c CreateProductCommand) StoreID() kernel.UUID { return c.storeID }

// Title returns the product title.
func (c CreateProductCommand) Title() string { return c.title }

// Description returns the product description.
func (c CreateProductCommand) Description() string { return c.description }

// PriceCents returns the price in minor currency units.
func (c CreateProductCommand) PriceCents() int64 { return c.priceCents }

// Stock returns the initial stock count.
func (c CreateProductCommand) Stock() int { return c.stock }

// Images returns the image uploads.
func (c CreateProductCommand) Images() []UploadFile { return c.images }

// Video returns the optional video upload, or nil.
func (c CreateProductCommand) Video() *UploadFile { return c.video }

func (c *CreateProductCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *CreateProductCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeID", err)
	}

	c.storeID = id
	return nil
}

func (c *CreateProductCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}

	c.title = title
	return nil
}

func (c *CreateProductCommand) setPrice(priceCents int64) error {
	if priceCents <= 0 {
		return errs.NewValueIsInvalidError("price")
	}

	c.priceCents = priceCents
	return nil
}

func (c *CreateProductCommand) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidError("stock")
	}

	c.stock = stock
	return nil
}

func (c *CreateProductCommand) setImages(images []UploadFile) error {
	if len(images) == 0 {
		return errs.NewValueIsRequiredError("images")
	}
	for _, img := range images {
		if err := img.validate("images"); err != nil {
			return err
		}
	}

	c.images = append([]UploadFile(nil), images...)
	return nil
}

func (c *CreateProductCommand) setVideo(video *UploadFile) error {
	if video == nil {
		return nil
	}
	if err := video.validate("video"); err != nil {
		return err
	}

	v := *video
	c.video = &v
	return nil
}
