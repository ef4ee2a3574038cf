// Package product contains the Product aggregate. A product references its
// images and optional video by blob-store key; replacing or removing media is
// orchestrated by the workflow engine with trash staging.
package product

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
)

// Product is the aggregate root for a sellable item under a store.
type Product struct {
	id               kernel.UUID
	storeID          kernel.UUID
	title            string
	description      string
	priceCents       int64
	stock            int
	imageKeys        []string
	videoKey         string
	operationalState kernel.OperationalState

	isConstructed bool
}

// NewProduct creates a new Product in the Active operational state.
// Image keys must already point at uploaded blobs; videoKey may be empty.
func NewProduct(
	id, storeID kernel.UUID,
	title, description string,
	priceCents int64,
	stock int,
	imageKeys []string,
	videoKey string,
) (*Product, error) {
	p := &Product{
		operationalState: kernel.OperationalStateActive,
		isConstructed:    true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setStoreID(storeID),
		p.setTitle(title),
		p.setPrice(priceCents),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	p.description = description
	p.imageKeys = append([]string(nil), imageKeys...)
	p.videoKey = videoKey
	return p, nil
}

// RestoreProduct reconstructs a Product from persistence. Used by repositories only.
func RestoreProduct(
	id, storeID kernel.UUID,
	title, description string,
	priceCents int64,
	stock int,
	imageKeys []string,
	videoKey string,
	operational kernel.OperationalState,
) (*Product, error) {
	p, err := NewProduct(id, storeID, title, description, priceCents, stock, imageKeys, videoKey)
	if err != nil {
		return nil, err
	}

	if err = operational.Validate(); err != nil {
		return nil, err
	}

	p.operationalState = operational
	return p, nil
}

// Validate ensures the Product was constructed through NewProduct or RestoreProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// StoreID returns the owning store's identifier.
func (p *Product) StoreID() kernel.UUID {
	return p.storeID
}

// Title returns the product title.
func (p *Product) Title() string {
	return p.title
}

// Description returns the product description.
func (p *Product) Description() string {
	return p.description
}

// PriceCents returns the product price in minor currency units.
func (p *Product) PriceCents() int64 {
	return p.priceCents
}

// Stock returns the available stock count.
func (p *Product) Stock() int {
	return p.stock
}

// ImageKeys returns a copy of the blob-store keys of the product images.
func (p *Product) ImageKeys() []string {
	return append([]string(nil), p.imageKeys...)
}

// VideoKey returns the blob-store key of the product video, or empty.
func (p *Product) VideoKey() string {
	return p.videoKey
}

// OperationalState returns the product's operational status.
func (p *Product) OperationalState() kernel.OperationalState {
	return p.operationalState
}

// Block transitions the product to the terminal Blocked state.
// Returns InvalidState if the product is already Blocked.
func (p *Product) Block() error {
	if p.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("product", "already blocked")
	}

	p.operationalState = kernel.OperationalStateBlocked
	return nil
}

// ChangeOperationalState applies an admin-driven status update.
func (p *Product) ChangeOperationalState(state kernel.OperationalState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if p.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("product", "cannot update status of a blocked product")
	}

	p.operationalState = state
	return nil
}

// ReplaceMedia swaps the media keys after a successful media workflow.
// A nil imageKeys slice keeps existing images; an empty videoKey keeps the
// existing video.
func (p *Product) ReplaceMedia(imageKeys []string, videoKey string) {
	if imageKeys != nil {
		p.imageKeys = append([]string(nil), imageKeys...)
	}
	if videoKey != "" {
		p.videoKey = videoKey
	}
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeID", err)
	}
	p.storeID = id
	return nil
}

func (p *Product) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	p.title = title
	return nil
}

func (p *Product) setPrice(priceCents int64) error {
	if priceCents <= 0 {
		return errs.NewValueIsInvalidError("price")
	}
	p.priceCents = priceCents
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidError("stock")
	}
	p.stock = stock
	return nil
}
