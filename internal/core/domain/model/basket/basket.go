// Package basket contains the ephemeral buyer-owned row types: cart entries
// and wishlist entries. Both are keyed by the {buyerID, productID} pair, which
// is unique per table; a duplicate pair surfaces as a Conflict. These rows are
// hard-deleted when the owning buyer is soft-deleted, since they carry no
// archival value.
package basket

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrWishlistItemIsNotConstructed is returned when a WishlistItem was not
	// created through NewWishlistItem.
	ErrWishlistItemIsNotConstructed = errors.New("WishlistItem must be created via NewWishlistItem")

	// ErrCartItemIsNotConstructed is returned when a CartItem was not created
	// through NewCartItem.
	ErrCartItemIsNotConstructed = errors.New("CartItem must be created via NewCartItem")
)

// WishlistItem is a buyer's saved product reference.
type WishlistItem struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	productID kernel.UUID

	isConstructed bool
}

// NewWishlistItem creates a wishlist entry for the buyer+product pair.
func NewWishlistItem(id, buyerID, productID kernel.UUID) (*WishlistItem, error) {
	if err := errors.Join(
		validateID("id", id),
		validateID("buyerID", buyerID),
		validateID("productID", productID),
	); err != nil {
		return nil, err
	}

	return &WishlistItem{id: id, buyerID: buyerID, productID: productID, isConstructed: true}, nil
}

// Validate ensures the item was constructed through NewWishlistItem.
func (w *WishlistItem) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWishlistItemIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (w *WishlistItem) ID() kernel.UUID { return w.id }

// BuyerID returns the owning buyer's profile identifier.
func (w *WishlistItem) BuyerID() kernel.UUID { return w.buyerID }

// ProductID returns the referenced product identifier.
func (w *WishlistItem) ProductID() kernel.UUID { return w.productID }

// CartItem is a buyer's pending purchase line.
type CartItem struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	productID kernel.UUID
	quantity  int

	isConstructed bool
}

// NewCartItem creates a cart entry for the buyer+product pair.
// Quantity must be positive.
func NewCartItem(id, buyerID, productID kernel.UUID, quantity int) (*CartItem, error) {
	if err := errors.Join(
		validateID("id", id),
		validateID("buyerID", buyerID),
		validateID("productID", productID),
	); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidError("quantity")
	}

	return &CartItem{id: id, buyerID: buyerID, productID: productID, quantity: quantity, isConstructed: true}, nil
}

// Validate ensures the item was constructed through NewCartItem.
func (c *CartItem) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartItemIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (c *CartItem) ID() kernel.UUID { return c.id }

// BuyerID returns the owning buyer's profile identifier.
func (c *CartItem) BuyerID() kernel.UUID { return c.buyerID }

// ProductID returns the referenced product identifier.
func (c *CartItem) ProductID() kernel.UUID { return c.productID }

// Quantity returns the requested quantity.
func (c *CartItem) Quantity() int { return c.quantity }

func validateID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
