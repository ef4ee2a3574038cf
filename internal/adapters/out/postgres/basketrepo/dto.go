// Package basketrepo provides data transfer objects and mapping functions for
// the ephemeral buyer-owned rows: cart entries and wishlist entries. Each
// table enforces a unique {buyer, product} pair; the duplicate-key signal is
// translated to Conflict.
package basketrepo

import (
	"marketplace/internal/core/domain/model/basket"

	"github.com/google/uuid"
)

// WishlistItemDTO represents a wishlist entry row.
type WishlistItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_buyer_product"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_buyer_product"`
}

// TableName specifies the database table name for wishlist entries.
func (WishlistItemDTO) TableName() string {
	return "wishlist_items"
}

// CartItemDTO represents a cart entry row.
type CartItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_buyer_product"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_buyer_product"`
	Quantity  int
}

// TableName specifies the database table name for cart entries.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// wishlistFromDomain converts a wishlist entry to its database representation.
func wishlistFromDomain(item *basket.WishlistItem) WishlistItemDTO {
	return WishlistItemDTO{
		ID:        item.ID().Bytes(),
		BuyerID:   item.BuyerID().Bytes(),
		ProductID: item.ProductID().Bytes(),
	}
}

// cartFromDomain converts a cart entry to its database representation.
func cartFromDomain(item *basket.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:        item.ID().Bytes(),
		BuyerID:   item.BuyerID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Quantity:  item.Quantity(),
	}
}
