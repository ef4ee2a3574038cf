// Package ports defines the contracts between the application core and
// infrastructure: repositories over the record store, the unit-of-work
// transaction boundary, the blob store, and the dead-letter log.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/store"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user. A duplicate email surfaces as Conflict.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByIDAndRole retrieves a user only when both id and role match.
	// Used by the actor authorization check for administrative roles.
	GetByIDAndRole(ctx context.Context, id kernel.UUID, role kernel.Role) (*user.User, error)

	// DeleteRefreshTokensByUser revokes every refresh token owned by the user.
	// Invoked when a user is soft-deleted so blocked accounts cannot renew
	// their sessions.
	DeleteRefreshTokensByUser(ctx context.Context, userID kernel.UUID) error
}

// BuyerProfile is the role-scoped lookup record for a buyer.
type BuyerProfile struct {
	ID     kernel.UUID
	UserID kernel.UUID
}

// SellerProfile is the role-scoped lookup record for a seller.
type SellerProfile struct {
	ID     kernel.UUID
	UserID kernel.UUID
}

// RiderProfile is the role-scoped lookup record for a rider.
type RiderProfile struct {
	ID     kernel.UUID
	UserID kernel.UUID
}

// ProfileRepository resolves role-scoped profile rows linked to users.
// The actor authorization check and the cascade propagator are its consumers.
type ProfileRepository interface {
	// GetBuyer retrieves a buyer profile by profile id.
	GetBuyer(ctx context.Context, id kernel.UUID) (*BuyerProfile, error)

	// GetSeller retrieves a seller profile by profile id.
	GetSeller(ctx context.Context, id kernel.UUID) (*SellerProfile, error)

	// GetRider retrieves a rider profile by profile id.
	GetRider(ctx context.Context, id kernel.UUID) (*RiderProfile, error)

	// GetBuyerByUserID retrieves a buyer profile by its owning user id.
	GetBuyerByUserID(ctx context.Context, userID kernel.UUID) (*BuyerProfile, error)

	// GetSellerByUserID retrieves a seller profile by its owning user id.
	GetSellerByUserID(ctx context.Context, userID kernel.UUID) (*SellerProfile, error)
}

// StoreRepository defines the persistence contract for store aggregates.
type StoreRepository interface {
	// Add persists a new store.
	Add(ctx context.Context, aggregate *store.Store) error

	// Update persists changes to an existing store.
	Update(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetAllBySeller retrieves every store owned by the seller, including
	// blocked ones. The cascade propagator iterates this set.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*store.Store, error)

	// Delete removes a store row permanently. Media trash staging must have
	// happened before this is called.
	Delete(ctx context.Context, id kernel.UUID) error
}

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAllByStore retrieves every product under the store, including
	// blocked ones. The cascade propagator iterates this set.
	GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*product.Product, error)

	// Delete removes a product row permanently. Media trash staging must have
	// happened before this is called.
	Delete(ctx context.Context, id kernel.UUID) error
}

// AddressRepository defines the persistence contract for address entities.
type AddressRepository interface {
	// Add persists a new address.
	Add(ctx context.Context, entity *address.Address) error

	// Update persists changes to an existing address.
	Update(ctx context.Context, entity *address.Address) error

	// Get retrieves an address by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)

	// CountByUser returns how many addresses the user owns.
	CountByUser(ctx context.Context, userID kernel.UUID) (int64, error)

	// GetOldestByUser retrieves the user's oldest remaining address by
	// creation time. Used to promote a new primary after the primary address
	// is deleted.
	GetOldestByUser(ctx context.Context, userID kernel.UUID) (*address.Address, error)

	// DemotePrimary clears the primary flag on every address of the user.
	DemotePrimary(ctx context.Context, userID kernel.UUID) error

	// Delete removes an address row.
	Delete(ctx context.Context, id kernel.UUID) error
}

// BasketRepository defines the persistence contract for the ephemeral
// buyer-owned rows: cart entries and wishlist entries.
type BasketRepository interface {
	// AddWishlistItem persists a wishlist entry.
	// A duplicate buyer+product pair surfaces as Conflict.
	AddWishlistItem(ctx context.Context, item *basket.WishlistItem) error

	// RemoveWishlistItem deletes a wishlist entry by id.
	RemoveWishlistItem(ctx context.Context, id kernel.UUID) error

	// AddCartItem persists a cart entry.
	// A duplicate buyer+product pair surfaces as Conflict.
	AddCartItem(ctx context.Context, item *basket.CartItem) error

	// RemoveCartItem deletes a cart entry by id.
	RemoveCartItem(ctx context.Context, id kernel.UUID) error

	// DeleteAllByBuyer hard-deletes every cart and wishlist row of the buyer.
	// Invoked by the cascade propagator; these rows are ephemeral, not archival.
	DeleteAllByBuyer(ctx context.Context, buyerID kernel.UUID) error
}

// OrderRepository covers the archival buyer records: orders with their items,
// return requests, and product reviews. The cascade propagator soft-blocks
// these instead of deleting them, preserving historical record.
type OrderRepository interface {
	// BlockOrdersByBuyer sets the Blocked operational state on every order of
	// the buyer and returns the number of affected rows.
	BlockOrdersByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error)

	// BlockReturnRequestsByBuyer sets the Blocked operational state on every
	// return request of the buyer and returns the number of affected rows.
	BlockReturnRequestsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error)

	// BlockReviewsByBuyer sets the Blocked operational state on every product
	// review of the buyer and returns the number of affected rows.
	BlockReviewsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error)
}
