package basketrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBasketRepository implements BasketRepository using GORM.
type GormBasketRepository struct {
	db *gorm.DB
}

// NewGormBasketRepository creates a new GORM basket repository.
func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

// AddWishlistItem persists a wishlist entry. A duplicate buyer+product pair
// violates the unique index and is reported as Conflict.
func (r *GormBasketRepository) AddWishlistItem(ctx context.Context, item *basket.WishlistItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := wishlistFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("wishlist item", err)
		}
		return err
	}

	return nil
}

// RemoveWishlistItem deletes a wishlist entry by id.
func (r *GormBasketRepository) RemoveWishlistItem(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&WishlistItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wishlistItemId", id.String())
	}

	return nil
}

// AddCartItem persists a cart entry. A duplicate buyer+product pair violates
// the unique index and is reported as Conflict.
func (r *GormBasketRepository) AddCartItem(ctx context.Context, item *basket.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := cartFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("cart item", err)
		}
		return err
	}

	return nil
}

// RemoveCartItem deletes a cart entry by id.
func (r *GormBasketRepository) RemoveCartItem(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CartItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cartItemId", id.String())
	}

	return nil
}

// DeleteAllByBuyer hard-deletes every cart and wishlist row of the buyer.
// Zero affected rows is fine; an empty basket is a valid state.
func (r *GormBasketRepository) DeleteAllByBuyer(ctx context.Context, buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&WishlistItemDTO{}, "buyer_id = ?", buyerID.Bytes()).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&CartItemDTO{}, "buyer_id = ?", buyerID.Bytes()).Error
}
