package orderrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM. All operations
// are buyer-scoped bulk updates; already-blocked rows are excluded so the
// reported counts reflect rows this cascade actually touched.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// BlockOrdersByBuyer blocks every order of the buyer and returns how many
// rows changed state.
func (r *GormOrderRepository) BlockOrdersByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	return r.blockByBuyer(ctx, &OrderDTO{}, buyerID)
}

// BlockReturnRequestsByBuyer blocks every return request of the buyer and
// returns how many rows changed state.
func (r *GormOrderRepository) BlockReturnRequestsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	return r.blockByBuyer(ctx, &ReturnRequestDTO{}, buyerID)
}

// BlockReviewsByBuyer blocks every product review of the buyer and returns
// how many rows changed state.
func (r *GormOrderRepository) BlockReviewsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	return r.blockByBuyer(ctx, &ReviewDTO{}, buyerID)
}

func (r *GormOrderRepository) blockByBuyer(ctx context.Context, model any, buyerID kernel.UUID) (int64, error) {
	if err := buyerID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("buyer_id = ? AND operational_state <> ?", buyerID.Bytes(), kernel.OperationalStateBlocked.String()).
		Update("operational_state", kernel.OperationalStateBlocked.String())
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
