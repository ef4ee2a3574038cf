package storerepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/store"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStoreRepository creates a new GORM store repository.
func NewGormStoreRepository(db *gorm.DB, tracker aggregateTracker) *GormStoreRepository {
	return &GormStoreRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new store to the database.
func (r *GormStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing store to the database.
func (r *GormStoreRepository) Update(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StoreDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("storeId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a store by ID.
func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("storeId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllBySeller retrieves every store owned by the seller, blocked ones
// included. The cascade needs the full set to find children it has not
// blocked yet.
func (r *GormStoreRepository) GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*store.Store, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StoreDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}

	return stores, nil
}

// Delete removes a store row permanently.
func (r *GormStoreRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StoreDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("storeId", id.String())
	}

	return nil
}
