package addressrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB, tracker aggregateTracker) *GormAddressRepository {
	return &GormAddressRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new address to the database.
func (r *GormAddressRepository) Add(ctx context.Context, entity *address.Address) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves an existing address to the database. All columns are written,
// including a false primary flag, so demotions persist.
func (r *GormAddressRepository) Update(ctx context.Context, entity *address.Address) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&AddressDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("addressId", entity.ID().String())
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Get retrieves an address by ID.
func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("addressId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountByUser returns how many addresses the user owns.
func (r *GormAddressRepository) CountByUser(ctx context.Context, userID kernel.UUID) (int64, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&AddressDTO{}).Where("user_id = ?", userID.Bytes()).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetOldestByUser retrieves the user's oldest address by creation time.
func (r *GormAddressRepository) GetOldestByUser(ctx context.Context, userID kernel.UUID) (*address.Address, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DemotePrimary clears the primary flag on every address of the user.
// Affecting zero rows is fine; the user may have no primary yet.
func (r *GormAddressRepository) DemotePrimary(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("user_id = ? AND is_primary", userID.Bytes()).
		Update("is_primary", false).Error
}

// Delete removes an address row.
func (r *GormAddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AddressDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("addressId", id.String())
	}

	return nil
}
