package profilerepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetBuyer retrieves a buyer profile by profile id.
func (r *GormProfileRepository) GetBuyer(ctx context.Context, id kernel.UUID) (*ports.BuyerProfile, error) {
	var dto BuyerDTO
	if err := r.first(ctx, &dto, "id = ?", id, "buyerId", id.String()); err != nil {
		return nil, err
	}
	return buyerToDomain(dto)
}

// GetSeller retrieves a seller profile by profile id.
func (r *GormProfileRepository) GetSeller(ctx context.Context, id kernel.UUID) (*ports.SellerProfile, error) {
	var dto SellerDTO
	if err := r.first(ctx, &dto, "id = ?", id, "sellerId", id.String()); err != nil {
		return nil, err
	}
	return sellerToDomain(dto)
}

// GetRider retrieves a rider profile by profile id.
func (r *GormProfileRepository) GetRider(ctx context.Context, id kernel.UUID) (*ports.RiderProfile, error) {
	var dto RiderDTO
	if err := r.first(ctx, &dto, "id = ?", id, "riderId", id.String()); err != nil {
		return nil, err
	}
	return riderToDomain(dto)
}

// GetBuyerByUserID retrieves a buyer profile by its owning user id.
func (r *GormProfileRepository) GetBuyerByUserID(ctx context.Context, userID kernel.UUID) (*ports.BuyerProfile, error) {
	var dto BuyerDTO
	if err := r.first(ctx, &dto, "user_id = ?", userID, "userId", userID.String()); err != nil {
		return nil, err
	}
	return buyerToDomain(dto)
}

// GetSellerByUserID retrieves a seller profile by its owning user id.
func (r *GormProfileRepository) GetSellerByUserID(ctx context.Context, userID kernel.UUID) (*ports.SellerProfile, error) {
	var dto SellerDTO
	if err := r.first(ctx, &dto, "user_id = ?", userID, "userId", userID.String()); err != nil {
		return nil, err
	}
	return sellerToDomain(dto)
}

func (r *GormProfileRepository) first(
	ctx context.Context,
	dest any,
	condition string,
	id kernel.UUID,
	paramName, paramValue string,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).First(dest, condition, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(paramName, paramValue)
		}
		return err
	}
	return nil
}

func buyerToDomain(dto BuyerDTO) (*ports.BuyerProfile, error) {
	id, userID, err := profileIDs(dto.ID, dto.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.BuyerProfile{ID: id, UserID: userID}, nil
}

func sellerToDomain(dto SellerDTO) (*ports.SellerProfile, error) {
	id, userID, err := profileIDs(dto.ID, dto.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.SellerProfile{ID: id, UserID: userID}, nil
}

func riderToDomain(dto RiderDTO) (*ports.RiderProfile, error) {
	id, userID, err := profileIDs(dto.ID, dto.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.RiderProfile{ID: id, UserID: userID}, nil
}

func profileIDs(rawID, rawUserID uuid.UUID) (kernel.UUID, kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	userID, err := kernel.UUIDFromBytes(rawUserID[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return id, userID, nil
}
