// Package storerepo provides data transfer objects and mapping functions for
// store persistence.
package storerepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure for persisting store aggregates.
// Media columns hold blob-store keys; the objects themselves live in the blob
// store and are managed by the workflow engine.
type StoreDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID         uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	Description      string
	IconKey          string
	BannerKey        string
	OperationalState string `gorm:"index"`
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

// fromDomain converts a store domain aggregate to its database representation.
func fromDomain(aggregate *store.Store) StoreDTO {
	return StoreDTO{
		ID:               aggregate.ID().Bytes(),
		SellerID:         aggregate.SellerID().Bytes(),
		Name:             aggregate.Name(),
		Description:      aggregate.Description(),
		IconKey:          aggregate.IconKey(),
		BannerKey:        aggregate.BannerKey(),
		OperationalState: aggregate.OperationalState().String(),
	}
}

// toDomain converts a database DTO to a store domain aggregate.
func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	operational, err := kernel.OperationalStateFromString(dto.OperationalState)
	if err != nil {
		return nil, err
	}

	return store.RestoreStore(id, sellerID, dto.Name, dto.Description, dto.IconKey, dto.BannerKey, operational)
}
