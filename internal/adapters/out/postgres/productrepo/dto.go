// Package productrepo provides data transfer objects and mapping functions
// for product persistence.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product
// aggregates. Image keys are stored as a JSON array in a single column; the
// ordering of keys is significant and must survive the round trip.
type ProductDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID          uuid.UUID `gorm:"type:uuid;index"`
	Title            string
	Description      string
	PriceCents       int64
	Stock            int
	ImageKeys        []string `gorm:"serializer:json;type:jsonb"`
	VideoKey         string
	OperationalState string `gorm:"index"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:               aggregate.ID().Bytes(),
		StoreID:          aggregate.StoreID().Bytes(),
		Title:            aggregate.Title(),
		Description:      aggregate.Description(),
		PriceCents:       aggregate.PriceCents(),
		Stock:            aggregate.Stock(),
		ImageKeys:        aggregate.ImageKeys(),
		VideoKey:         aggregate.VideoKey(),
		OperationalState: aggregate.OperationalState().String(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	operational, err := kernel.OperationalStateFromString(dto.OperationalState)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		storeID,
		dto.Title,
		dto.Description,
		dto.PriceCents,
		dto.Stock,
		dto.ImageKeys,
		dto.VideoKey,
		operational,
	)
}
