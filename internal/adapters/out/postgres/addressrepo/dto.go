// Package addressrepo provides data transfer objects and mapping functions
// for address persistence.
package addressrepo

import (
	"time"

	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressDTO represents the database structure for persisting addresses.
// CreatedAt ordering drives primary promotion after the primary is deleted.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Line       string
	City       string
	Province   string
	PostalCode string
	Phone      string
	IsPrimary  bool
	CreatedAt  time.Time
}

// TableName specifies the database table name for address entities.
func (AddressDTO) TableName() string {
	return "addresses"
}

// fromDomain converts an address entity to its database representation.
func fromDomain(entity *address.Address) AddressDTO {
	return AddressDTO{
		ID:         entity.ID().Bytes(),
		UserID:     entity.UserID().Bytes(),
		Line:       entity.Line(),
		City:       entity.City(),
		Province:   entity.Province(),
		PostalCode: entity.PostalCode(),
		Phone:      entity.Phone(),
		IsPrimary:  entity.IsPrimary(),
		CreatedAt:  entity.CreatedAt(),
	}
}

// toDomain converts a database DTO to an address entity.
func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return address.RestoreAddress(
		id,
		userID,
		dto.Line,
		dto.City,
		dto.Province,
		dto.PostalCode,
		dto.Phone,
		dto.IsPrimary,
		dto.CreatedAt,
	)
}
