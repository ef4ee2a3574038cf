// Package profilerepo provides read access to the role-scoped profile rows
// linked to users. Profiles are created by the registration flow outside this
// service; here they are only resolved, by profile id or by owning user id.
package profilerepo

import (
	"github.com/google/uuid"
)

// BuyerDTO represents a buyer profile row.
type BuyerDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName specifies the database table name for buyer profiles.
func (BuyerDTO) TableName() string {
	return "buyers"
}

// SellerDTO represents a seller profile row.
type SellerDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName specifies the database table name for seller profiles.
func (SellerDTO) TableName() string {
	return "sellers"
}

// RiderDTO represents a rider profile row.
type RiderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName specifies the database table name for rider profiles.
func (RiderDTO) TableName() string {
	return "riders"
}
