// Package userrepo provides data transfer objects and mapping functions for
// user persistence, including the refresh token rows revoked on soft delete.
package userrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
// Email carries a unique index; a duplicate insert surfaces as Conflict.
type UserDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	Email            string `gorm:"uniqueIndex"`
	Role             string `gorm:"index"`
	ApprovalState    string
	OperationalState string `gorm:"index"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// RefreshTokenDTO represents a stored refresh token. Tokens are issued by the
// auth layer and bulk-revoked here when the owning user is blocked.
type RefreshTokenDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Token     string    `gorm:"uniqueIndex"`
	ExpiresAt time.Time
}

// TableName specifies the database table name for refresh tokens.
func (RefreshTokenDTO) TableName() string {
	return "refresh_tokens"
}

// fromDomain converts a user domain aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:               aggregate.ID().Bytes(),
		Name:             aggregate.Name(),
		Email:            aggregate.Email(),
		Role:             aggregate.Role().String(),
		ApprovalState:    aggregate.ApprovalState().String(),
		OperationalState: aggregate.OperationalState().String(),
	}
}

// toDomain converts a database DTO to a user domain aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	approval, err := kernel.ApprovalStateFromString(dto.ApprovalState)
	if err != nil {
		return nil, err
	}

	operational, err := kernel.OperationalStateFromString(dto.OperationalState)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, role, approval, operational)
}
