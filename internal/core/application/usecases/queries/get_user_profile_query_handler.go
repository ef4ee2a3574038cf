package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserProfileQueryHandler loads the profile read model with direct SQL.
// The role profile id is resolved with one left join per profile table; only
// one of them can match because a user has exactly one role.
type GetUserProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetUserProfileQueryHandler creates a handler for profile reads.
func NewGetUserProfileQueryHandler(db *gorm.DB) GetUserProfileQueryHandler {
	return GetUserProfileQueryHandler{db: db}
}

// Handle executes the profile query. A blocked user is reported as NotFound,
// same as a missing row: soft-deleted accounts are invisible to reads.
func (h GetUserProfileQueryHandler) Handle(
	ctx context.Context,
	query GetUserProfileQuery,
) (GetUserProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserProfileQueryResponse{}, err
	}

	var response GetUserProfileQueryResponse
	var id uuid.UUID
	var profileID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.email,
			u.role,
			u.approval_state,
			u.operational_state,
			COALESCE(b.id, s.id, r.id) AS profile_id
		FROM users u
		LEFT JOIN buyers  b ON b.user_id = u.id
		LEFT JOIN sellers s ON s.user_id = u.id
		LEFT JOIN riders  r ON r.user_id = u.id
		WHERE u.id = ? AND u.operational_state <> 'Blocked'
	`, query.UserID().Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Name,
		&response.Email,
		&response.Role,
		&response.ApprovalState,
		&response.OperationalState,
		&profileID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetUserProfileQueryResponse{}, errs.NewObjectNotFoundError("userId", query.UserID().String())
	}
	if err != nil {
		return GetUserProfileQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetUserProfileQueryResponse{}, err
	}
	if profileID.Valid {
		pid, pidErr := kernel.UUIDFromBytes(profileID.UUID[:])
		if pidErr != nil {
			return GetUserProfileQueryResponse{}, pidErr
		}
		response.ProfileID = &pid
	}

	if response.Addresses, err = h.loadAddresses(ctx, query.UserID()); err != nil {
		return GetUserProfileQueryResponse{}, err
	}

	return response, nil
}

func (h GetUserProfileQueryHandler) loadAddresses(ctx context.Context, userID kernel.UUID) ([]AddressResponse, error) {
	addresses := make([]AddressResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			line,
			city,
			province,
			postal_code,
			phone,
			is_primary
		FROM addresses
		WHERE user_id = ?
		ORDER BY is_primary DESC, created_at
	`, userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var addr AddressResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&addr.Line,
			&addr.City,
			&addr.Province,
			&addr.PostalCode,
			&addr.Phone,
			&addr.IsPrimary,
		); err != nil {
			return nil, err
		}

		if addr.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
