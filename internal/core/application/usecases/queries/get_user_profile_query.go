// Package queries contains the read side: raw SQL read models that bypass
// the aggregates and repositories entirely.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetUserProfileQueryIsNotConstructed = errors.New(
	"GetUserProfileQuery must be created via NewGetUserProfileQuery constructor",
)

// GetUserProfileQuery retrieves a user's account data together with its
// role profile and delivery addresses.
type GetUserProfileQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserProfileQuery creates a validated profile query.
func NewGetUserProfileQuery(userID kernel.UUID) (GetUserProfileQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserProfileQuery{}, err
	}

	return GetUserProfileQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetUserProfileQueryIsNotConstructed)
}

// UserID returns the user to load.
func (q GetUserProfileQuery) UserID() kernel.UUID {
	return q.userID
}

// GetUserProfileQueryResponse is the profile read model.
type GetUserProfileQueryResponse struct {
	ID               kernel.UUID
	Name             string
	Email            string
	Role             string
	ApprovalState    string
	OperationalState string
	ProfileID        *kernel.UUID
	Addresses        []AddressResponse
}

// AddressResponse is one delivery address in the profile read model.
type AddressResponse struct {
	ID         kernel.UUID
	Line       string
	City       string
	Province   string
	PostalCode string
	Phone      string
	IsPrimary  bool
}
