package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetStoreProductsQueryIsNotConstructed = errors.New(
	"GetStoreProductsQuery must be created via NewGetStoreProductsQuery constructor",
)

// GetStoreProductsQuery retrieves the visible products of a store.
type GetStoreProductsQuery struct {
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStoreProductsQuery creates a validated store products query.
func NewGetStoreProductsQuery(storeID kernel.UUID) (GetStoreProductsQuery, error) {
	if err := storeID.Validate(); err != nil {
		return GetStoreProductsQuery{}, err
	}

	return GetStoreProductsQuery{storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStoreProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreProductsQueryIsNotConstructed)
}

// StoreID returns the store to list.
func (q GetStoreProductsQuery) StoreID() kernel.UUID {
	return q.storeID
}

// GetStoreProductsQueryResponse is one product in the store listing read model.
type GetStoreProductsQueryResponse struct {
	ID               kernel.UUID
	Title            string
	PriceCents       int64
	Stock            int
	OperationalState string
}
