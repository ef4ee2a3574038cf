package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStoreProductsQueryHandler lists a store's products with direct SQL.
// Blocked products are filtered out: the cascade makes a blocked subtree
// disappear from reads without deleting rows.
type GetStoreProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetStoreProductsQueryHandler creates a handler for store listings.
func NewGetStoreProductsQueryHandler(db *gorm.DB) GetStoreProductsQueryHandler {
	return GetStoreProductsQueryHandler{db: db}
}

// Handle executes the listing query sorted by title.
func (h GetStoreProductsQueryHandler) Handle(
	ctx context.Context,
	query GetStoreProductsQuery,
) ([]GetStoreProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetStoreProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			price_cents,
			stock,
			operational_state
		FROM products
		WHERE store_id = ? AND operational_state <> 'Blocked'
		ORDER BY title
	`, query.StoreID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetStoreProductsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&item.Title,
			&item.PriceCents,
			&item.Stock,
			&item.OperationalState,
		); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		products = append(products, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
