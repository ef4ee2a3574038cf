// Package orderrepo provides data transfer objects and bulk soft-delete
// operations for the archival buyer records: orders with their items, return
// requests, and product reviews. These rows are written by the order-taking
// flow outside this service; here they are only blocked in bulk when the
// owning buyer is soft-deleted, preserving historical record.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
)

// OrderDTO represents an order row.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID          uuid.UUID `gorm:"type:uuid;index"`
	TotalCents       int64
	OperationalState string `gorm:"index"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one purchased line within an order.
type OrderItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID  uuid.UUID `gorm:"type:uuid"`
	Quantity   int
	PriceCents int64
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// ReturnRequestDTO represents a return request row.
type ReturnRequestDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	BuyerID          uuid.UUID `gorm:"type:uuid;index"`
	Reason           string
	OperationalState string `gorm:"index"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for return requests.
func (ReturnRequestDTO) TableName() string {
	return "return_requests"
}

// ReviewDTO represents a product review row.
type ReviewDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID          uuid.UUID `gorm:"type:uuid;index"`
	ProductID        uuid.UUID `gorm:"type:uuid;index"`
	Rating           int
	Body             string
	OperationalState string `gorm:"index"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for reviews.
func (ReviewDTO) TableName() string {
	return "reviews"
}
