package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// ValidStatus reports whether s is one of the five order statuses.
// There is deliberately no ordering between statuses: an admin may move an
// order from any status to any other, including backwards.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer's purchase of a single product.
// Total is the product price multiplied by the quantity as of the last write.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`

	// Populated by joined reads, omitted otherwise
	User    *UserSummary `json:"user,omitempty"`
	Product *Product     `json:"product,omitempty"`
}

// PlaceOrderRequest is used by a customer to place an order
type PlaceOrderRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderRequest updates quantity (owner, while pending) and/or
// status (admin only) of an existing order
type UpdateOrderRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Status   *string `json:"status,omitempty"`
}
