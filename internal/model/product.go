package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url,omitempty"` // Pointer for optional field
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateProductRequest is used for creating a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Stock       *int             `json:"stock" binding:"required"`
	ImageURL    *string          `json:"image_url"`
}

// UpdateProductRequest applies only the fields present in the request
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"` // Pointers to allow partial updates
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}
