package catalog

import "github.com/shopspring/decimal"

// CreateProductRequest carries the admin product creation form. Only
// name and price are required; everything else falls back to the
// storefront defaults.
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Size     string          `json:"size"`
	Desc     string          `json:"desc"`
	Stock    *int            `json:"stock"`
	Off      int             `json:"off"`
}

// UpdateProductRequest carries a partial product edit; nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Brand    *string `json:"brand"`
	Size     *string `json:"size"`
	Category *string `json:"category"`
	Desc     *string `json:"desc"`
}

// SetDiscountRequest carries the discount percentage. Deliberately
// unbounded: out-of-range values are a documented pass-through.
type SetDiscountRequest struct {
	Off *int `json:"off" binding:"required"`
}
