package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
)

// Defaults applied when a product is created without the optional fields.
const (
	DefaultCategory = "Hair Care"
	DefaultBrand    = "Generic"
	DefaultSize     = "Standard"
	DefaultDesc     = "New Product"
	DefaultStock    = 50
)

// CategoryAll is the synthetic category that matches every product.
const CategoryAll = "All"

// Product represents one item in the storefront catalog.
// The id is the creation time in Unix milliseconds and doubles as the
// document key in the products collection.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Desc     string          `json:"desc"`
	MRP      decimal.Decimal `json:"mrp"`
	Off      int             `json:"off"`
	Image    *string         `json:"image"`
}

// NewProduct creates a product with the given sale price and discount.
// Empty optional fields fall back to the storefront defaults. The list
// price is back-computed from the sale price with a fixed 10-point
// margin on top of the discount; the constant is part of the contract.
func NewProduct(now time.Time, name string, price decimal.Decimal, category, brand, size, desc string, off int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if category == "" {
		category = DefaultCategory
	}
	if brand == "" {
		brand = DefaultBrand
	}
	if size == "" {
		size = DefaultSize
	}
	if desc == "" {
		desc = DefaultDesc
	}

	return &Product{
		ID:       now.UnixMilli(),
		Name:     name,
		Size:     size,
		Price:    price,
		Category: category,
		Brand:    brand,
		Desc:     desc,
		MRP:      BackComputeMRP(price, off),
		Off:      off,
		Image:    nil,
	}, nil
}

// Key returns the document key for this product.
func (p *Product) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

// ApplyDiscount sets the discount percentage and recomputes the sale
// price from the stored list price. The list price stays untouched.
// The percentage is deliberately not range-checked: out-of-range values
// pass through and produce negative or inflated prices, matching the
// storefront's admin workflow.
func (p *Product) ApplyDiscount(off int) {
	p.Off = off
	p.Price = SalePrice(p.MRP, off)
}

// SetImage attaches the public image URL.
func (p *Product) SetImage(url string) {
	p.Image = &url
}

// Matches reports whether the product belongs to the filtered catalog
// view for the given free-text term and category. The term matches
// case-insensitively against name or brand; CategoryAll matches any
// category.
func (p *Product) Matches(term, category string) bool {
	if category != CategoryAll && p.Category != category {
		return false
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Brand), t)
}

// SalePrice derives the sale price from a list price and a discount
// percentage: floor(mrp * (1 - off/100)).
func SalePrice(mrp decimal.Decimal, off int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(off)).Div(decimal.NewFromInt(100)))
	return mrp.Mul(factor).Floor()
}

// BackComputeMRP approximates a list price for a newly created product
// from its sale price: floor(price * (1 + (off+10)/100)). The extra 10
// points are a fixed margin assumption carried over unchanged.
func BackComputeMRP(price decimal.Decimal, off int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(off) + 10).Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Floor()
}
