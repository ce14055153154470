package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewProduct_Defaults(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	p, err := NewProduct(now, "Argan Oil Shampoo", decimal.NewFromInt(200), "", "", "", "", 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1700000000000), p.ID)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, DefaultBrand, p.Brand)
	assert.Equal(t, DefaultSize, p.Size)
	assert.Equal(t, DefaultDesc, p.Desc)
	assert.Nil(t, p.Image)
	// floor(200 * 1.10) = 220
	assert.True(t, p.MRP.Equal(decimal.NewFromInt(220)), "mrp = %s", p.MRP)
}

func TestNewProduct_EmptyName(t *testing.T) {
	_, err := NewProduct(time.Now(), "  ", decimal.NewFromInt(100), "", "", "", "", 0)
	assert.Error(t, err)
}

func TestBackComputeMRP_WithDiscount(t *testing.T) {
	// floor(150 * (1 + (20+10)/100)) = floor(195) = 195
	mrp := BackComputeMRP(decimal.NewFromInt(150), 20)
	assert.True(t, mrp.Equal(decimal.NewFromInt(195)), "mrp = %s", mrp)
}

func TestApplyDiscount_RecomputesPrice(t *testing.T) {
	p := &Product{MRP: decimal.NewFromInt(220), Price: decimal.NewFromInt(200)}
	p.ApplyDiscount(25)

	assert.Equal(t, 25, p.Off)
	// floor(220 * 0.75) = 165
	assert.True(t, p.Price.Equal(decimal.NewFromInt(165)), "price = %s", p.Price)
	assert.True(t, p.MRP.Equal(decimal.NewFromInt(220)))
	assert.True(t, p.Price.LessThanOrEqual(p.MRP))
}

func TestApplyDiscount_OutOfRangePassesThrough(t *testing.T) {
	// The discount is not range-checked; >100 goes negative and <0 inflates.
	p := &Product{MRP: decimal.NewFromInt(100)}
	p.ApplyDiscount(150)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(-50)), "price = %s", p.Price)

	p.ApplyDiscount(-10)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(110)), "price = %s", p.Price)
}

func TestMatches_TermAndCategory(t *testing.T) {
	p := &Product{Name: "Hydrating Serum", Brand: "GlowLab", Category: "Skin Care"}

	assert.True(t, p.Matches("ser", CategoryAll))
	assert.True(t, p.Matches("SER", "Skin Care"))
	assert.True(t, p.Matches("glowlab", CategoryAll))
	assert.True(t, p.Matches("", "Skin Care"))
	assert.False(t, p.Matches("ser", "Hair Care"))
	assert.False(t, p.Matches("conditioner", CategoryAll))
}
