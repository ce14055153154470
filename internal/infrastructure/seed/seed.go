// Package seed populates an empty store with the starter catalog so a
// fresh deployment has something on the shelf.
package seed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	"go.uber.org/zap"
)

// InitialCatalog returns the starter products. Seed ids are small fixed
// numbers; only products created at runtime carry timestamp ids.
func InitialCatalog() []catalog.Product {
	p := func(id int64, name, size, category, brand, desc string, price, mrp int64, off int) catalog.Product {
		return catalog.Product{
			ID:       id,
			Name:     name,
			Size:     size,
			Price:    decimal.NewFromInt(price),
			Category: category,
			Brand:    brand,
			Desc:     desc,
			MRP:      decimal.NewFromInt(mrp),
			Off:      off,
		}
	}
	return []catalog.Product{
		p(1, "Argan Oil Shampoo", "340ml", "Hair Care", "Herbal Glo", "Sulphate-free shampoo with cold-pressed argan oil.", 280, 350, 20),
		p(2, "Keratin Smooth Conditioner", "180ml", "Hair Care", "Herbal Glo", "Daily conditioner for frizzy hair.", 199, 249, 20),
		p(3, "Vitamin C Face Serum", "30ml", "Skin Care", "GlowLab", "Brightening serum with 10% vitamin C.", 425, 500, 15),
		p(4, "Hydrating Night Cream", "50g", "Skin Care", "GlowLab", "Ceramide night repair cream.", 360, 450, 20),
		p(5, "Matte Liquid Lipstick", "5ml", "Makeup", "VelvetHue", "Transfer-proof matte finish.", 249, 299, 17),
		p(6, "Volumizing Mascara", "10ml", "Makeup", "VelvetHue", "Smudge-proof lengthening mascara.", 315, 350, 10),
		p(7, "Rose Water Toner", "200ml", "Skin Care", "Petal Pure", "Steam-distilled rose water.", 149, 165, 10),
		p(8, "Beard Growth Oil", "30ml", "Men's Grooming", "UrbanMane", "Lightweight oil with redensyl.", 399, 499, 20),
	}
}

// Run seeds the catalog and a default inventory level for every seeded
// product, but only when the products collection is empty.
func Run(ctx context.Context, st store.Store, logger *zap.Logger) error {
	snap, err := st.List(ctx, store.Products)
	if err != nil {
		return fmt.Errorf("failed to check for existing catalog: %w", err)
	}
	if len(snap) > 0 {
		return nil
	}

	logger.Info("empty catalog, seeding starter products")

	products := InitialCatalog()
	stock := make(map[string]any, len(products))
	for i := range products {
		p := &products[i]
		if err := st.Set(ctx, store.Products, p.Key(), p); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
		stock[strconv.FormatInt(p.ID, 10)] = catalog.DefaultStock
	}
	if err := st.Merge(ctx, store.Inventory, store.InventoryDoc, stock); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	logger.Info("seeding complete", zap.Int("products", len(products)))
	return nil
}
