// Package export delivers checkout receipts to the outside world. The
// storefront hands each receipt over for external paste into a
// messaging channel; here that handoff is a write to a fixed document
// an external collector can watch.
package export

import (
	"context"
	"time"

	"github.com/souvikdhua/cosmeticking/internal/application/checkout"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
)

// Ensure StoreClipboard implements Copier
var _ checkout.Copier = (*StoreClipboard)(nil)

// ClipboardKey is the document key the latest receipt is written under.
const ClipboardKey = "latest"

// StoreClipboard copies receipt text into the document store. A failed
// copy is reported to the caller but never fails the order itself.
type StoreClipboard struct {
	store store.Store
	now   func() time.Time
}

// NewStoreClipboard creates a clipboard backed by the given store.
func NewStoreClipboard(s store.Store) *StoreClipboard {
	return &StoreClipboard{store: s, now: time.Now}
}

// Copy makes the text available for external paste.
func (c *StoreClipboard) Copy(ctx context.Context, text string) error {
	return c.store.Set(ctx, store.Clipboard, ClipboardKey, map[string]any{
		"text":      text,
		"copied_at": c.now().UnixMilli(),
	})
}
