// Package store defines the boundary to the external document store.
// The application depends only on this interface; concrete backends live
// under internal/infrastructure/store.
package store

import (
	"context"
	"encoding/json"
)

// Collection names used by the application.
const (
	Products  = "products"
	Inventory = "inventory"
	Orders    = "orders"
	Clipboard = "clipboard"
)

// InventoryDoc is the fixed key of the single inventory document.
// Stock levels for all products live in one map under this key so that
// partial updates can use merge semantics.
const InventoryDoc = "main"

// Snapshot is the full state of one collection, keyed by document id.
type Snapshot map[string]json.RawMessage

// Clone returns a shallow copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Listener receives the full collection state on every change.
type Listener func(Snapshot)

// Subscription is a handle to an active collection subscription.
type Subscription interface {
	// Unsubscribe stops delivery. Safe to call more than once.
	Unsubscribe()
}

// Store is the document store boundary: snapshot subscriptions plus
// write operations over named collections. Writes are fire-and-forget
// from the caller's point of view; there is no transaction spanning
// collections and no version tracking, last write wins.
type Store interface {
	// Subscribe registers fn for the collection. The current snapshot is
	// delivered immediately, then again after every change.
	Subscribe(ctx context.Context, collection string, fn Listener) (Subscription, error)

	// List returns the current snapshot of the collection.
	List(ctx context.Context, collection string) (Snapshot, error)

	// Set upserts a full document under key.
	Set(ctx context.Context, collection, key string, doc any) error

	// Merge upserts the given fields into the document under key,
	// preserving fields not named. A missing document is created.
	Merge(ctx context.Context, collection, key string, fields map[string]any) error

	// Delete removes the document under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, collection, key string) error

	// Clear removes every document in the collection.
	Clear(ctx context.Context, collection string) error
}
