package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/souvikdhua/cosmeticking/internal/domain/store"
)

// MemoryStore is an in-process document store with synchronous
// subscription fan-out. It backs tests and single-node development;
// the semantics mirror the redis store.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]store.Snapshot
	listeners   map[string]map[int]store.Listener
	nextID      int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]store.Snapshot),
		listeners:   make(map[string]map[int]store.Listener),
	}
}

type memorySubscription struct {
	once       sync.Once
	store      *MemoryStore
	collection string
	id         int
}

func (s *memorySubscription) Unsubscribe() {
	s.once.Do(func() {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
		delete(s.store.listeners[s.collection], s.id)
	})
}

// Subscribe registers fn and synchronously delivers the current snapshot.
func (m *MemoryStore) Subscribe(_ context.Context, collection string, fn store.Listener) (store.Subscription, error) {
	m.mu.Lock()
	if m.listeners[collection] == nil {
		m.listeners[collection] = make(map[int]store.Listener)
	}
	id := m.nextID
	m.nextID++
	m.listeners[collection][id] = fn
	snap := m.snapshotLocked(collection)
	m.mu.Unlock()

	fn(snap)
	return &memorySubscription{store: m, collection: collection, id: id}, nil
}

// List returns the current snapshot of the collection.
func (m *MemoryStore) List(_ context.Context, collection string) (store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(collection), nil
}

// Set upserts a full document and notifies subscribers.
func (m *MemoryStore) Set(_ context.Context, collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}

	m.mu.Lock()
	m.ensureCollectionLocked(collection)[key] = raw
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

// Merge applies the given fields onto the stored document, creating it
// when missing, and notifies subscribers.
func (m *MemoryStore) Merge(_ context.Context, collection, key string, fields map[string]any) error {
	m.mu.Lock()
	col := m.ensureCollectionLocked(collection)

	doc := make(map[string]any)
	if raw, ok := col[key]; ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("unmarshal document %s/%s: %w", collection, key, err)
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}
	col[key] = raw
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

// Delete removes a document; deleting a missing key is a no-op.
func (m *MemoryStore) Delete(_ context.Context, collection, key string) error {
	m.mu.Lock()
	delete(m.ensureCollectionLocked(collection), key)
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

// Clear drops every document in the collection.
func (m *MemoryStore) Clear(_ context.Context, collection string) error {
	m.mu.Lock()
	m.collections[collection] = make(store.Snapshot)
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *MemoryStore) ensureCollectionLocked(collection string) store.Snapshot {
	if m.collections[collection] == nil {
		m.collections[collection] = make(store.Snapshot)
	}
	return m.collections[collection]
}

func (m *MemoryStore) snapshotLocked(collection string) store.Snapshot {
	return m.collections[collection].Clone()
}

// notify delivers a fresh snapshot to every listener. Listeners run
// outside the lock so they may call back into the store.
func (m *MemoryStore) notify(collection string) {
	m.mu.Lock()
	snap := m.snapshotLocked(collection)
	fns := make([]store.Listener, 0, len(m.listeners[collection]))
	for _, fn := range m.listeners[collection] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
