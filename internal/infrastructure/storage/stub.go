package storage

import (
	"context"
	"sync"

	"github.com/souvikdhua/cosmeticking/internal/application/media"
)

// Ensure StubStorage implements ObjectStorage
var _ media.ObjectStorage = (*StubStorage)(nil)

// StubStorage is an in-memory ObjectStorage for tests and for running
// without a configured media backend. Uploads are recorded and the
// returned URLs are deterministic.
type StubStorage struct {
	mu      sync.Mutex
	BaseURL string
	objects map[string][]byte
}

// NewStubStorage creates an empty stub storage.
func NewStubStorage() *StubStorage {
	return &StubStorage{
		BaseURL: "https://storage.invalid",
		objects: make(map[string][]byte),
	}
}

// Upload records the object and returns a deterministic URL.
func (s *StubStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return s.BaseURL + "/" + key, nil
}

// Object returns a stored object and whether it exists.
func (s *StubStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored objects.
func (s *StubStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
