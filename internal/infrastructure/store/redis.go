// Package store provides document store backends for the storefront:
// a redis-backed store for deployments and an in-memory store for
// tests and single-node development.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	"go.uber.org/zap"
)

var (
	_ store.Store = (*MemoryStore)(nil)
	_ store.Store = (*RedisStore)(nil)
)

// RedisConfig holds redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore implements the document store on redis. Each collection is
// one hash (field = document key, value = JSON document); a pub/sub
// channel per collection fans out change notifications, and subscribers
// re-read the hash to deliver full snapshots. Merge is a plain
// read-modify-write: the store offers no atomicity across documents and
// last write wins, which is the consistency model the application is
// written against.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// RedisStoreOption is a functional option for configuring RedisStore.
type RedisStoreOption func(*RedisStore)

// WithStoreLogger sets a custom logger for RedisStore.
func WithStoreLogger(logger *zap.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		s.logger = logger
	}
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg RedisConfig, opts ...RedisStoreOption) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, opts...), nil
}

// NewRedisStoreWithClient wraps an existing client. Useful for tests or
// when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "ck:",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) hashKey(collection string) string {
	return s.keyPrefix + "col:" + collection
}

func (s *RedisStore) channel(collection string) string {
	return s.keyPrefix + "changed:" + collection
}

type redisSubscription struct {
	once   sync.Once
	cancel context.CancelFunc
	pubsub *redis.PubSub
}

func (r *redisSubscription) Unsubscribe() {
	r.once.Do(func() {
		r.cancel()
		_ = r.pubsub.Close()
	})
}

// Subscribe delivers the current snapshot immediately, then re-reads
// and re-delivers the collection after every published change.
func (s *RedisStore) Subscribe(ctx context.Context, collection string, fn store.Listener) (store.Subscription, error) {
	snap, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(context.Background())
	pubsub := s.client.Subscribe(subCtx, s.channel(collection))
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", collection, err)
	}

	fn(snap)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				snap, err := s.List(subCtx, collection)
				if err != nil {
					s.logger.Warn("failed to load collection snapshot",
						zap.String("collection", collection),
						zap.Error(err),
					)
					continue
				}
				fn(snap)
			}
		}
	}()

	return &redisSubscription{cancel: cancel, pubsub: pubsub}, nil
}

// List returns the full collection as a snapshot.
func (s *RedisStore) List(ctx context.Context, collection string) (store.Snapshot, error) {
	docs, err := s.client.HGetAll(ctx, s.hashKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	snap := make(store.Snapshot, len(docs))
	for key, raw := range docs {
		snap[key] = json.RawMessage(raw)
	}
	return snap, nil
}

// Set upserts a full document and publishes a change notification.
func (s *RedisStore) Set(ctx context.Context, collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}
	if err := s.client.HSet(ctx, s.hashKey(collection), key, raw).Err(); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, key, err)
	}
	s.publish(ctx, collection)
	return nil
}

// Merge reads the stored document, applies the fields, and writes it
// back. A missing document is created from the fields alone.
func (s *RedisStore) Merge(ctx context.Context, collection, key string, fields map[string]any) error {
	doc := make(map[string]any)
	raw, err := s.client.HGet(ctx, s.hashKey(collection), key).Result()
	switch {
	case err == redis.Nil:
		// New document.
	case err != nil:
		return fmt.Errorf("failed to read %s/%s: %w", collection, key, err)
	default:
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fmt.Errorf("unmarshal document %s/%s: %w", collection, key, err)
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}
	if err := s.client.HSet(ctx, s.hashKey(collection), key, merged).Err(); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, key, err)
	}
	s.publish(ctx, collection)
	return nil
}

// Delete removes a document; missing keys are a no-op.
func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.HDel(ctx, s.hashKey(collection), key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, key, err)
	}
	s.publish(ctx, collection)
	return nil
}

// Clear drops the whole collection.
func (s *RedisStore) Clear(ctx context.Context, collection string) error {
	if err := s.client.Del(ctx, s.hashKey(collection)).Err(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return nil
}

func (s *RedisStore) publish(ctx context.Context, collection string) {
	if err := s.client.Publish(ctx, s.channel(collection), "changed").Err(); err != nil {
		// Subscribers miss this push but correct on the next one; the
		// write itself already succeeded.
		s.logger.Warn("failed to publish change notification",
			zap.String("collection", collection),
			zap.Error(err),
		)
	}
}
