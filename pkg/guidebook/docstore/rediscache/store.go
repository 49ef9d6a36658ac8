// Package rediscache decorates a docstore.Store with a read-through Redis
// cache on GetByID. The content library is read by many editors at once and
// individual documents change rarely, so point reads dominate; queries pass
// through uncached.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// DefaultTTL bounds staleness for entries written by other processes.
const DefaultTTL = 5 * time.Minute

// Store wraps an inner docstore.Store with Redis caching. Cache failures
// degrade to the inner store; they never fail the operation.
type Store struct {
	inner  docstore.Store
	client *redis.Client
	ttl    time.Duration
}

// New creates a caching store around inner.
func New(inner docstore.Store, client *redis.Client) *Store {
	return &Store{inner: inner, client: client, ttl: DefaultTTL}
}

// NewWithTTL creates a caching store with a custom entry TTL.
func NewWithTTL(inner docstore.Store, client *redis.Client, ttl time.Duration) *Store {
	return &Store{inner: inner, client: client, ttl: ttl}
}

func cacheKey(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s", collection, id)
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	key := cacheKey(collection, id)
	if raw, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var doc docstore.Document
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc, nil
		}
		// Corrupt entry; drop it and fall through to the inner store.
		s.client.Del(ctx, key)
	}

	doc, err := s.inner.GetByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(doc); err == nil {
		s.client.Set(ctx, key, raw, s.ttl)
	}
	return doc, nil
}

func (s *Store) Query(ctx context.Context, collection string, where ...docstore.Where) ([]docstore.Document, error) {
	return s.inner.Query(ctx, collection, where...)
}

func (s *Store) Create(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	return s.inner.Create(ctx, collection, doc)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if err := s.inner.Update(ctx, collection, id, fields); err != nil {
		return err
	}
	s.client.Del(ctx, cacheKey(collection, id))
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.inner.Delete(ctx, collection, id); err != nil {
		return err
	}
	s.client.Del(ctx, cacheKey(collection, id))
	return nil
}
