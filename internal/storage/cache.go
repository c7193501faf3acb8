package storage

import (
	"context"
	"encoding/json"
	"time"
)

// defaultCacheTTL applies when a cache write names no expiry.
const defaultCacheTTL = 24 * time.Hour

// cacheEntry is one value inside the persisted cache mapping.
type cacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	ExpiresAt time.Time       `json:"expiry_time"`
}

// cacheMap loads the whole cache mapping, or an empty one.
func (s *Store) cacheMap(ctx context.Context) map[string]cacheEntry {
	cache, ok := Get[map[string]cacheEntry](ctx, s, keyCache)
	if !ok || cache == nil {
		return make(map[string]cacheEntry)
	}
	return cache
}

// SetCacheData stores data under a cache key with the given expiry. A zero
// expiresAt defaults to 24 hours from now. The cache mapping is persisted as
// a single record, so each write rewrites the whole mapping.
func (s *Store) SetCacheData(ctx context.Context, key string, data any, expiresAt time.Time) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	now := s.now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(defaultCacheTTL)
	}

	cache := s.cacheMap(ctx)
	cache[key] = cacheEntry{Data: raw, Timestamp: now, ExpiresAt: expiresAt}
	return s.Set(ctx, keyCache, cache)
}

// GetCacheData returns the cached value under key. An entry past its expiry
// is pruned from the persisted mapping and reported as absent.
func (s *Store) GetCacheData(ctx context.Context, key string) (json.RawMessage, bool) {
	cache := s.cacheMap(ctx)
	entry, ok := cache[key]
	if !ok {
		return nil, false
	}
	if s.now().After(entry.ExpiresAt) {
		delete(cache, key)
		if err := s.Set(ctx, keyCache, cache); err != nil {
			s.log.Warn().Err(err).Str("cache_key", key).Msg("failed to prune expired cache entry")
		}
		return nil, false
	}
	return entry.Data, true
}

// RemoveCacheData deletes one cache entry.
func (s *Store) RemoveCacheData(ctx context.Context, key string) error {
	cache := s.cacheMap(ctx)
	delete(cache, key)
	return s.Set(ctx, keyCache, cache)
}

// ClearExpiredCache sweeps the whole mapping, retaining only entries that
// are still live at the time of the call.
func (s *Store) ClearExpiredCache(ctx context.Context) error {
	cache := s.cacheMap(ctx)
	now := s.now()

	valid := make(map[string]cacheEntry, len(cache))
	for key, entry := range cache {
		if entry.ExpiresAt.After(now) {
			valid[key] = entry
		}
	}
	return s.Set(ctx, keyCache, valid)
}
