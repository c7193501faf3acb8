package storage

import (
	"context"
	"encoding/json"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// Namespace keys. Every persisted record lives under one of these.
const (
	keyAuthToken   = "auth_token"
	keyUserData    = "user_data"
	keyFarmData    = "farm_data"
	keyOfflineData = "offline_data"
	keySettings    = "settings"
	keyCache       = "cache"
)

// SetAuthToken persists the bearer token.
func (s *Store) SetAuthToken(ctx context.Context, token string) error {
	return s.Set(ctx, keyAuthToken, token)
}

// AuthToken returns the persisted bearer token, if any.
func (s *Store) AuthToken(ctx context.Context) (string, bool) {
	return Get[string](ctx, s, keyAuthToken)
}

// RemoveAuthToken deletes the persisted bearer token.
func (s *Store) RemoveAuthToken(ctx context.Context) error {
	return s.Remove(ctx, keyAuthToken)
}

// SetUser persists the current user record.
func (s *Store) SetUser(ctx context.Context, user *domain.User) error {
	return s.Set(ctx, keyUserData, user)
}

// User returns the persisted user record, if any.
func (s *Store) User(ctx context.Context) (*domain.User, bool) {
	user, ok := Get[*domain.User](ctx, s, keyUserData)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// RemoveUser deletes the persisted user record.
func (s *Store) RemoveUser(ctx context.Context) error {
	return s.Remove(ctx, keyUserData)
}

// SetFarm persists the active farm summary.
func (s *Store) SetFarm(ctx context.Context, farm *domain.Farm) error {
	return s.Set(ctx, keyFarmData, farm)
}

// Farm returns the persisted farm summary, if any.
func (s *Store) Farm(ctx context.Context) (*domain.Farm, bool) {
	farm, ok := Get[*domain.Farm](ctx, s, keyFarmData)
	if !ok || farm == nil {
		return nil, false
	}
	return farm, true
}

// RemoveFarm deletes the persisted farm summary.
func (s *Store) RemoveFarm(ctx context.Context) error {
	return s.Remove(ctx, keyFarmData)
}

// SetSettings persists the user preferences mapping.
func (s *Store) SetSettings(ctx context.Context, settings map[string]any) error {
	return s.Set(ctx, keySettings, settings)
}

// Settings returns the persisted preferences mapping, if any.
func (s *Store) Settings(ctx context.Context) (map[string]any, bool) {
	return Get[map[string]any](ctx, s, keySettings)
}

// SetOfflineData merges partial into the stored offline-data mapping. Unlike
// every other record, offline data accumulates: keys in partial overwrite
// matching keys, everything else is retained.
func (s *Store) SetOfflineData(ctx context.Context, partial map[string]json.RawMessage) error {
	existing, ok := Get[map[string]json.RawMessage](ctx, s, keyOfflineData)
	if !ok || existing == nil {
		existing = make(map[string]json.RawMessage, len(partial))
	}
	for k, v := range partial {
		existing[k] = v
	}
	return s.Set(ctx, keyOfflineData, existing)
}

// OfflineData returns the accumulated offline-data mapping, if any.
func (s *Store) OfflineData(ctx context.Context) (map[string]json.RawMessage, bool) {
	return Get[map[string]json.RawMessage](ctx, s, keyOfflineData)
}

// RemoveOfflineData deletes the accumulated offline data.
func (s *Store) RemoveOfflineData(ctx context.Context) error {
	return s.Remove(ctx, keyOfflineData)
}
