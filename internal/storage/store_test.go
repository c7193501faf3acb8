package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Set(ctx, "greeting", "hello"))
	got, ok := Get[string](ctx, s, "greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	// Overwrite replaces, not appends.
	require.NoError(t, s.Set(ctx, "greeting", "goodbye"))
	got, ok = Get[string](ctx, s, "greeting")
	require.True(t, ok)
	assert.Equal(t, "goodbye", got)
}

func TestGetAbsentKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok := Get[string](ctx, s, "never-written")
	assert.False(t, ok)
}

func TestGetCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.ExecContext(ctx, `INSERT INTO records (key, value) VALUES (?, ?)`, "user_data", "{not json")
	require.NoError(t, err)

	// Corrupt reads behave exactly like absent keys.
	_, ok := s.User(ctx)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetAuthToken(ctx, "tok"))
	require.NoError(t, s.RemoveAuthToken(ctx))
	_, ok := s.AuthToken(ctx)
	assert.False(t, ok)

	// Removing again is a no-op, not an error.
	require.NoError(t, s.RemoveAuthToken(ctx))
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	in := &domain.User{ID: "u1", Email: "a@b.example", Name: "Asha", Role: domain.RoleVeterinarian}
	require.NoError(t, s.SetUser(ctx, in))

	out, ok := s.User(ctx)
	require.True(t, ok)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Role, out.Role)
}

func TestOfflineDataMerges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetOfflineData(ctx, map[string]json.RawMessage{
		"pending_orders": json.RawMessage(`[1,2]`),
		"draft_farm":     json.RawMessage(`{"name":"old"}`),
	}))
	require.NoError(t, s.SetOfflineData(ctx, map[string]json.RawMessage{
		"draft_farm": json.RawMessage(`{"name":"new"}`),
	}))

	data, ok := s.OfflineData(ctx)
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(data["pending_orders"]))
	assert.JSONEq(t, `{"name":"new"}`, string(data["draft_farm"]))
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetCacheData(ctx, "market_prices", []string{"a", "b"}, time.Time{}))
	raw, ok := s.GetCacheData(ctx, "market_prices")
	require.True(t, ok)
	assert.JSONEq(t, `["a","b"]`, string(raw))

	require.NoError(t, s.RemoveCacheData(ctx, "market_prices"))
	_, ok = s.GetCacheData(ctx, "market_prices")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	require.NoError(t, s.SetCacheData(ctx, "analytics", map[string]int{"eggs": 120}, time.Time{}))

	// Still live just under the default TTL.
	s.now = func() time.Time { return base.Add(defaultCacheTTL - time.Minute) }
	_, ok := s.GetCacheData(ctx, "analytics")
	assert.True(t, ok)

	// Expired entries are pruned on read.
	s.now = func() time.Time { return base.Add(defaultCacheTTL + time.Minute) }
	_, ok = s.GetCacheData(ctx, "analytics")
	assert.False(t, ok)

	// The prune is persisted: rolling the clock back does not resurrect it.
	s.now = func() time.Time { return base }
	_, ok = s.GetCacheData(ctx, "analytics")
	assert.False(t, ok)
}

func TestClearExpiredCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	require.NoError(t, s.SetCacheData(ctx, "short", 1, base.Add(time.Minute)))
	require.NoError(t, s.SetCacheData(ctx, "long", 2, base.Add(time.Hour)))

	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	require.NoError(t, s.ClearExpiredCache(ctx))

	_, ok := s.GetCacheData(ctx, "short")
	assert.False(t, ok)
	_, ok = s.GetCacheData(ctx, "long")
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetAuthToken(ctx, "tok"))
	require.NoError(t, s.SetSettings(ctx, map[string]any{"theme": "dark"}))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.AuthToken(ctx)
	assert.False(t, ok)
	_, ok = s.Settings(ctx)
	assert.False(t, ok)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetAuthToken(ctx, "tok"))
	require.NoError(t, s.SetFarm(ctx, &domain.Farm{ID: "f1", Name: "Sunrise"}))

	dump, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, dump, 2)

	dst := newTestStore(t)
	require.NoError(t, dst.Import(ctx, dump))

	tok, ok := dst.AuthToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", tok)
	farm, ok := dst.Farm(ctx)
	require.True(t, ok)
	assert.Equal(t, "Sunrise", farm.Name)

	size, err := dst.Size(ctx)
	require.NoError(t, err)
	assert.Positive(t, size)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "app.db")
	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", 1))
	got, ok := Get[int](context.Background(), s, "k")
	require.True(t, ok)
	assert.Equal(t, 1, got)
}
