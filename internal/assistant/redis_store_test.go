package assistant

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_RoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStore(client, testLogger(), time.Hour)
	ctx := context.Background()

	conv := &Conversation{
		SessionID: "s1",
		History:   []Message{{Role: RoleAssistant, Text: "hello"}},
		Facts: Facts{
			BarberName: "John Smith",
			BarberID:   int64Ptr(1),
			Date:       "2025-07-04",
		},
		Stage: StageNeedTime,
	}

	require.NoError(t, store.Set(ctx, "s1", conv))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, conv.History, got.History)
	assert.Equal(t, conv.Facts, got.Facts)
	assert.Equal(t, StageNeedTime, got.Stage)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestRedisStore_MissingSession(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStore(client, testLogger(), time.Hour)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStore(client, testLogger(), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s2", &Conversation{SessionID: "s2"}))
	require.NoError(t, store.Clear(ctx, "s2"))

	_, err := store.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_TTLEviction(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, testLogger(), time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s3", &Conversation{SessionID: "s3"}))
	assert.True(t, mr.Exists("session:state:s3"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "s3")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_DefaultTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, testLogger(), 0)

	require.NoError(t, store.Set(context.Background(), "s4", &Conversation{SessionID: "s4"}))
	assert.Equal(t, time.Hour, mr.TTL("session:state:s4"))
}
