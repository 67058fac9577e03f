// internal/common/database/redis_test.go
package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"infraiq-workers/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestIncrWindow_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	for want := int64(1); want <= 3; want++ {
		got, err := client.IncrWindow(ctx, "ratelimit:test", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	ttl, err := client.TTL(ctx, "ratelimit:test")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)

	got, err := client.IncrWindow(ctx, "ratelimit:test", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestIncrWindow_Mock(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := WrapRedis(db)
	ctx := context.Background()

	mock.ExpectIncr("k").SetVal(1)
	mock.ExpectExpire("k", 30*time.Second).SetVal(true)
	count, err := client.IncrWindow(ctx, "k", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Existing keys keep their original expiry.
	mock.ExpectIncr("k").SetVal(2)
	count, err = client.IncrWindow(ctx, "k", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrWindow_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := WrapRedis(db)
	ctx := context.Background()

	mock.ExpectIncr("k").SetErr(errors.New("connection refused"))
	_, err := client.IncrWindow(ctx, "k", time.Second)
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectIncr("k").SetVal(1)
	mock.ExpectExpire("k", time.Second).SetErr(redis.ErrClosed)
	count, err := client.IncrWindow(ctx, "k", time.Second)
	assert.Error(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
