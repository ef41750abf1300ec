package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/testutil"
)

func TestNewClient_ConnectionFailed(t *testing.T) {
	cfg := &RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}

	client, err := NewClient(context.Background(), cfg, testutil.NewMockLogger())
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Equal(t, "standalone", cfg.Mode)
}

func TestNewClient_UnknownModeWarns(t *testing.T) {
	log := testutil.NewMockLogger()
	cfg := &RedisConfig{Mode: "mesh", Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond}

	_, err := NewClient(context.Background(), cfg, log)
	assert.Error(t, err)
	assert.True(t, log.HasMessage("warn", "unknown redis mode, using standalone"))
}

func TestClient_Operations(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewClientFrom(db, nil)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	mock.ExpectSet("foo", "bar", 0).SetVal("OK")
	mock.ExpectGet("foo").SetVal("bar")
	mock.ExpectExists("foo").SetVal(1)
	mock.ExpectDel("foo").SetVal(1)

	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.Set(ctx, "foo", "bar", 0).Err())
	val, err := client.Get(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, "bar", val)
	n, err := client.Exists(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = client.Del(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_PingError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("down"))

	assert.Error(t, NewClientFrom(db, nil).Ping(context.Background()))
}

func TestClient_Close(t *testing.T) {
	db, _ := redismock.NewClientMock()
	client := NewClientFrom(db, nil)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close(), "second close is a no-op")

	ctx := context.Background()
	assert.Equal(t, ErrClientClosed, client.Ping(ctx))
	assert.Equal(t, ErrClientClosed, client.Get(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, client.Set(ctx, "foo", "bar", 0).Err())
	assert.Equal(t, ErrClientClosed, client.Del(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, client.Exists(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, client.Scan(ctx, 0, "*", 10).Err())
}

//Personal.AI order the ending
