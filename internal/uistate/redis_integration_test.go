//go:build integration

package uistate

import (
	"context"
	"testing"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redisclient.NewClient(redis.NewClient(opts))
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	value, ok, err := store.Take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	_, ok, err = store.Take(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	browser := ForBrowser(store, "b1")
	browser.PushToast(ctx, ToastSuccess, "ok")
	assert.Len(t, browser.PopToasts(ctx), 1)

	require.NoError(t, store.Delete(ctx))
}
