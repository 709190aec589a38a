package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisFixedWindow(t *testing.T) {
	client := newTestRedis(t)
	r := NewRedis(client, "pedalads:test:"+uuid.NewString()+":")
	ctx := context.Background()
	p := Policy{Action: "blogPost", Window: 300 * time.Millisecond, MaxRequests: 3}

	for i := 0; i < 3; i++ {
		ok, err := r.Allow(ctx, "203.0.113.7", p)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := r.Allow(ctx, "203.0.113.7", p)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(400 * time.Millisecond)
	ok, err = r.Allow(ctx, "203.0.113.7", p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisUnavailableFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	ok, err := NewRedis(client, "").Allow(context.Background(), "x", BlogPost)
	assert.Error(t, err)
	assert.True(t, ok)
}

func TestRedisKeyPrefix(t *testing.T) {
	r := NewRedis(nil, "")
	assert.Equal(t, "pedalads:rl:", r.prefix)
	assert.Equal(t, "pedalads:rl:blogPost:1.2.3.4", r.prefix+key("1.2.3.4", BlogPost.Action))
}
