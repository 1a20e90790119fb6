package store

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 0})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	key := "wishlist:state:test"
	client.Del(ctx, key)
	defer client.Del(ctx, key)

	s := NewRedisStore("localhost:6379", 0, key)
	defer s.Close()

	testStoreRoundTrip(t, s)
}
