package accesslog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list log lines are shipped to when Options leaves
// RedisKey empty. Collectors draining the list share this constant.
const DefaultRedisKey = "accesslog:lines"

const redisWriteTimeout = 100 * time.Millisecond

// redisWriter ships rendered log lines to a Redis list for an external
// collector to drain. It is a transport, not a storage layer: retention is
// whatever the collector side arranges.
type redisWriter struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func newRedisWriter(addr, key string) (*redisWriter, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis output requires an address")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisWriter{client: client, key: key, timeout: redisWriteTimeout}, nil
}

// Write pushes one rendered line. A failed push surfaces as a write error,
// which zerolog reports on stderr without touching the request path.
func (w *redisWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	line := strings.TrimRight(string(p), "\n")
	if err := w.client.RPush(ctx, w.key, line).Err(); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *redisWriter) Close() error {
	return w.client.Close()
}
