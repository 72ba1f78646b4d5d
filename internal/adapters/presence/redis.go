package presence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisGauge mirrors the live connection count into Redis so the rest of the
// site can show "N people online" without reaching into this process.
// Key holds the latest count; the same key doubles as the pub/sub channel
// for anything that wants push updates.
type RedisGauge struct {
	rdb *redis.Client
	key string
}

func NewRedisGauge(rdb *redis.Client, key string) *RedisGauge {
	return &RedisGauge{rdb: rdb, key: key}
}

// Dial connects and pings so a bad address fails at startup.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (g *RedisGauge) PublishCount(ctx context.Context, n int) error {
	if err := g.rdb.Set(ctx, g.key, n, 0).Err(); err != nil {
		return fmt.Errorf("set presence gauge: %w", err)
	}
	if err := g.rdb.Publish(ctx, g.key, n).Err(); err != nil {
		return fmt.Errorf("publish presence gauge: %w", err)
	}
	return nil
}
