package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tokenlens/internal/domain"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "analysis:"

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// Redis stores analyses as JSON under an "analysis:" prefix with native
// TTL expiry. Used when REDIS_URL is configured so several instances can
// share one cache.
type Redis struct {
	client *redis.Client
}

// ConnectRedis dials Redis at addr (host:port or a redis:// URL) and
// returns a Redis-backed store.
func ConnectRedis(ctx context.Context, addr string) (*Redis, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (*domain.Analysis, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *Redis) Set(ctx context.Context, key string, analysis *domain.Analysis, ttl time.Duration) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
