package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Estimates are cheap to recompute and the reference tables can change on
// redeploy, so cached entries expire rather than living forever.
const cacheTTL = 5 * time.Minute

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, cacheTTL).Err()
}
