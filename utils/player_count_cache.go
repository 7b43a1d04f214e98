package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

const playerCountKeyPrefix = "playing__"

// PlayerCountCache is a short-TTL redis cache of live player counts, keyed by
// game id. It exists so the read API doesn't hit the external game service
// once per entry on every request.
type PlayerCountCache struct {
	inner *redis.Client
	ttl   time.Duration
}

// GetPlayerCountCache connects to the redis instance configured through
// REDIS_HOST / REDIS_PORT / REDIS_PASSWD. Returns error if redis is not
// reachable, callers are expected to degrade to uncached lookups.
func GetPlayerCountCache(ttl time.Duration) (*PlayerCountCache, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &PlayerCountCache{inner: redisClient, ttl: ttl}, nil
}

func (c *PlayerCountCache) Get(gameId string) (int64, bool) {
	res, err := c.inner.Get(ctx, playerCountKeyPrefix+gameId).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(res, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *PlayerCountCache) Set(gameId string, count int64) error {
	return c.inner.Set(ctx, playerCountKeyPrefix+gameId, strconv.FormatInt(count, 10), c.ttl).Err()
}
