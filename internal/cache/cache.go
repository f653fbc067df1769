package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/codingstreams/userhub/internal/domain/user"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// ProfileCache is a redis-backed read-through cache for profile lookups.
// Failures are swallowed: a broken cache degrades to a miss, never to a
// request error.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg Config, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &ProfileCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func key(id string) string {
	return "userhub:profile:" + id
}

func (c *ProfileCache) Get(ctx context.Context, id string) (user.Profile, bool) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()

	if err != nil {
		return user.Profile{}, false
	}

	var p user.Profile

	if err := json.Unmarshal(raw, &p); err != nil {
		return user.Profile{}, false
	}

	return p, true
}

func (c *ProfileCache) Set(ctx context.Context, id string, p user.Profile) {
	raw, err := json.Marshal(p)

	if err != nil {
		return
	}

	_ = c.rdb.Set(ctx, key(id), raw, c.ttl).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, id string) {
	_ = c.rdb.Del(ctx, key(id)).Err()
}

// Ping checks redis connectivity for the readiness probe.
func (c *ProfileCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *ProfileCache) Close() error {
	return c.rdb.Close()
}
