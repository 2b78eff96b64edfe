package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/passage/internal/config"
	"github.com/aretw0/passage/pkg/adapters/redis"
)

// PurgeCache drops every cached report from the configured redis backend.
// The in-memory cache lives only as long as a process, so there is nothing to purge.
func PurgeCache(ctx context.Context, cfg config.Config) (int, error) {
	if cfg.Cache.Backend != config.CacheRedis {
		return 0, fmt.Errorf("cache backend %q keeps no shared state; purge applies to redis only", cfg.Cache.Backend)
	}

	c := redis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
		redis.WithPrefix(cfg.Cache.Redis.Prefix),
	)
	defer c.Close()

	n, err := c.Purge(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to purge cache: %w", err)
	}
	return n, nil
}
