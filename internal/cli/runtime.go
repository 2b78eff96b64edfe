package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/internal/config"
	"github.com/aretw0/passage/internal/logging"
	"github.com/aretw0/passage/pkg/adapters/memory"
	"github.com/aretw0/passage/pkg/adapters/redis"
	"github.com/aretw0/passage/pkg/observability"
	"github.com/aretw0/passage/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const redisPingTimeout = 2 * time.Second

// Runtime is a fully wired service plus the infrastructure around it.
type Runtime struct {
	Config   config.Config
	Logger   *slog.Logger
	Service  *passage.Service
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
}

// NewRuntime builds the service described by cfg. Logs go to logOut.
func NewRuntime(ctx context.Context, cfg config.Config, logOut io.Writer) (*Runtime, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(logOut, level)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	cache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	opts := []passage.Option{
		passage.WithLogger(logger),
		passage.WithCacheTTL(cfg.Cache.TTL),
		passage.WithHooks(observability.Merge(metrics.Hooks(), debugHooks(logger))),
	}
	if cfg.PolicyFile != "" {
		opts = append(opts, passage.WithPolicyFile(cfg.PolicyFile))
	}
	if cache != nil {
		opts = append(opts, passage.WithCache(cache))
	}

	svc, err := passage.New(opts...)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, fmt.Errorf("error initializing service: %w", err)
	}

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Service:  svc,
		Registry: reg,
		Metrics:  metrics,
	}, nil
}

// Close releases the cache connection.
func (rt *Runtime) Close() error {
	return rt.Service.Close()
}

// newCache returns nil for the none backend. An unreachable redis degrades to the
// in-memory cache so a missing sidecar never takes the service down.
func newCache(ctx context.Context, cfg config.Cache, logger *slog.Logger) (ports.ReportCache, error) {
	switch cfg.Backend {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return memory.NewCache(), nil
	case config.CacheRedis:
		c := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			c.Close()
			logger.Warn("Redis unreachable, falling back to in-memory cache", "addr", cfg.Redis.Addr, "error", err)
			return memory.NewCache(), nil
		}
		logger.Debug("Redis cache connected", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func debugHooks(logger *slog.Logger) observability.Hooks {
	return observability.Hooks{
		OnDerive: func(ctx context.Context, e *observability.DeriveEvent) {
			logger.Debug("Derive",
				"call_id", e.CallID,
				"from", e.Origin,
				"to", e.Destination,
				"purpose", e.Purpose,
				"visa_needed", e.VisaNeeded,
				"documents", e.Documents,
				"cache_hit", e.CacheHit,
				"duration", e.Duration,
			)
		},
		OnError: func(ctx context.Context, e *observability.ErrorEvent) {
			logger.Debug("Derive rejected", "call_id", e.CallID, "err", e.Err)
		},
		OnCache: func(ctx context.Context, e *observability.CacheEvent) {
			logger.Debug("Cache", "call_id", e.CallID, "result", e.Result)
		},
	}
}
