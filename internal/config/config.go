// Package config loads service configuration from an optional YAML file and
// PASSAGE_* environment variables. CLI flags are applied last by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	LogLevel   string `yaml:"log_level"`
	PolicyFile string `yaml:"policy_file"`
	HTTP       HTTP   `yaml:"http"`
	MCP        MCP    `yaml:"mcp"`
	Cache      Cache  `yaml:"cache"`
}

// HTTP configures the JSON API server.
type HTTP struct {
	Port int `yaml:"port"`
}

// MCP configures the Model Context Protocol server.
type MCP struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Cache configures report caching.
type Cache struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   Redis         `yaml:"redis"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTP{Port: 8080},
		MCP:      MCP{Transport: "stdio", Port: 7861},
		Cache: Cache{
			Backend: CacheMemory,
			TTL:     10 * time.Minute,
			Redis:   Redis{Addr: "localhost:6379", Prefix: "passage:report:"},
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment overrides.
// A missing file is an error only when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (supported: none, memory, redis)", c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (supported: stdio, sse)", c.MCP.Transport)
	}
	if c.HTTP.Port <= 0 || c.MCP.Port <= 0 {
		return fmt.Errorf("ports must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
		return nil
	}

	str("PASSAGE_LOG_LEVEL", &cfg.LogLevel)
	str("PASSAGE_POLICY_FILE", &cfg.PolicyFile)
	str("PASSAGE_MCP_TRANSPORT", &cfg.MCP.Transport)
	str("PASSAGE_CACHE_BACKEND", &cfg.Cache.Backend)
	str("PASSAGE_REDIS_ADDR", &cfg.Cache.Redis.Addr)
	str("PASSAGE_REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	str("PASSAGE_REDIS_PREFIX", &cfg.Cache.Redis.Prefix)

	if err := num("PASSAGE_HTTP_PORT", &cfg.HTTP.Port); err != nil {
		return err
	}
	if err := num("PASSAGE_MCP_PORT", &cfg.MCP.Port); err != nil {
		return err
	}
	if err := num("PASSAGE_REDIS_DB", &cfg.Cache.Redis.DB); err != nil {
		return err
	}

	if v, ok := lookup("PASSAGE_CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PASSAGE_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = ttl
	}
	return nil
}
