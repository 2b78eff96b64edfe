package cli

import (
	"github.com/aretw0/passage/internal/config"
)

// GlobalOptions are the persistent flags shared by every command.
// Empty values leave the file and environment settings untouched.
type GlobalOptions struct {
	ConfigPath   string
	PolicyFile   string
	LogLevel     string
	CacheBackend string
	RedisAddr    string
}

// LoadConfig resolves the configuration with flags taking precedence over
// environment variables, which take precedence over the config file.
func LoadConfig(opts GlobalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.PolicyFile, opts.PolicyFile)
	override(&cfg.LogLevel, opts.LogLevel)
	override(&cfg.Cache.Backend, opts.CacheBackend)
	override(&cfg.Cache.Redis.Addr, opts.RedisAddr)

	return cfg, cfg.Validate()
}
