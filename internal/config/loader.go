// Package config provides configuration loading, defaults, and validation for
// the AstroAspect services.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "ASTRO"

// newViper builds a pre-configured Viper instance: YAML file type, ASTRO_ env
// prefix, automatic env binding, and a key replacer that maps "." → "_" so
// that nested keys like "engine.max_orb" resolve to "ASTRO_ENGINE_MAX_ORB".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindKeys(v)
	v.SetDefault("metrics.enabled", true)
	return v
}

// bindKeys registers every leaf key so AutomaticEnv can resolve it during
// Unmarshal even when no config file mentions it.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
		"server.max_body_size", "server.shutdown_timeout", "server.allowed_origins",
		"server.rate_limit_rps", "server.rate_limit_burst",
		"engine.max_orb", "engine.conjunction_orb", "engine.cluster_orb",
		"engine.max_cluster_size", "engine.min_stellium_size", "engine.yod_max_avg_orb",
		"engine.cradle_max_avg_orb", "engine.cradle_limit", "engine.clustered_square_limit",
		"engine.orb_penalty", "engine.kinds", "engine.batch_concurrency", "engine.max_batch_size",
		"log.level", "log.format", "log.output", "log.enable_caller", "log.enable_stacktrace",
		"metrics.enabled", "metrics.namespace", "metrics.subsystem", "metrics.path",
		"cache.enabled", "cache.addr", "cache.password", "cache.db", "cache.pool_size",
		"cache.dial_timeout", "cache.read_timeout", "cache.write_timeout", "cache.ttl", "cache.key_prefix",
		"kafka.brokers", "kafka.group_id", "kafka.request_topic", "kafka.result_topic",
		"kafka.dead_letter_topic", "kafka.max_retries", "kafka.retry_backoff", "kafka.batch_size",
		"worker.concurrency",
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any ASTRO_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ASTRO_* environment variables,
// with no config file required.
//
//	ASTRO_<SECTION>_<FIELD>   e.g.  ASTRO_ENGINE_MAX_ORB, ASTRO_CACHE_ADDR
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrDefault loads configPath when it is non-empty and falls back to the
// environment otherwise.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed Config
// whenever the file changes on disk. Invalid revisions are reported through
// onError (when non-nil) and never reach onChange.
//
// Watch is non-blocking; viper runs the watcher goroutine.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(ev fsnotify.Event) {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is a convenience wrapper around LoadOrDefault that panics on any
// error. It is intended for main() where a config-load failure is fatal.
func MustLoad(configPath string) *Config {
	cfg, err := LoadOrDefault(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
