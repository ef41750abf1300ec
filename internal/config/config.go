// Package config defines the configuration structures of the AstroAspect
// services. No I/O or parsing logic lives here, only data types, conversion
// into engine records and validation.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/pattern"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port"`
	Mode            string        `mapstructure:"mode" yaml:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size" yaml:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	// AllowedOrigins lists the CORS origins; empty disables cross-origin access.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// RateLimitRPS is the sustained per-client request rate; 0 disables limiting.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// EngineConfig holds the aspect and pattern thresholds.
type EngineConfig struct {
	// MaxOrb is the global orb ceiling; 0 keeps the per-kind table.
	MaxOrb               float64 `mapstructure:"max_orb" yaml:"max_orb"`
	ConjunctionOrb       float64 `mapstructure:"conjunction_orb" yaml:"conjunction_orb"`
	ClusterOrb           float64 `mapstructure:"cluster_orb" yaml:"cluster_orb"`
	MaxClusterSize       int     `mapstructure:"max_cluster_size" yaml:"max_cluster_size"`
	MinStelliumSize      int     `mapstructure:"min_stellium_size" yaml:"min_stellium_size"`
	YodMaxAvgOrb         float64 `mapstructure:"yod_max_avg_orb" yaml:"yod_max_avg_orb"`
	CradleMaxAvgOrb      float64 `mapstructure:"cradle_max_avg_orb" yaml:"cradle_max_avg_orb"`
	CradleLimit          int     `mapstructure:"cradle_limit" yaml:"cradle_limit"`
	ClusteredSquareLimit int     `mapstructure:"clustered_square_limit" yaml:"clustered_square_limit"`
	OrbPenalty           float64 `mapstructure:"orb_penalty" yaml:"orb_penalty"`
	// Kinds restricts the enabled aspect kinds; empty keeps the default set.
	Kinds []string `mapstructure:"kinds" yaml:"kinds"`
	// BatchConcurrency bounds the charts analysed in parallel by AnalyzeBatch.
	BatchConcurrency int `mapstructure:"batch_concurrency" yaml:"batch_concurrency"`
	MaxBatchSize     int `mapstructure:"max_batch_size" yaml:"max_batch_size"`
}

// AspectConfig converts the loaded values into an immutable aspect.Config.
func (e EngineConfig) AspectConfig() (aspect.Config, error) {
	cfg := aspect.DefaultConfig().WithCeiling(e.MaxOrb)
	if len(e.Kinds) > 0 {
		kinds := make([]aspect.Kind, 0, len(e.Kinds))
		for _, name := range e.Kinds {
			k, ok := aspect.ParseKind(name)
			if !ok {
				return aspect.Config{}, fmt.Errorf("config: engine.kinds contains unknown kind %q", name)
			}
			kinds = append(kinds, k)
		}
		cfg = cfg.WithKinds(kinds...)
	}
	return cfg, cfg.Validate()
}

// PatternConfig converts the loaded values into an immutable pattern.Config.
func (e EngineConfig) PatternConfig() pattern.Config {
	cfg := pattern.DefaultConfig()
	cfg.ConjunctionOrb = e.ConjunctionOrb
	cfg.ClusterOrb = e.ClusterOrb
	cfg.MaxClusterSize = e.MaxClusterSize
	cfg.MinStelliumSize = e.MinStelliumSize
	cfg.YodMaxAvgOrb = e.YodMaxAvgOrb
	cfg.CradleMaxAvgOrb = e.CradleMaxAvgOrb
	cfg.CradleLimit = e.CradleLimit
	cfg.ClusteredSquareLimit = e.ClusteredSquareLimit
	cfg.OrbPenalty = e.OrbPenalty
	return cfg
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level" yaml:"level"`   // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format" yaml:"format"` // "json" | "console"
	Output           string `mapstructure:"output" yaml:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller" yaml:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace" yaml:"enable_stacktrace"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	Subsystem string `mapstructure:"subsystem" yaml:"subsystem"`
	Path      string `mapstructure:"path" yaml:"path"`
}

// CacheConfig holds the Redis result-cache parameters.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled"`
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	Password     string        `mapstructure:"password" yaml:"password"`
	DB           int           `mapstructure:"db" yaml:"db"`
	PoolSize     int           `mapstructure:"pool_size" yaml:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	TTL          time.Duration `mapstructure:"ttl" yaml:"ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// KafkaConfig holds the batch worker's Kafka parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers" yaml:"brokers"`
	GroupID         string        `mapstructure:"group_id" yaml:"group_id"`
	RequestTopic    string        `mapstructure:"request_topic" yaml:"request_topic"`
	ResultTopic     string        `mapstructure:"result_topic" yaml:"result_topic"`
	DeadLetterTopic string        `mapstructure:"dead_letter_topic" yaml:"dead_letter_topic"`
	MaxRetries      int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff"`
	BatchSize       int           `mapstructure:"batch_size" yaml:"batch_size"`
}

// WorkerConfig holds background-worker execution parameters.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Config is the root configuration structure shared by every binary.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Kafka   KafkaConfig   `mapstructure:"kafka" yaml:"kafka"`
	Worker  WorkerConfig  `mapstructure:"worker" yaml:"worker"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("config: server.rate_limit_rps must be ≥ 0, got %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("config: server.rate_limit_burst must be ≥ 1 when rate limiting is enabled")
	}

	// Engine
	if math.IsNaN(c.Engine.MaxOrb) || math.IsInf(c.Engine.MaxOrb, 0) || c.Engine.MaxOrb < 0 {
		return fmt.Errorf("config: engine.max_orb must be a non-negative number, got %v", c.Engine.MaxOrb)
	}
	if _, err := c.Engine.AspectConfig(); err != nil {
		return err
	}
	if err := c.Engine.PatternConfig().Validate(); err != nil {
		return fmt.Errorf("config: engine: %w", err)
	}
	if c.Engine.BatchConcurrency < 1 {
		return fmt.Errorf("config: engine.batch_concurrency must be ≥ 1, got %d", c.Engine.BatchConcurrency)
	}
	if c.Engine.MaxBatchSize < 1 {
		return fmt.Errorf("config: engine.max_batch_size must be ≥ 1, got %d", c.Engine.MaxBatchSize)
	}

	// Cache
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when the cache is enabled")
	}
	if c.Cache.DB < 0 {
		return fmt.Errorf("config: cache.db must be ≥ 0, got %d", c.Cache.DB)
	}

	// Kafka
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("config: kafka.group_id is required")
	}

	// Worker
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be ≥ 1, got %d", c.Worker.Concurrency)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
