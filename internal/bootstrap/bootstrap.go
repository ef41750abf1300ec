// Package bootstrap builds the shared runtime of the long-running binaries
// from a loaded Config: logger, metrics, result cache and analysis service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/AstroAspect-Intelligence/internal/application/analysis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/handlers"
)

// Runtime holds the components every binary shares. Close releases them.
type Runtime struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Cache     redis.Cache
	Service   analysis.Service

	redisClient *redis.Client
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg config.LogConfig) (logging.Logger, error) {
	out := cfg.Output
	if out == "" {
		out = "stdout"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            cfg.Level,
		Format:           cfg.Format,
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// NewMetrics registers the application metrics. Both results are nil when
// metrics are disabled.
func NewMetrics(cfg config.MetricsConfig, logger logging.Logger) (prometheus.MetricsCollector, *prometheus.AppMetrics, error) {
	if !cfg.Enabled {
		return nil, nil, nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Namespace,
		Subsystem:            cfg.Subsystem,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}
	return collector, prometheus.NewAppMetrics(collector), nil
}

// RedisConfig maps the cache section onto the Redis client configuration.
func RedisConfig(cfg config.CacheConfig) *redis.RedisConfig {
	return &redis.RedisConfig{
		Mode:         "standalone",
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// New assembles a Runtime. The Redis connection is only attempted when the
// cache is enabled.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	collector, metrics, err := NewMetrics(cfg.Metrics, logger)
	if err != nil {
		return nil, err
	}
	rt.Collector, rt.Metrics = collector, metrics

	opts := []analysis.ServiceOption{analysis.WithMetrics(metrics)}
	if cfg.Cache.Enabled {
		client, err := redis.NewClient(ctx, RedisConfig(cfg.Cache), logger.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		rt.redisClient = client
		rt.Cache = redis.NewRedisCache(client, logger.Named("cache"),
			redis.WithPrefix(cfg.Cache.KeyPrefix),
			redis.WithDefaultTTL(cfg.Cache.TTL))
		opts = append(opts, analysis.WithCache(rt.Cache, cfg.Cache.TTL))
	}

	svc, err := analysis.NewService(cfg.Engine, logger.Named("analysis"), opts...)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Service = svc
	return rt, nil
}

// HealthCheckers returns the readiness probes for the enabled dependencies.
func (rt *Runtime) HealthCheckers() []handlers.HealthChecker {
	var out []handlers.HealthChecker
	if rt.Cache != nil {
		out = append(out, handlers.CheckerFunc{ComponentName: "cache", Fn: rt.Cache.Ping})
	}
	return out
}

// ApplyReload pushes a reloaded configuration into the running components.
// Engine thresholds and the log level are the only hot-reloadable settings.
func (rt *Runtime) ApplyReload(next *config.Config) {
	if err := rt.Service.Reconfigure(next.Engine); err != nil {
		rt.Logger.Error("engine reload rejected", logging.Err(err))
		return
	}
	if ls, ok := rt.Logger.(logging.LevelSetter); ok && next.Log.Level != rt.Config.Log.Level {
		ls.SetLevel(next.Log.Level)
		rt.Logger.Info("log level changed", logging.String("level", next.Log.Level))
	}
	rt.Config.Engine = next.Engine
	rt.Config.Log.Level = next.Log.Level
}

// Watch hot-reloads path into rt until the process exits.
func (rt *Runtime) Watch(path string) error {
	return config.Watch(path, rt.ApplyReload, func(err error) {
		rt.Logger.Warn("configuration reload failed", logging.Err(err))
	})
}

// Close releases the Redis connection, if any.
func (rt *Runtime) Close() error {
	if rt.redisClient != nil {
		return rt.redisClient.Close()
	}
	return nil
}

//Personal.AI order the ending
