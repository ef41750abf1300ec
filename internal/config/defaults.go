package config

import "time"

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultConjunctionOrb       = 8.0
	DefaultClusterOrb           = 15.0
	DefaultMaxClusterSize       = 6
	DefaultMinStelliumSize      = 3
	DefaultYodMaxAvgOrb         = 6.0
	DefaultCradleMaxAvgOrb      = 7.0
	DefaultCradleLimit          = 2
	DefaultClusteredSquareLimit = 1
	DefaultOrbPenalty           = 0.15
	DefaultBatchConcurrency     = 8
	DefaultMaxBatchSize         = 500

	DefaultCacheAddr   = "localhost:6379"
	DefaultCacheTTL    = 24 * time.Hour
	DefaultCachePrefix = "astro:"

	DefaultKafkaBroker     = "localhost:9092"
	DefaultKafkaGroupID    = "astroaspect-worker"
	DefaultRequestTopic    = "astro.chart.requested"
	DefaultResultTopic     = "astro.analysis.completed"
	DefaultDeadLetterTopic = "astro.chart.dlq"

	DefaultMetricsNamespace = "astroaspect"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultWorkerConcurrency = 4
)

// NewDefaultConfig returns a Config holding every default.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with the default.
// Fields that have already been set (non-zero values) are left unchanged so
// that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 4 << 20
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimitRPS > 0 && cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = int(cfg.Server.RateLimitRPS * 2)
		if cfg.Server.RateLimitBurst < 1 {
			cfg.Server.RateLimitBurst = 1
		}
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	// MaxOrb stays 0 (no ceiling) unless configured.
	e := &cfg.Engine
	if e.ConjunctionOrb == 0 {
		e.ConjunctionOrb = DefaultConjunctionOrb
	}
	if e.ClusterOrb == 0 {
		e.ClusterOrb = DefaultClusterOrb
	}
	if e.MaxClusterSize == 0 {
		e.MaxClusterSize = DefaultMaxClusterSize
	}
	if e.MinStelliumSize == 0 {
		e.MinStelliumSize = DefaultMinStelliumSize
	}
	if e.YodMaxAvgOrb == 0 {
		e.YodMaxAvgOrb = DefaultYodMaxAvgOrb
	}
	if e.CradleMaxAvgOrb == 0 {
		e.CradleMaxAvgOrb = DefaultCradleMaxAvgOrb
	}
	if e.CradleLimit == 0 {
		e.CradleLimit = DefaultCradleLimit
	}
	if e.ClusteredSquareLimit == 0 {
		e.ClusteredSquareLimit = DefaultClusteredSquareLimit
	}
	if e.OrbPenalty == 0 {
		e.OrbPenalty = DefaultOrbPenalty
	}
	if e.BatchConcurrency == 0 {
		e.BatchConcurrency = DefaultBatchConcurrency
	}
	if e.MaxBatchSize == 0 {
		e.MaxBatchSize = DefaultMaxBatchSize
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCachePrefix
	}
	if cfg.Cache.PoolSize == 0 {
		cfg.Cache.PoolSize = 10
	}
	if cfg.Cache.DialTimeout == 0 {
		cfg.Cache.DialTimeout = 5 * time.Second
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequestTopic == "" {
		cfg.Kafka.RequestTopic = DefaultRequestTopic
	}
	if cfg.Kafka.ResultTopic == "" {
		cfg.Kafka.ResultTopic = DefaultResultTopic
	}
	if cfg.Kafka.DeadLetterTopic == "" {
		cfg.Kafka.DeadLetterTopic = DefaultDeadLetterTopic
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = 3
	}
	if cfg.Kafka.RetryBackoff == 0 {
		cfg.Kafka.RetryBackoff = time.Second
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 100
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Personal.AI order the ending
