// Command worker consumes chart-requested events from Kafka, analyses each
// chart and publishes analysis-completed events. Messages that keep failing
// are parked on the dead-letter topic.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/AstroAspect-Intelligence/internal/application/analysis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/bootstrap"
	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/handlers"
)

const (
	defaultHealthPort = 8081
	eventSource       = "astroaspect-worker"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	healthPort := flag.Int("health-port", defaultHealthPort, "port for /healthz, /readyz and /metrics")
	skipTopics := flag.Bool("skip-topic-setup", false, "do not create missing topics on startup")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, *configPath, *healthPort, !*skipTopics, logger); err != nil {
		logger.Error("worker exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, healthPort int, setupTopics bool, logger logging.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
	rt, err := bootstrap.New(initCtx, cfg, logger)
	initCancel()
	if err != nil {
		return err
	}
	defer rt.Close()

	if configPath != "" {
		if err := rt.Watch(configPath); err != nil {
			logger.Warn("configuration hot reload disabled", logging.Err(err))
		}
	}

	if setupTopics {
		if err := ensureTopics(ctx, cfg.Kafka, logger); err != nil {
			// Brokers with auto-create still work, so this is not fatal.
			logger.Warn("topic setup failed", logging.Err(err))
		}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:    cfg.Kafka.Brokers,
		Acks:       "all",
		MaxRetries: cfg.Kafka.MaxRetries,
		BatchSize:  cfg.Kafka.BatchSize,
	}, logger.Named("producer"))
	if err != nil {
		return err
	}
	defer producer.Close()

	handler := analysis.NewRequestHandler(rt.Service, producer, cfg.Kafka.ResultTopic, eventSource, rt.Metrics, logger.Named("handler"))

	// Consumers in one group split the request topic's partitions between them.
	consumers := make([]*kafka.Consumer, 0, cfg.Worker.Concurrency)
	defer func() {
		for _, c := range consumers {
			if err := c.Close(); err != nil {
				logger.Warn("consumer close failed", logging.Err(err))
			}
		}
	}()
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		c, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:         cfg.Kafka.Brokers,
			GroupID:         cfg.Kafka.GroupID,
			Topics:          []string{cfg.Kafka.RequestTopic},
			AutoOffsetReset: "earliest",
			RetryConfig: kafka.RetryConfig{
				MaxRetries:      cfg.Kafka.MaxRetries,
				RetryBackoff:    cfg.Kafka.RetryBackoff,
				DeadLetterTopic: cfg.Kafka.DeadLetterTopic,
			},
		}, producer, logger.Named("consumer").With(logging.Int("worker", i)))
		if err != nil {
			return err
		}
		consumers = append(consumers, c)
		c.Subscribe(cfg.Kafka.RequestTopic, handler.Handle)
		if err := c.Start(ctx); err != nil {
			return err
		}
	}

	healthCfg := cfg.Server
	healthCfg.Port = healthPort
	routerCfg := httpserver.RouterConfig{
		HealthHandler: handlers.NewHealthHandler(version, rt.Service.Revision, rt.HealthCheckers()...),
		Logger:        logger.Named("http"),
		Metrics:       rt.Metrics,
		Mode:          cfg.Server.Mode,
	}
	if rt.Collector != nil {
		routerCfg.MetricsHandler = rt.Collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	healthSrv := httpserver.NewServer(healthCfg, httpserver.NewRouter(routerCfg), logger)
	go func() {
		if err := healthSrv.Start(); err != nil {
			logger.Error("health server failed", logging.Err(err))
		}
	}()

	logger.Info("worker started",
		logging.String("version", version),
		logging.Int("consumers", len(consumers)),
		logging.String("request_topic", cfg.Kafka.RequestTopic),
		logging.String("result_topic", cfg.Kafka.ResultTopic),
		logging.String("engine_revision", rt.Service.Revision()))

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := healthSrv.Stop(shutdownCtx); err != nil {
		logger.Warn("health server shutdown failed", logging.Err(err))
	}
	return nil
}

func ensureTopics(ctx context.Context, kc config.KafkaConfig, logger logging.Logger) error {
	tm, err := kafka.NewTopicManager(kc.Brokers, logger.Named("topics"))
	if err != nil {
		return err
	}
	defer tm.Close()
	return tm.EnsureTopics(ctx, kafka.DefaultTopics(kc.RequestTopic, kc.ResultTopic, kc.DeadLetterTopic))
}

//Personal.AI order the ending
