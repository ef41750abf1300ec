// Command apiserver serves chart analysis over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/AstroAspect-Intelligence/internal/bootstrap"
	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/AstroAspect-Intelligence/internal/interfaces/http/middleware"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("apiserver exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, logger logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rt, err := bootstrap.New(ctx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Info("starting AstroAspect API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
		logging.String("engine_revision", rt.Service.Revision()),
		logging.Bool("cache", cfg.Cache.Enabled))

	if configPath != "" {
		if err := rt.Watch(configPath); err != nil {
			logger.Warn("configuration hot reload disabled", logging.Err(err))
		}
	}

	routerCfg := httpserver.RouterConfig{
		AnalysisHandler: handlers.NewAnalysisHandler(rt.Service, rt.Metrics, logger.Named("http")),
		HealthHandler:   handlers.NewHealthHandler(version, rt.Service.Revision, rt.HealthCheckers()...),
		Logger:          logger.Named("http"),
		Metrics:         rt.Metrics,
		Mode:            cfg.Server.Mode,
		MaxBodySize:     cfg.Server.MaxBodySize,
		CORS:            middleware.DefaultCORSConfig(),
	}
	routerCfg.CORS.AllowedOrigins = cfg.Server.AllowedOrigins
	if rt.Collector != nil {
		routerCfg.MetricsHandler = rt.Collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.Server.RateLimitRPS > 0 {
		limiter := middleware.NewTokenBucketLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, 5*time.Minute)
		defer limiter.Stop()
		routerCfg.RateLimiter = limiter
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	return srv.Stop(context.Background())
}

//Personal.AI order the ending
