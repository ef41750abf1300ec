// Package analysis orchestrates one chart analysis end to end: input
// validation, the aspect and pattern engine, mention balancing, result
// caching and metrics. Transports (CLI, HTTP, Kafka worker) call Service.
package analysis

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

const (
	cacheName      = "analysis"
	cacheKeyPrefix = "analysis:"

	sourceEngine = "engine"
	sourceCache  = "cache"
)

// Service analyses charts.
type Service interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error)
	// AnalyzeBatch analyses independent charts concurrently. Per-chart
	// failures are reported in the items; only request-level problems
	// return an error.
	AnalyzeBatch(ctx context.Context, reqs []*AnalyzeRequest) (*BatchResponse, error)
	// Reconfigure swaps the engine thresholds for subsequent calls.
	Reconfigure(ec config.EngineConfig) error
	Revision() string
}

// ServiceOption customises the service.
type ServiceOption func(*serviceImpl)

// WithCache answers repeated charts from cache for ttl.
func WithCache(c redis.Cache, ttl time.Duration) ServiceOption {
	return func(s *serviceImpl) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics records analysis metrics on m.
func WithMetrics(m *prometheus.AppMetrics) ServiceOption {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *serviceImpl) { s.now = now }
}

type serviceImpl struct {
	engine atomic.Pointer[Engine]
	limits atomic.Pointer[batchLimits]

	cache    redis.Cache
	cacheTTL time.Duration
	metrics  *prometheus.AppMetrics
	logger   logging.Logger
	now      func() time.Time
}

type batchLimits struct {
	concurrency int
	maxSize     int
}

// NewService builds a Service over the engine configuration ec.
func NewService(ec config.EngineConfig, logger logging.Logger, opts ...ServiceOption) (Service, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &serviceImpl{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reconfigure(ec); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *serviceImpl) Reconfigure(ec config.EngineConfig) error {
	eng, err := NewEngine(ec)
	if err != nil {
		return err
	}
	limits := &batchLimits{concurrency: ec.BatchConcurrency, maxSize: ec.MaxBatchSize}
	if limits.concurrency < 1 {
		limits.concurrency = config.DefaultBatchConcurrency
	}
	if limits.maxSize < 1 {
		limits.maxSize = config.DefaultMaxBatchSize
	}
	prev := s.engine.Swap(eng)
	s.limits.Store(limits)
	if prev != nil && prev.Revision() != eng.Revision() {
		s.logger.Info("engine reconfigured",
			logging.String("from", prev.Revision()),
			logging.String("to", eng.Revision()))
	}
	return nil
}

func (s *serviceImpl) Revision() string { return s.engine.Load().Revision() }

func (s *serviceImpl) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if err := validateRequest(req); err != nil {
		s.recordFailure(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "analysis cancelled")
	}

	ps, skipped := ToPositions(req.Positions)
	for _, sk := range skipped {
		s.logger.Warn("skipping body position",
			logging.String("chart_id", req.ChartID),
			logging.String("body", sk.Body),
			logging.String("reason", sk.Reason))
		if s.metrics != nil {
			prometheus.RecordSkippedBody(s.metrics, sk.Reason)
		}
	}
	if len(ps) == 0 {
		err := errors.InvalidChart("no usable body positions")
		s.recordFailure(err)
		return nil, err
	}

	start := time.Now()
	eng := s.engine.Load()
	res, source := s.run(ctx, eng, req, ps)
	elapsed := time.Since(start)

	if s.metrics != nil {
		prometheus.RecordAnalysis(s.metrics, source, elapsed, len(res.Aspects), patternTypes(res))
	}
	s.logger.Debug("chart analysed",
		logging.String("chart_id", req.ChartID),
		logging.String("source", source),
		logging.Int("aspects", len(res.Aspects)),
		logging.Int("patterns", len(res.Patterns)),
		logging.Duration("elapsed", elapsed))

	return &AnalyzeResponse{
		AnalysisID:  uuid.New().String(),
		ChartID:     req.ChartID,
		GeneratedAt: s.now().UTC(),
		Cached:      source == sourceCache,
		Skipped:     skipped,
		Result:      res,
	}, nil
}

// run answers from cache when one is configured; a broken cache degrades to
// a direct engine run.
func (s *serviceImpl) run(ctx context.Context, eng *Engine, req *AnalyzeRequest, ps chart.Positions) (Result, string) {
	if s.cache == nil {
		return eng.Run(ps, req.MaxOrb), sourceEngine
	}

	key := cacheKeyPrefix + eng.Fingerprint(ps, req.MaxOrb)
	var res Result
	loaded := false
	err := s.cache.GetOrSet(ctx, key, &res, s.cacheTTL, func(context.Context) (interface{}, error) {
		loaded = true
		return eng.Run(ps, req.MaxOrb), nil
	})
	if err != nil {
		s.logger.Warn("analysis cache unavailable", logging.String("key", key), logging.Err(err))
		if s.metrics != nil {
			prometheus.RecordError(s.metrics, "cache", errors.GetCode(err).String())
		}
		return eng.Run(ps, req.MaxOrb), sourceEngine
	}
	if s.metrics != nil {
		prometheus.RecordCacheAccess(s.metrics, cacheName, !loaded)
	}
	if loaded {
		return res, sourceEngine
	}
	return res, sourceCache
}

func (s *serviceImpl) AnalyzeBatch(ctx context.Context, reqs []*AnalyzeRequest) (*BatchResponse, error) {
	limits := s.limits.Load()
	if len(reqs) == 0 {
		return nil, errors.InvalidParam("batch must contain at least one chart")
	}
	if len(reqs) > limits.maxSize {
		return nil, errors.Newf(errors.ErrCodeBatchTooLarge, "batch of %d charts exceeds the limit of %d", len(reqs), limits.maxSize)
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limits.concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			items[i].Index = i
			resp, err := s.Analyze(gctx, req)
			if err != nil {
				items[i].Error = &ErrorView{Code: errors.GetCode(err).String(), Message: err.Error()}
				return nil
			}
			items[i].Response = resp
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "batch cancelled")
	}

	out := &BatchResponse{Items: items}
	for _, it := range items {
		if it.Error != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	s.logger.Info("batch analysed",
		logging.Int("charts", len(reqs)),
		logging.Int("succeeded", out.Succeeded),
		logging.Int("failed", out.Failed))
	return out, nil
}

func (s *serviceImpl) recordFailure(err error) {
	if s.metrics != nil {
		prometheus.RecordAnalysisFailure(s.metrics, errors.GetCode(err).String())
	}
}

func validateRequest(req *AnalyzeRequest) error {
	switch {
	case req == nil:
		return errors.InvalidParam("request is required")
	case math.IsNaN(req.MaxOrb) || math.IsInf(req.MaxOrb, 0):
		return errors.InvalidParam("max_orb must be a finite number")
	case req.MaxOrb < 0:
		return errors.InvalidParam("max_orb must not be negative")
	case len(req.Positions) == 0:
		return errors.InvalidChart("positions are required")
	}
	return nil
}

//Personal.AI order the ending
