package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AstroAspect-Intelligence/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func lon(v float64) *float64 { return &v }

func chartOf(id string, lons map[string]float64) *AnalyzeRequest {
	req := &AnalyzeRequest{ChartID: id, Positions: make(map[string]PositionInput, len(lons))}
	for name, l := range lons {
		req.Positions[name] = PositionInput{Longitude: lon(l)}
	}
	return req
}

func defaultEngineConfig() config.EngineConfig {
	return config.NewDefaultConfig().Engine
}

func newTestService(t *testing.T, opts ...ServiceOption) (Service, *testutil.MockLogger) {
	t.Helper()
	log := testutil.NewMockLogger()
	opts = append([]ServiceOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	svc, err := NewService(defaultEngineConfig(), log, opts...)
	require.NoError(t, err)
	return svc, log
}

func newTestMetrics(t *testing.T) (*prometheus.AppMetrics, func() string) {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test", Subsystem: "analysis"}, nil)
	require.NoError(t, err)
	scrape := func() string {
		w := httptest.NewRecorder()
		c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return w.Body.String()
	}
	return prometheus.NewAppMetrics(c), scrape
}

// memCache is an in-memory redis.Cache storing JSON like the real one.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	loads   int
	failErr error
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return context.Canceled
	}
	return json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *memCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if c.failErr != nil {
		return c.failErr
	}
	c.mu.Lock()
	b, ok := c.data[key]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(b, dest)
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	if err := c.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *memCache) DeleteByPrefix(context.Context, string) (int64, error) { return 0, nil }

func (c *memCache) Ping(context.Context) error { return nil }

//Personal.AI order the ending
