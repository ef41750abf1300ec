package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/testutil"
)

type levelLogger struct {
	*testutil.MockLogger
	levels []string
}

func (l *levelLogger) SetLevel(level string) { l.levels = append(l.levels, level) }

func newRuntime(t *testing.T) (*Runtime, *levelLogger) {
	t.Helper()
	logger := &levelLogger{MockLogger: testutil.NewMockLogger()}
	cfg := config.NewDefaultConfig()
	cfg.Metrics.Namespace = "boot"

	rt, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt, logger
}

func TestNew_WithoutCache(t *testing.T) {
	rt, _ := newRuntime(t)

	assert.Nil(t, rt.Cache)
	assert.Empty(t, rt.HealthCheckers())
	require.NotNil(t, rt.Metrics)
	require.NotNil(t, rt.Service)
	assert.Len(t, rt.Service.Revision(), 16)

	w := httptest.NewRecorder()
	rt.Collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewMetrics_Disabled(t *testing.T) {
	collector, metrics, err := NewMetrics(config.MetricsConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.Nil(t, collector)
	assert.Nil(t, metrics)
}

func TestRedisConfig(t *testing.T) {
	cc := config.NewDefaultConfig().Cache
	cc.Addr = "cache:6380"
	cc.DB = 2

	rc := RedisConfig(cc)
	assert.Equal(t, "standalone", rc.Mode)
	assert.Equal(t, "cache:6380", rc.Addr)
	assert.Equal(t, 2, rc.DB)
}

func TestApplyReload(t *testing.T) {
	rt, logger := newRuntime(t)
	before := rt.Service.Revision()

	next := config.NewDefaultConfig()
	next.Engine.OrbPenalty = 0.3
	next.Log.Level = "debug"
	rt.ApplyReload(next)

	assert.NotEqual(t, before, rt.Service.Revision())
	assert.Equal(t, []string{"debug"}, logger.levels)
	assert.Equal(t, 0.3, rt.Config.Engine.OrbPenalty)
	assert.True(t, logger.HasMessage("info", "log level changed"))
}

func TestApplyReload_RejectsInvalidEngine(t *testing.T) {
	rt, logger := newRuntime(t)
	before := rt.Service.Revision()

	next := config.NewDefaultConfig()
	next.Engine.MaxClusterSize = 1
	next.Log.Level = "error"
	rt.ApplyReload(next)

	assert.Equal(t, before, rt.Service.Revision())
	assert.Empty(t, logger.levels)
	assert.True(t, logger.HasMessage("error", "engine reload rejected"))
}

//Personal.AI order the ending
