package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/testutil"
)

func TestNewServer(t *testing.T) {
	cfg := config.NewDefaultConfig().Server
	cfg.Port = 18080
	s := NewServer(cfg, http.NewServeMux(), testutil.NewMockLogger())
	assert.Equal(t, ":18080", s.Addr())
	assert.Equal(t, cfg.ReadTimeout, s.srv.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, s.srv.WriteTimeout)
}

func TestServer_StopBeforeStart(t *testing.T) {
	logger := testutil.NewMockLogger()
	s := NewServer(config.NewDefaultConfig().Server, http.NewServeMux(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.True(t, logger.HasMessage("info", "HTTP server stopped"))
}

//Personal.AI order the ending
