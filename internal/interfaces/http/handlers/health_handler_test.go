package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(h *HealthHandler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	h.RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("v1.2.3", func() string { return "abcd1234" })

	w := serveHealth(h, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
	assert.Equal(t, "abcd1234", resp.EngineRevision)
}

func TestHealthHandler_ReadinessWithoutCheckers(t *testing.T) {
	w := serveHealth(NewHealthHandler("dev", nil), "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	healthy := CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return nil }}
	broken := CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return stderrors.New("dial tcp: refused") }}

	w := serveHealth(NewHealthHandler("dev", nil, healthy), "/readyz")
	require.Equal(t, http.StatusOK, w.Code)
	var ok ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.Equal(t, "ready", ok.Status)
	assert.Equal(t, "healthy", ok.Components["cache"].Status)

	w = serveHealth(NewHealthHandler("dev", nil, broken), "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var bad ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bad))
	assert.Equal(t, "not_ready", bad.Status)
	assert.Equal(t, "dial tcp: refused", bad.Components["cache"].Error)
}

//Personal.AI order the ending
