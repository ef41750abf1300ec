package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AstroAspect-Intelligence/internal/application/analysis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// BatchRequest is the body of POST /api/v1/analyses/batch.
type BatchRequest struct {
	Charts []*analysis.AnalyzeRequest `json:"charts"`
}

// AnalysisHandler exposes chart analysis over HTTP.
type AnalysisHandler struct {
	svc     analysis.Service
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewAnalysisHandler builds the handler; metrics may be nil.
func NewAnalysisHandler(svc analysis.Service, metrics *prometheus.AppMetrics, logger logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, metrics: metrics, logger: logger}
}

// RegisterRoutes mounts the analysis endpoints under rg.
func (h *AnalysisHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/analyses", h.Analyze)
	rg.POST("/analyses/batch", h.AnalyzeBatch)
}

// Analyze handles POST /analyses.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analysis.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeBatch handles POST /analyses/batch. Per-chart failures are reported
// inside the response; only batch-level problems fail the request.
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if h.metrics != nil {
		h.metrics.BatchSize.WithLabelValues("http").Observe(float64(len(req.Charts)))
	}

	resp, err := h.svc.AnalyzeBatch(c.Request.Context(), req.Charts)
	if err != nil {
		writeError(c, err)
		return
	}
	if resp.Failed > 0 {
		h.logger.Debug("batch finished with failures",
			logging.Int("failed", resp.Failed),
			logging.Int("succeeded", resp.Succeeded))
	}
	c.JSON(http.StatusOK, resp)
}

//Personal.AI order the ending
