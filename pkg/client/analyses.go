package client

import (
	"context"

	"github.com/turtacn/AstroAspect-Intelligence/internal/application/analysis"
)

// Wire types shared with the server.
type (
	PositionInput   = analysis.PositionInput
	AnalyzeRequest  = analysis.AnalyzeRequest
	AnalyzeResponse = analysis.AnalyzeResponse
	BatchResponse   = analysis.BatchResponse
	BatchItem       = analysis.BatchItem
)

// LivenessResponse is the body of GET /healthz.
type LivenessResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	EngineRevision string `json:"engine_revision,omitempty"`
	Uptime         string `json:"uptime"`
}

type batchRequest struct {
	Charts []*AnalyzeRequest `json:"charts"`
}

// Float returns a pointer to v, for PositionInput literals.
func Float(v float64) *float64 { return &v }

// Analyze runs one chart analysis.
func (c *Client) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.post(ctx, "/api/v1/analyses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeBatch analyses several charts in one request. Per-chart failures
// are returned inside the items.
func (c *Client) AnalyzeBatch(ctx context.Context, reqs []*AnalyzeRequest) (*BatchResponse, error) {
	var out BatchResponse
	body := batchRequest{Charts: reqs}
	if err := c.post(ctx, "/api/v1/analyses/batch", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls the liveness probe.
func (c *Client) Health(ctx context.Context) (*LivenessResponse, error) {
	var out LivenessResponse
	if err := c.get(ctx, "/healthz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
