package analysis

import (
	"context"
	"time"

	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
)

// RequestHandler turns chart-requested events into analysis-completed events.
type RequestHandler struct {
	svc         Service
	publisher   kafka.Publisher
	resultTopic string
	source      string
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
}

// NewRequestHandler wires svc to publisher. metrics may be nil.
func NewRequestHandler(svc Service, publisher kafka.Publisher, resultTopic, source string, metrics *prometheus.AppMetrics, logger logging.Logger) *RequestHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RequestHandler{
		svc:         svc,
		publisher:   publisher,
		resultTopic: resultTopic,
		source:      source,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle implements kafka.MessageHandler.
func (h *RequestHandler) Handle(ctx context.Context, msg *kafka.Message) (err error) {
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			prometheus.RecordMessage(h.metrics, msg.Topic, err == nil, time.Since(start))
		}
	}()

	env, err := kafka.MessageToEventEnvelope(msg)
	if err != nil {
		return err
	}
	if env.EventType != "" && env.EventType != kafka.EventChartRequested {
		return errors.Newf(errors.ErrCodeValidation, "unexpected event type %q", env.EventType)
	}
	var req AnalyzeRequest
	if err = env.DecodePayload(&req); err != nil {
		return err
	}

	resp, err := h.svc.Analyze(ctx, &req)
	if err != nil {
		return err
	}

	out, err := kafka.NewEventEnvelope(kafka.EventAnalysisCompleted, h.source, resp)
	if err != nil {
		return err
	}
	out.TraceID = env.TraceID
	out.Metadata = map[string]string{"request_event_id": env.EventID}

	pm, err := out.ToMessage(h.resultTopic, req.ChartID)
	if err != nil {
		return err
	}
	if err = h.publisher.Publish(ctx, pm); err != nil {
		return err
	}
	h.logger.Info("analysis published",
		logging.String("chart_id", req.ChartID),
		logging.String("analysis_id", resp.AnalysisID),
		logging.Int("patterns", len(resp.Patterns)))
	return nil
}

//Personal.AI order the ending
