package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
)

type recordingPublisher struct {
	msgs []*kafka.ProducerMessage
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg *kafka.ProducerMessage) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func requestMessage(t *testing.T, eventType string, payload interface{}) *kafka.Message {
	t.Helper()
	env, err := kafka.NewEventEnvelope(eventType, "test", payload)
	require.NoError(t, err)
	env.TraceID = "trace-42"
	pm, err := env.ToMessage(kafka.TopicChartRequested, "")
	require.NoError(t, err)
	return &kafka.Message{Topic: pm.Topic, Value: pm.Value, Headers: pm.Headers}
}

func TestRequestHandler_PublishesResult(t *testing.T) {
	svc, _ := newTestService(t)
	pub := &recordingPublisher{}
	metrics, scrape := newTestMetrics(t)
	h := NewRequestHandler(svc, pub, kafka.TopicAnalysisCompleted, "astro-worker", metrics, nil)

	msg := requestMessage(t, kafka.EventChartRequested, chartOf("chart-9", map[string]float64{"Sun": 0, "Moon": 180}))
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Len(t, pub.msgs, 1)
	out := pub.msgs[0]
	assert.Equal(t, kafka.TopicAnalysisCompleted, out.Topic)
	assert.Equal(t, []byte("chart-9"), out.Key)
	assert.Equal(t, kafka.EventAnalysisCompleted, out.Headers[kafka.HeaderEventType])
	assert.Equal(t, "trace-42", out.Headers[kafka.HeaderTraceID])

	env, err := kafka.MessageToEventEnvelope(&kafka.Message{Value: out.Value})
	require.NoError(t, err)
	assert.NotEmpty(t, env.Metadata["request_event_id"])

	var resp AnalyzeResponse
	require.NoError(t, env.DecodePayload(&resp))
	assert.Equal(t, "chart-9", resp.ChartID)
	require.Len(t, resp.Aspects, 1)
	assert.Equal(t, "Opposition", resp.Aspects[0].Kind)

	assert.Contains(t, scrape(), `test_analysis_messages_total{status="success",topic="astro.chart.requested"} 1`)
}

func TestRequestHandler_Failures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	h := NewRequestHandler(svc, &recordingPublisher{}, kafka.TopicAnalysisCompleted, "w", nil, nil)

	err := h.Handle(ctx, requestMessage(t, kafka.EventChartRequested, AnalyzeRequest{ChartID: "empty"}))
	assert.Equal(t, errors.ErrCodeInvalidChart, errors.GetCode(err))

	err = h.Handle(ctx, requestMessage(t, kafka.EventAnalysisCompleted, AnalyzeRequest{}))
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	err = h.Handle(ctx, &kafka.Message{Topic: kafka.TopicChartRequested, Value: []byte("garbage")})
	assert.Equal(t, errors.ErrCodeSerialization, errors.GetCode(err))

	broken := NewRequestHandler(svc, &recordingPublisher{err: errors.New(errors.ErrCodeMessagingError, "down")}, "r", "w", nil, nil)
	err = broken.Handle(ctx, requestMessage(t, kafka.EventChartRequested, chartOf("x", map[string]float64{"Sun": 0})))
	assert.Equal(t, errors.ErrCodeMessagingError, errors.GetCode(err))
}

//Personal.AI order the ending
