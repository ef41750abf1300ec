package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/testutil"
	pkgerrors "github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
)

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []*ProducerMessage
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, msg *ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *fakePublisher) published() []*ProducerMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*ProducerMessage(nil), p.msgs...)
}

func newTestConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "astro-test",
		Topics:  []string{TopicChartRequested},
		RetryConfig: RetryConfig{
			MaxRetries:      2,
			RetryBackoff:    time.Millisecond,
			MaxRetryBackoff: 2 * time.Millisecond,
			DeadLetterTopic: TopicDeadLetter,
		},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(newTestConsumerConfig()))

	cases := map[string]func(*ConsumerConfig){
		"no brokers":  func(c *ConsumerConfig) { c.Brokers = nil },
		"no group":    func(c *ConsumerConfig) { c.GroupID = "" },
		"no topics":   func(c *ConsumerConfig) { c.Topics = nil },
		"bad offset":  func(c *ConsumerConfig) { c.AutoOffsetReset = "middle" },
		"neg retries": func(c *ConsumerConfig) { c.RetryConfig.MaxRetries = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := newTestConsumerConfig()
			mutate(&cfg)
			err := ValidateConsumerConfig(cfg)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation))
		})
	}
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Topic: TopicChartRequested, Offset: 1, Value: []byte("a"), Headers: []kafka.Header{{Key: "k", Value: []byte("v")}}},
		{Topic: TopicChartRequested, Offset: 2, Value: []byte("b")},
	}}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), nil, testutil.NewMockLogger())

	var mu sync.Mutex
	var seen []string
	c.Subscribe(TopicChartRequested, func(_ context.Context, msg *Message) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, string(msg.Value))
		if msg.Offset == 1 {
			assert.Equal(t, "v", msg.Headers["k"])
		}
		return nil
	})

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	assert.Equal(t, []string{"a", "b"}, seen)
	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Consumed)
	assert.Equal(t, int64(2), stats.Processed)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 1, reader.closed)
}

func TestConsumer_RetriesThenDeadLetters(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Topic: TopicChartRequested, Offset: 7, Key: []byte("chart-1"), Value: []byte("{}")},
	}}
	dlq := &fakePublisher{}
	log := testutil.NewMockLogger()
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), dlq, log)

	var mu sync.Mutex
	calls := 0
	c.Subscribe(TopicChartRequested, func(context.Context, *Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return pkgerrors.New(pkgerrors.ErrCodeAnalysisFailed, "engine exploded")
	})

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	assert.Equal(t, 3, calls)
	msgs := dlq.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, TopicDeadLetter, msgs[0].Topic)
	assert.Equal(t, []byte("chart-1"), msgs[0].Key)
	assert.Equal(t, TopicChartRequested, msgs[0].Headers[HeaderOriginalTopic])
	assert.Contains(t, msgs[0].Headers[HeaderErrorMessage], "engine exploded")
	assert.Equal(t, "ASTRO_002", msgs[0].Headers[HeaderErrorCode])

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(2), stats.Retried)
	assert.Equal(t, int64(1), stats.DeadLettered)
	assert.True(t, log.HasMessage("error", "message processing failed"))
}

func TestConsumer_ClientErrorsAreNotRetried(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Topic: TopicChartRequested, Value: []byte("{}")}}}
	dlq := &fakePublisher{}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), dlq, nil)

	var mu sync.Mutex
	calls := 0
	c.Subscribe(TopicChartRequested, func(context.Context, *Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return pkgerrors.InvalidChart("no positions")
	})

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	assert.Equal(t, 1, calls)
	assert.Zero(t, c.Stats().Retried)
	msgs := dlq.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "ASTRO_001", msgs[0].Headers[HeaderErrorCode])
}

func TestConsumer_RecoversOnRetry(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Topic: TopicChartRequested, Value: []byte("x")}}}
	dlq := &fakePublisher{}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), dlq, nil)

	var mu sync.Mutex
	calls := 0
	c.Subscribe(TopicChartRequested, func(context.Context, *Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	assert.Empty(t, dlq.published())
	assert.Equal(t, int64(1), c.Stats().Processed)
	assert.Equal(t, int64(1), c.Stats().Retried)
}

func TestConsumer_UnknownTopicIsCommitted(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Topic: "other", Value: []byte("x")}}}
	log := testutil.NewMockLogger()
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), nil, log)

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, log.HasMessage("warn", "no handler for topic"))
}

func TestConsumer_StartTwice(t *testing.T) {
	c := NewConsumerWithReader(&fakeReader{}, newTestConsumerConfig(), nil, nil)
	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyRunning)
	require.NoError(t, c.Close())
}

//Personal.AI order the ending
