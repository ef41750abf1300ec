package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	logger := &testLogger{}

	c, err := NewClient("http://localhost:8080",
		WithHTTPClient(hc),
		WithLogger(logger),
		WithRetryMax(7),
		WithRetryWait(time.Second, 10*time.Second),
		WithUserAgent("ua/2"),
		WithAPIKey("k"),
	)
	require.NoError(t, err)
	assert.Same(t, hc, c.httpClient)
	assert.Same(t, logger, c.logger)
	assert.Equal(t, 7, c.retryMax)
	assert.Equal(t, time.Second, c.retryWaitMin)
	assert.Equal(t, 10*time.Second, c.retryWaitMax)
	assert.Equal(t, "ua/2", c.userAgent)
	assert.Equal(t, "k", c.apiKey)
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	c, err := NewClient("http://localhost:8080",
		WithRetryMax(-1),
		WithRetryWait(0, time.Second),
		WithUserAgent(""),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, c.retryMax)
	assert.Equal(t, 500*time.Millisecond, c.retryWaitMin)
	assert.Equal(t, 5*time.Second, c.retryWaitMax)
	assert.Contains(t, c.userAgent, "astroaspect-go-sdk/")
}

func TestWithRetryWait_MaxBelowMin(t *testing.T) {
	c, err := NewClient("http://localhost:8080", WithRetryWait(2*time.Second, time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.retryWaitMin)
	assert.Equal(t, 5*time.Second, c.retryWaitMax)
}

//Personal.AI order the ending
