package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, 0.0, cfg.Engine.MaxOrb)
	assert.Equal(t, DefaultCradleLimit, cfg.Engine.CradleLimit)
	assert.Equal(t, DefaultClusteredSquareLimit, cfg.Engine.ClusteredSquareLimit)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultDeadLetterTopic, cfg.Kafka.DeadLetterTopic)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Engine.YodMaxAvgOrb = 4
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 4.0, cfg.Engine.YodMaxAvgOrb)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestNewDefaultConfig_MetricsOn(t *testing.T) {
	assert.True(t, NewDefaultConfig().Metrics.Enabled)
}

//Personal.AI order the ending
