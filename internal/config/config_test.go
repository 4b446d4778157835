package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lambda-monitor/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("REPORTING_TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:reports")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:reports", cfg.ReportingTopicARN)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "LambdaMonitor", cfg.MetricsNamespace)
}

func TestLoadRequiresTopic(t *testing.T) {
	// t.Setenv restores the original value after the test; the unset makes
	// the variable truly absent rather than present-but-empty.
	t.Setenv("REPORTING_TOPIC_ARN", "placeholder")
	require.NoError(t, os.Unsetenv("REPORTING_TOPIC_ARN"))

	_, err := config.Load()
	require.Error(t, err)
}
