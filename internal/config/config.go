// internal/config/config.go
package config

import "github.com/kelseyhightower/envconfig"

// Configuration holds the monitor's environment-supplied settings. The
// reporting topic is required; missing it fails at cold start, not during
// event processing.
type Configuration struct {
	ReportingTopicARN string `envconfig:"REPORTING_TOPIC_ARN" required:"true"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	DryRun            bool   `envconfig:"DRY_RUN" default:"false"`
	Environment       string `envconfig:"ENVIRONMENT" default:"development"`
	MetricsNamespace  string `envconfig:"METRICS_NAMESPACE" default:"LambdaMonitor"`

	// AWSEndpointURL overrides the AWS endpoint for LocalStack testing.
	AWSEndpointURL string `envconfig:"AWS_ENDPOINT_URL"`
}

// Load reads the configuration from the environment.
func Load() (*Configuration, error) {
	var cfg Configuration
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
