// cmd/monitor/main.go
package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"lambda-monitor/internal/config"
	"lambda-monitor/internal/logger"
	"lambda-monitor/internal/logsource"
	"lambda-monitor/internal/metrics"
	"lambda-monitor/internal/monitor"
	"lambda-monitor/internal/notify"
	"lambda-monitor/internal/subscription"
	"lambda-monitor/internal/tags"
)

var (
	cfg          *config.Configuration
	log          *zap.Logger
	logsClient   *cloudwatchlogs.Client
	snsClient    *sns.Client
	lambdaClient *lambdasvc.Client
	cwClient     *cloudwatch.Client
)

func init() {
	ctx := context.Background()

	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err = logger.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	// LocalStack support
	if cfg.AWSEndpointURL != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
	}

	logsClient = cloudwatchlogs.NewFromConfig(awsCfg)
	snsClient = sns.NewFromConfig(awsCfg)
	lambdaClient = lambdasvc.NewFromConfig(awsCfg)
	cwClient = cloudwatch.NewFromConfig(awsCfg)
}

func handler(ctx context.Context, event events.CloudwatchLogsEvent) (string, error) {
	data, err := subscription.Parse(event)
	if err != nil {
		log.Error("failed to decode subscription event", zap.Error(err))
		return "", err
	}
	log.Debug("decoded subscription event",
		zap.String("log_group", data.LogGroup),
		zap.String("log_stream", data.LogStream),
		zap.Int("events", len(data.LogEvents)),
	)

	functionName, err := data.FunctionName()
	if err != nil {
		log.Error("bad subscription source", zap.Error(err))
		return "", err
	}

	collector := metrics.NewCollector(cwClient, cfg.MetricsNamespace, cfg.Environment, functionName)
	m := monitor.New(
		logsource.NewFetcher(logsClient),
		notify.NewPublisher(snsClient, cfg.ReportingTopicARN, cfg.DryRun, log),
		tags.NewResolver(lambdaClient),
		collector,
		cfg.DryRun,
		log,
	)

	if err := m.ProcessBatch(ctx, data); err != nil {
		return "", err
	}
	return "Mischief managed.", nil
}

func main() {
	lambda.Start(handler)
}
