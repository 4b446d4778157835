// internal/metrics/collector.go
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricAPI is the slice of the CloudWatch client the collector needs.
type MetricAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Collector emits custom CloudWatch metrics for the monitor itself.
type Collector struct {
	client    MetricAPI
	namespace string
	dims      []types.Dimension
}

// NewCollector creates a metrics collector. Every metric is tagged with the
// deployment environment and the monitored function's name.
func NewCollector(client MetricAPI, namespace, environment, functionName string) *Collector {
	dims := []types.Dimension{
		{
			Name:  aws.String("Environment"),
			Value: aws.String(environment),
		},
		{
			Name:  aws.String("Function"),
			Value: aws.String(functionName),
		},
	}

	return &Collector{
		client:    client,
		namespace: namespace,
		dims:      dims,
	}
}

// EmitCount records a single count metric.
func (c *Collector) EmitCount(ctx context.Context, name string, value float64) error {
	return c.EmitBatch(ctx, map[string]MetricValue{name: Count(value)})
}

// EmitBatch sends multiple metrics in one call.
func (c *Collector) EmitBatch(ctx context.Context, metrics map[string]MetricValue) error {
	if len(metrics) == 0 {
		return nil
	}

	data := make([]types.MetricDatum, 0, len(metrics))
	timestamp := aws.Time(time.Now())

	for name, mv := range metrics {
		data = append(data, types.MetricDatum{
			MetricName: aws.String(name),
			Value:      aws.Float64(mv.Value),
			Unit:       mv.Unit,
			Timestamp:  timestamp,
			Dimensions: c.dims,
		})
	}

	_, err := c.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(c.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("failed to emit metrics: %w", err)
	}
	return nil
}

// MetricValue holds a metric value and its unit.
type MetricValue struct {
	Value float64
	Unit  types.StandardUnit
}

// Count creates a count metric value.
func Count(v float64) MetricValue {
	return MetricValue{Value: v, Unit: types.StandardUnitCount}
}

// LatencyMs creates a latency metric value in milliseconds.
func LatencyMs(v float64) MetricValue {
	return MetricValue{Value: v, Unit: types.StandardUnitMilliseconds}
}
