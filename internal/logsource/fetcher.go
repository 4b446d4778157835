// internal/logsource/fetcher.go

// Package logsource retrieves a run's complete event set from CloudWatch
// Logs.
package logsource

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"lambda-monitor/internal/models"
)

// FilterAPI is the slice of the CloudWatch Logs client the fetcher needs.
type FilterAPI interface {
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// Fetcher pages through FilterLogEvents results for one request id.
type Fetcher struct {
	client FilterAPI
}

// NewFetcher creates a fetcher backed by the given CloudWatch Logs client.
func NewFetcher(client FilterAPI) *Fetcher {
	return &Fetcher{client: client}
}

// RunEvents returns every log event belonging to the given request, in the
// order CloudWatch returns them, following continuation tokens until the
// result set is exhausted.
//
// The filter assumes the default Lambda log line format,
// '<level> <timestamp> <requestid> ...'.
func (f *Fetcher) RunEvents(ctx context.Context, requestID string, loc models.LogLocation) ([]models.LogEvent, error) {
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:   aws.String(loc.GroupName),
		LogStreamNames: []string{loc.StreamName},
		FilterPattern:  aws.String(fmt.Sprintf("[level,ts,id=%s,...]", requestID)),
	}

	var events []models.LogEvent
	for {
		output, err := f.client.FilterLogEvents(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to filter log events for request %s: %w", requestID, err)
		}
		for _, e := range output.Events {
			events = append(events, models.LogEvent{
				ID:        aws.ToString(e.EventId),
				Timestamp: aws.ToInt64(e.Timestamp),
				Message:   aws.ToString(e.Message),
			})
		}
		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}
	return events, nil
}
