package monitor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lambda-monitor/internal/metrics"
	"lambda-monitor/internal/models"
	"lambda-monitor/internal/monitor"
	"lambda-monitor/internal/processor"
	"lambda-monitor/internal/subscription"
)

type fakeFetcher struct {
	events map[string][]models.LogEvent
	err    error
}

func (f *fakeFetcher) RunEvents(_ context.Context, requestID string, _ models.LogLocation) ([]models.LogEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events[requestID], nil
}

type fakePublisher struct {
	published []*models.Notification
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, n *models.Notification) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, n)
	return fmt.Sprintf("msg-%d", len(f.published)), nil
}

type fakeTags struct {
	name string
	err  error
}

func (f *fakeTags) DisplayName(_ context.Context, _ string) (string, error) {
	return f.name, f.err
}

type fakeEmitter struct {
	batches []map[string]metrics.MetricValue
}

func (f *fakeEmitter) EmitBatch(_ context.Context, values map[string]metrics.MetricValue) error {
	f.batches = append(f.batches, values)
	return nil
}

func batchFor(requestIDs ...string) *subscription.Data {
	data := &subscription.Data{
		LogGroup:  "/aws/lambda/foo",
		LogStream: "stream-1",
	}
	for _, id := range requestIDs {
		data.LogEvents = append(data.LogEvents, models.LogEvent{
			Message:         "END RequestId: " + id,
			ExtractedFields: map[string]string{"type": "END", "requestId": id},
		})
	}
	return data
}

func runEvents(requestID string) []models.LogEvent {
	return []models.LogEvent{
		{Timestamp: 1000, Message: "START RequestId: " + requestID},
		{Timestamp: 1050, Message: "[ERROR] origin ts boom detail"},
		{Timestamp: 1100, Message: "END RequestId: " + requestID},
		{Timestamp: 1100, Message: "REPORT RequestId: " + requestID + " Duration: 100 ms"},
	}
}

func TestProcessBatch(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string][]models.LogEvent{"req-1": runEvents("req-1")}}
	publisher := &fakePublisher{}
	emitter := &fakeEmitter{}
	m := monitor.New(fetcher, publisher, nil, emitter, false, zap.NewNop())

	err := m.ProcessBatch(context.Background(), batchFor("req-1"))
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	n := publisher.published[0]
	assert.Equal(t, "foo request completed with ERRORS!", n.Subject)
	assert.Contains(t, n.Body, "1 errors\n")
	assert.Contains(t, n.Body, "0 warnings\n")
	assert.Contains(t, n.Body, "ERROR   boom detail\n")
	assert.NotContains(t, n.Body, "REPORT")
	assert.Contains(t, n.Body, "Duration: 0.100000 seconds")
	assert.Equal(t, "error", n.Attributes["status"])

	require.Len(t, emitter.batches, 1)
	assert.Equal(t, metrics.Count(1), emitter.batches[0]["RunsProcessed"])
	assert.Equal(t, metrics.LatencyMs(100), emitter.batches[0]["RunDurationMs"])
}

func TestProcessBatchDisplayNameOverride(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string][]models.LogEvent{"req-1": runEvents("req-1")}}
	publisher := &fakePublisher{}
	m := monitor.New(fetcher, publisher, &fakeTags{name: "Foo Sync"}, nil, false, zap.NewNop())

	require.NoError(t, m.ProcessBatch(context.Background(), batchFor("req-1")))

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "Foo Sync request completed with ERRORS!", publisher.published[0].Subject)
	assert.Contains(t, publisher.published[0].Body, "Execution results for Foo Sync\n")
	// the attributes keep the real function name
	assert.Equal(t, "foo", publisher.published[0].Attributes["function"])
}

func TestProcessBatchTagLookupFailureFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string][]models.LogEvent{"req-1": runEvents("req-1")}}
	publisher := &fakePublisher{}
	m := monitor.New(fetcher, publisher, &fakeTags{err: errors.New("denied")}, nil, false, zap.NewNop())

	require.NoError(t, m.ProcessBatch(context.Background(), batchFor("req-1")))
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "foo request completed with ERRORS!", publisher.published[0].Subject)
}

func TestProcessBatchIsolatesRunFailures(t *testing.T) {
	// req-1 is malformed (no START), req-2 is fine; req-2 must still publish
	fetcher := &fakeFetcher{events: map[string][]models.LogEvent{
		"req-1": {{Timestamp: 1100, Message: "END RequestId: req-1"}},
		"req-2": runEvents("req-2"),
	}}
	publisher := &fakePublisher{}
	m := monitor.New(fetcher, publisher, nil, nil, false, zap.NewNop())

	err := m.ProcessBatch(context.Background(), batchFor("req-1", "req-2"))
	require.ErrorIs(t, err, processor.ErrMissingStart)
	assert.ErrorContains(t, err, "req-1")

	require.Len(t, publisher.published, 1)
	assert.Contains(t, publisher.published[0].Body, "Request ID: req-2\n")
}

func TestProcessBatchCorrelationFailuresAreFatal(t *testing.T) {
	publisher := &fakePublisher{}
	m := monitor.New(&fakeFetcher{}, publisher, nil, nil, false, zap.NewNop())

	data := &subscription.Data{LogGroup: "/aws/lambda/foo"}
	err := m.ProcessBatch(context.Background(), data)
	require.ErrorIs(t, err, processor.ErrNoEndEvents)
	assert.Empty(t, publisher.published)

	err = m.ProcessBatch(context.Background(), batchFor("req-1", "req-1"))
	require.ErrorIs(t, err, processor.ErrDuplicateRequestID)
	assert.Empty(t, publisher.published)
}

func TestProcessBatchRejectsNonLambdaLogGroup(t *testing.T) {
	m := monitor.New(&fakeFetcher{}, &fakePublisher{}, nil, nil, false, zap.NewNop())

	err := m.ProcessBatch(context.Background(), &subscription.Data{LogGroup: "/aws/ecs/foo"})
	require.ErrorIs(t, err, subscription.ErrNotLambdaLogGroup)
}

func TestProcessBatchPropagatesFetchErrors(t *testing.T) {
	boom := errors.New("rate limited")
	m := monitor.New(&fakeFetcher{err: boom}, &fakePublisher{}, nil, nil, false, zap.NewNop())

	err := m.ProcessBatch(context.Background(), batchFor("req-1"))
	require.ErrorIs(t, err, boom)
}
