// internal/monitor/monitor.go

// Package monitor orchestrates the per-batch pipeline: identify completed
// runs, then fetch, analyze, format, and publish each one.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lambda-monitor/internal/metrics"
	"lambda-monitor/internal/models"
	"lambda-monitor/internal/processor"
	"lambda-monitor/internal/report"
	"lambda-monitor/internal/subscription"
)

// EventFetcher retrieves a run's complete event set.
type EventFetcher interface {
	RunEvents(ctx context.Context, requestID string, loc models.LogLocation) ([]models.LogEvent, error)
}

// Publisher sends one notification and returns its acknowledgement id.
type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) (string, error)
}

// TagResolver looks up a display-name override for the monitored function.
// An empty result means no override.
type TagResolver interface {
	DisplayName(ctx context.Context, functionName string) (string, error)
}

// MetricEmitter records monitor metrics. Optional; a nil emitter disables
// metrics.
type MetricEmitter interface {
	EmitBatch(ctx context.Context, metrics map[string]metrics.MetricValue) error
}

// Monitor processes subscription batches.
type Monitor struct {
	fetcher   EventFetcher
	publisher Publisher
	tags      TagResolver
	collector MetricEmitter
	dryRun    bool
	log       *zap.Logger
}

// New creates a monitor. tags and collector may be nil.
func New(fetcher EventFetcher, publisher Publisher, tags TagResolver, collector MetricEmitter, dryRun bool, log *zap.Logger) *Monitor {
	return &Monitor{
		fetcher:   fetcher,
		publisher: publisher,
		tags:      tags,
		collector: collector,
		dryRun:    dryRun,
		log:       log,
	}
}

// ProcessBatch handles one decoded subscription notification. Runs are
// processed sequentially; a failure in one run is logged and counted but
// does not block the remaining runs. Per-run failures are joined into the
// returned error.
func (m *Monitor) ProcessBatch(ctx context.Context, data *subscription.Data) error {
	functionName, err := data.FunctionName()
	if err != nil {
		return err
	}
	log := m.log.With(zap.String("function", functionName))

	runCtx := &models.RunContext{
		FunctionName: functionName,
		DisplayName:  m.displayName(ctx, functionName, log),
		DryRun:       m.dryRun,
		Location:     data.Location(),
	}

	ids, err := processor.RequestIDs(data.LogEvents)
	if err != nil {
		return fmt.Errorf("function %s: %w", functionName, err)
	}
	log.Debug("processing runs", zap.Int("count", len(ids)))

	var errs []error
	for _, requestID := range ids {
		if err := m.processRun(ctx, requestID, runCtx); err != nil {
			log.Error("failed to process run",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			m.emit(ctx, map[string]metrics.MetricValue{"RunFailures": metrics.Count(1)})
			errs = append(errs, fmt.Errorf("request %s: %w", requestID, err))
		}
	}
	return errors.Join(errs...)
}

// processRun handles one completed invocation end to end.
func (m *Monitor) processRun(ctx context.Context, requestID string, runCtx *models.RunContext) error {
	log := m.log.With(
		zap.String("function", runCtx.FunctionName),
		zap.String("request_id", requestID),
	)
	log.Debug("processing log events")

	events, err := m.fetcher.RunEvents(ctx, requestID, runCtx.Location)
	if err != nil {
		return err
	}
	log.Debug("fetched events", zap.Int("count", len(events)))

	summary, err := processor.Analyze(requestID, events)
	if err != nil {
		return err
	}

	start := time.Now()
	messageID, err := m.publisher.Publish(ctx, report.Build(summary, runCtx))
	if err != nil {
		return err
	}
	log.Info("published run report",
		zap.String("message_id", messageID),
		zap.String("status", summary.Status()),
		zap.Int("errors", summary.Errors),
		zap.Int("warnings", summary.Warnings),
	)

	m.emit(ctx, map[string]metrics.MetricValue{
		"RunsProcessed":    metrics.Count(1),
		"RunErrors":        metrics.Count(float64(summary.Errors)),
		"RunWarnings":      metrics.Count(float64(summary.Warnings)),
		"RunDurationMs":    metrics.LatencyMs(float64(summary.Duration)),
		"PublishLatencyMs": metrics.LatencyMs(float64(time.Since(start).Milliseconds())),
	})
	return nil
}

// displayName resolves the subject display name, falling back to the
// function name when no tag override exists or the lookup fails.
func (m *Monitor) displayName(ctx context.Context, functionName string, log *zap.Logger) string {
	if m.tags == nil {
		return functionName
	}
	name, err := m.tags.DisplayName(ctx, functionName)
	if err != nil {
		log.Warn("failed to resolve display name, using function name", zap.Error(err))
		return functionName
	}
	if name == "" {
		return functionName
	}
	return name
}

func (m *Monitor) emit(ctx context.Context, values map[string]metrics.MetricValue) {
	if m.collector == nil {
		return
	}
	if err := m.collector.EmitBatch(ctx, values); err != nil {
		m.log.Warn("failed to emit metrics", zap.Error(err))
	}
}
