// internal/processor/analyze.go
package processor

import (
	"errors"
	"fmt"
	"strings"

	"lambda-monitor/internal/models"
)

var (
	// ErrNoEvents indicates an empty event set for a run.
	ErrNoEvents = errors.New("no events found for request")

	// ErrMissingStart indicates the fetched event set has no START marker.
	ErrMissingStart = errors.New("no START event found in request log trace")

	// ErrMissingEnd indicates the fetched event set has no END marker.
	ErrMissingEnd = errors.New("no END event found in request log trace")
)

// Analyze folds over one run's complete event set in arrival order and
// builds its summary: start/end timestamps, duration, and error/warning
// counts.
//
// The severity checks here are deliberately narrower than the tagged-line
// pattern the report formatter uses: only a literal '[ERROR]' or '[WARNING]'
// prefix counts. Widening them to the formatter's regex would silently
// change the counts for lines with leading whitespace or other level tags.
func Analyze(requestID string, events []models.LogEvent) (*models.RunSummary, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoEvents, requestID)
	}

	summary := &models.RunSummary{
		RequestID: requestID,
		Events:    events,
	}
	var haveStart, haveEnd bool
	for _, event := range events {
		switch {
		case strings.HasPrefix(event.Message, "START"):
			summary.StartTS = event.Timestamp
			haveStart = true
		case strings.HasPrefix(event.Message, "END"):
			summary.EndTS = event.Timestamp
			haveEnd = true
		case strings.HasPrefix(event.Message, "[ERROR]"):
			summary.Errors++
		case strings.HasPrefix(event.Message, "[WARNING]"):
			summary.Warnings++
		}
	}

	if !haveStart {
		return nil, fmt.Errorf("%w %s", ErrMissingStart, requestID)
	}
	if !haveEnd {
		return nil, fmt.Errorf("%w %s", ErrMissingEnd, requestID)
	}
	summary.Duration = summary.EndTS - summary.StartTS
	return summary, nil
}
