// internal/processor/extract.go
package processor

import (
	"errors"
	"fmt"

	"lambda-monitor/internal/models"
)

var (
	// ErrNoEndEvents indicates a subscription batch without a single END
	// marker. The subscription filter should guarantee at least one.
	ErrNoEndEvents = errors.New("no END events found in message stream")

	// ErrDuplicateRequestID indicates the same request id completed twice in
	// one batch, which points at a misconfigured subscription source.
	ErrDuplicateRequestID = errors.New("duplicate request id")
)

// RequestIDs collects the request ids of completed runs from a subscription
// batch. Only events whose extractedFields mark them as END are trusted for
// run identification; correlating full event sets from the raw batch is
// unreliable because batches may be partial or reordered, so each run's
// events are fetched explicitly afterwards.
func RequestIDs(events []models.LogEvent) ([]string, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, event := range events {
		fields := event.ExtractedFields
		if fields == nil || fields["type"] != "END" {
			continue
		}
		id, ok := fields["requestId"]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRequestID, id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoEndEvents
	}
	return ids, nil
}
