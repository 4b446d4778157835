// internal/models/events.go
package models

// LogEvent is a single CloudWatch log event. ExtractedFields is populated by
// the log subscription filter when its pattern names fields (e.g. type,
// requestId); events fetched back through FilterLogEvents carry only the
// message text.
type LogEvent struct {
	ID              string            `json:"id,omitempty"`
	Timestamp       int64             `json:"timestamp"` // ms since epoch
	Message         string            `json:"message"`
	ExtractedFields map[string]string `json:"extractedFields,omitempty"`
}

// LogLocation identifies where a run's events live in CloudWatch Logs.
type LogLocation struct {
	GroupName  string
	StreamName string
}

// RunContext carries the per-batch settings shared by every run in a
// subscription notification. Read-only during processing.
type RunContext struct {
	FunctionName string
	DisplayName  string
	DryRun       bool
	Location     LogLocation
}

// RunSummary is the analysis result for one completed Lambda invocation.
// Immutable once built.
type RunSummary struct {
	RequestID string
	StartTS   int64 // ms since epoch
	EndTS     int64
	Duration  int64 // ms, EndTS - StartTS
	Errors    int
	Warnings  int
	Events    []LogEvent // arrival order
}

// Status returns the run's overall status for the notification attributes.
func (s *RunSummary) Status() string {
	switch {
	case s.Errors > 0:
		return "error"
	case s.Warnings > 0:
		return "warning"
	default:
		return "success"
	}
}

// Notification is the terminal artifact handed to the publisher.
type Notification struct {
	Subject    string
	Body       string
	Attributes map[string]string
}
