// internal/report/format.go

// Package report renders a run summary into the notification subject and
// body. Rendering is deterministic for a given summary and time zone;
// timestamps are formatted in the local time zone, so the same summary
// rendered in different zones produces different (but internally consistent)
// output.
package report

import (
	"fmt"
	"strings"
	"time"

	"lambda-monitor/internal/models"
	"lambda-monitor/internal/processor"
)

// Subject builds the notification subject line. Errors win over warnings.
func Subject(summary *models.RunSummary, runCtx *models.RunContext) string {
	base := fmt.Sprintf("%s request completed", runCtx.DisplayName)
	switch {
	case summary.Errors > 0:
		return base + " with ERRORS!"
	case summary.Warnings > 0:
		return base + " with WARNINGS!"
	default:
		return base
	}
}

// FormatEvent renders one log event as a line (or lines) of the execution
// log. REPORT events render to nothing at all.
func FormatEvent(event models.LogEvent) string {
	ts := time.UnixMilli(event.Timestamp).Format("15:04:05")
	var result string
	switch c := processor.Classify(event.Message); c.Kind {
	case processor.KindStart:
		return fmt.Sprintf("%s %-7s\n", ts, "START")
	case processor.KindEnd:
		return fmt.Sprintf("%s %-7s\n", ts, "END")
	case processor.KindReport:
		return ""
	case processor.KindTagged:
		result = fmt.Sprintf("%s %-7s %s", ts, c.Level, c.Detail)
	default:
		result = fmt.Sprintf("%s %s", ts, event.Message)
	}
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// Body builds the notification body: summary counts, the formatted execution
// log in arrival order, and the run's identity and timing trailer.
func Body(summary *models.RunSummary, runCtx *models.RunContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Execution results for %s\n\n", runCtx.DisplayName)
	fmt.Fprintf(&b, "%d errors\n", summary.Errors)
	fmt.Fprintf(&b, "%d warnings\n", summary.Warnings)
	b.WriteString("\nExecution Log\n\n")
	for _, event := range summary.Events {
		b.WriteString(FormatEvent(event))
	}
	fmt.Fprintf(&b, "\nLambda Function: %s\n", runCtx.FunctionName)
	fmt.Fprintf(&b, "Request ID: %s\n", summary.RequestID)
	fmt.Fprintf(&b, "Started: %s\n", time.UnixMilli(summary.StartTS).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %f seconds", float64(summary.Duration)/1000)
	return b.String()
}

// Build assembles the complete notification for a run.
func Build(summary *models.RunSummary, runCtx *models.RunContext) *models.Notification {
	return &models.Notification{
		Subject: Subject(summary, runCtx),
		Body:    Body(summary, runCtx),
		Attributes: map[string]string{
			"function": runCtx.FunctionName,
			"status":   summary.Status(),
			"errors":   fmt.Sprintf("%d", summary.Errors),
			"warnings": fmt.Sprintf("%d", summary.Warnings),
		},
	}
}
