// internal/processor/classify.go
package processor

import (
	"regexp"
	"strings"
)

// Kind is the classification of one log line.
type Kind int

const (
	KindPlain Kind = iota
	KindStart
	KindEnd
	KindReport
	KindTagged
)

// Classification is the result of interpreting one log message. Level and
// Detail are set only for KindTagged.
type Classification struct {
	Kind   Kind
	Level  string
	Detail string
}

// taggedLine matches the default Lambda log format for application output:
// '[LEVEL] <origin> <timestamp> <detail>'. (?s) lets the detail capture span
// line breaks for multi-line messages (stack traces etc.).
var taggedLine = regexp.MustCompile(`(?s)^\s*\[([A-Z]+)\]\s+\S+\s+\S+\s+(.+)`)

// Classify interprets one raw log message. Every message classifies to some
// variant; a line matching no pattern is KindPlain, passed through verbatim.
func Classify(message string) Classification {
	switch {
	case strings.HasPrefix(message, "START"):
		return Classification{Kind: KindStart}
	case strings.HasPrefix(message, "END"):
		return Classification{Kind: KindEnd}
	case strings.HasPrefix(message, "REPORT"):
		return Classification{Kind: KindReport}
	}
	if m := taggedLine.FindStringSubmatch(message); m != nil {
		return Classification{Kind: KindTagged, Level: m[1], Detail: m[2]}
	}
	return Classification{Kind: KindPlain}
}
