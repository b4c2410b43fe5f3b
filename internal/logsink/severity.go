package logsink

import "strings"

// Severity is a display hint derived from the message prefix
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Classify classifies a log message by its leading marker
func Classify(msg string) Severity {
	switch {
	case strings.HasPrefix(msg, "ERROR"), strings.HasPrefix(msg, "Error:"):
		return SeverityError
	case strings.HasPrefix(msg, "WARNING"):
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
