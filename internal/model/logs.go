// internal/model/logs.go
package model

import (
	"fmt"
	"time"
)

// LogEntry represents a single line of the operation log
type LogEntry struct {
	Seq       uint64
	Timestamp time.Time
	Message   string
}

// String formats the entry as "[hh:mm:ss] message"
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.Format("15:04:05"), e.Message)
}
