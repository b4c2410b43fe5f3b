package logsink

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/rusenback/devicemgr/internal/model"
)

var (
	timeColor  = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// WriterSurface prints entries as lines to an io.Writer. Used by the CLI.
type WriterSurface struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSurface returns a surface writing to w
func NewWriterSurface(w io.Writer) *WriterSurface {
	return &WriterSurface{w: w}
}

// Append writes one entry
func (ws *WriterSurface) Append(entry model.LogEntry) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	stamp := timeColor.Sprintf("[%s]", entry.Timestamp.Format("15:04:05"))
	msg := entry.Message
	switch Classify(msg) {
	case SeverityError:
		msg = errorColor.Sprint(msg)
	case SeverityWarning:
		msg = warnColor.Sprint(msg)
	}
	fmt.Fprintf(ws.w, "%s %s\n", stamp, msg)
}

// Clear prints a separator; a stream cannot be erased
func (ws *WriterSurface) Clear() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	fmt.Fprintln(ws.w, timeColor.Sprint("----"))
}
