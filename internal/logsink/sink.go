// Package logsink serialises operation log lines from any goroutine into a
// single ordered feed for the display surface.
package logsink

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/model"
)

// ClearedMessage is posted right after a clear
const ClearedMessage = "Log cleared"

var ErrClosed = errors.New("log sink closed")

// EventKind distinguishes appends from clears
type EventKind int

const (
	EventAppend EventKind = iota
	EventClear
)

// Event is one queued instruction for the display surface
type Event struct {
	Kind  EventKind
	Entry model.LogEntry
}

// Poster is what producers need from the sink
type Poster interface {
	Post(msg string)
	Postf(format string, args ...any)
}

// Surface is a display that can show log entries
type Surface interface {
	Append(entry model.LogEntry)
	Clear()
}

// Sink is an unbounded FIFO of log events. Post never blocks on the consumer.
type Sink struct {
	mu     sync.Mutex
	queue  []Event
	seq    uint64
	closed bool
	notify chan struct{}

	now func() time.Time
	log zerolog.Logger
}

// New creates an empty sink. Posted lines are mirrored to log at debug level.
func New(log zerolog.Logger) *Sink {
	return &Sink{
		notify: make(chan struct{}, 1),
		now:    time.Now,
		log:    log.With().Str("module", "feed").Logger(),
	}
}

// Post timestamps msg and queues it
func (s *Sink) Post(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(msg)
}

// Postf is Post with formatting
func (s *Sink) Postf(format string, args ...any) {
	s.Post(fmt.Sprintf(format, args...))
}

// Clear queues a clear followed by a confirmation entry
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, Event{Kind: EventClear})
	s.appendLocked(ClearedMessage)
}

func (s *Sink) appendLocked(msg string) {
	if s.closed {
		return
	}
	s.seq++
	entry := model.LogEntry{Seq: s.seq, Timestamp: s.now(), Message: msg}
	s.queue = append(s.queue, Event{Kind: EventAppend, Entry: entry})
	s.log.Debug().Uint64("seq", entry.Seq).Msg(msg)
	s.signal()
}

func (s *Sink) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Next blocks until events are queued and returns all of them in order.
// Once the sink is closed and drained it returns ErrClosed.
func (s *Sink) Next(ctx context.Context) ([]Event, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			events := s.queue
			s.queue = nil
			s.mu.Unlock()
			return events, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return nil, ErrClosed
		}

		select {
		case <-s.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close stops accepting entries. Already queued events can still be read.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.signal()
}

// Pump delivers events to surface from the calling goroutine until ctx is
// done or the sink is closed and drained.
func Pump(ctx context.Context, s *Sink, surface Surface) error {
	for {
		events, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
		Apply(events, surface)
	}
}

// Apply replays events onto surface in order
func Apply(events []Event, surface Surface) {
	for _, ev := range events {
		switch ev.Kind {
		case EventClear:
			surface.Clear()
		case EventAppend:
			surface.Append(ev.Entry)
		}
	}
}

var _ Poster = (*Sink)(nil)
