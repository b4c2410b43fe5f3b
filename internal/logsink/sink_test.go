package logsink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/model"
)

type recordingSurface struct {
	lines   []string
	clears  int
	entries []model.LogEntry
}

func (r *recordingSurface) Append(e model.LogEntry) {
	r.entries = append(r.entries, e)
	r.lines = append(r.lines, e.Message)
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.lines = nil
}

func drain(t *testing.T, s *Sink, want int) []Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var all []Event
	for len(all) < want {
		events, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("Next after %d events: %v", len(all), err)
		}
		all = append(all, events...)
	}
	return all
}

func TestPostTimestampFormat(t *testing.T) {
	s := New(zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 1, 2, 9, 5, 7, 0, time.Local) }

	s.Post("hello")
	events := drain(t, s, 1)

	if got := events[0].Entry.String(); got != "[09:05:07] hello" {
		t.Errorf("entry = %q, want %q", got, "[09:05:07] hello")
	}
}

func TestNextPreservesOrder(t *testing.T) {
	s := New(zerolog.Nop())
	for i := 0; i < 50; i++ {
		s.Postf("line %d", i)
	}

	events := drain(t, s, 50)
	for i, ev := range events {
		if want := fmt.Sprintf("line %d", i); ev.Entry.Message != want {
			t.Fatalf("event %d = %q, want %q", i, ev.Entry.Message, want)
		}
		if ev.Entry.Seq != uint64(i+1) {
			t.Fatalf("event %d seq = %d", i, ev.Entry.Seq)
		}
	}
}

func TestConcurrentPostersKeepOwnOrder(t *testing.T) {
	s := New(zerolog.Nop())
	const producers, perProducer = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Postf("p%d-%d", p, i)
			}
		}(p)
	}

	events := drain(t, s, producers*perProducer)
	wg.Wait()

	next := make([]int, producers)
	var lastSeq uint64
	for _, ev := range events {
		if ev.Entry.Seq <= lastSeq {
			t.Fatalf("seq went backwards: %d after %d", ev.Entry.Seq, lastSeq)
		}
		lastSeq = ev.Entry.Seq

		var p, i int
		if _, err := fmt.Sscanf(ev.Entry.Message, "p%d-%d", &p, &i); err != nil {
			t.Fatalf("corrupted message %q: %v", ev.Entry.Message, err)
		}
		if i != next[p] {
			t.Fatalf("producer %d: got %d, want %d", p, i, next[p])
		}
		next[p]++
	}
}

func TestPostDoesNotBlockWithoutConsumer(t *testing.T) {
	s := New(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			s.Post("x")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Post blocked with no consumer")
	}
}

func TestClearPostsConfirmation(t *testing.T) {
	s := New(zerolog.Nop())
	s.Post("before")
	s.Clear()

	events := drain(t, s, 3)
	if events[0].Kind != EventAppend || events[0].Entry.Message != "before" {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Kind != EventClear {
		t.Errorf("event 1 kind = %v, want clear", events[1].Kind)
	}
	if events[2].Kind != EventAppend || events[2].Entry.Message != ClearedMessage {
		t.Errorf("event 2 = %+v", events[2])
	}

	surface := &recordingSurface{}
	Apply(events, surface)
	if surface.clears != 1 {
		t.Errorf("clears = %d", surface.clears)
	}
	if len(surface.lines) != 1 || surface.lines[0] != ClearedMessage {
		t.Errorf("lines after clear = %v", surface.lines)
	}
}

func TestNextRespectsContext(t *testing.T) {
	s := New(zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Next(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestCloseDrainsThenReportsClosed(t *testing.T) {
	s := New(zerolog.Nop())
	s.Post("last")
	s.Close()
	s.Post("dropped")

	events, err := s.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(events) != 1 || events[0].Entry.Message != "last" {
		t.Errorf("events = %+v", events)
	}
	if _, err := s.Next(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestPumpDeliversUntilClosed(t *testing.T) {
	s := New(zerolog.Nop())
	surface := &recordingSurface{}

	done := make(chan error, 1)
	go func() { done <- Pump(context.Background(), s, surface) }()

	s.Post("one")
	s.Post("two")
	s.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Pump: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pump did not return after Close")
	}
	if strings.Join(surface.lines, ",") != "one,two" {
		t.Errorf("lines = %v", surface.lines)
	}
}

func TestWriterSurface(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	ws := NewWriterSurface(&buf)

	ws.Append(model.LogEntry{
		Timestamp: time.Date(2024, 1, 2, 13, 4, 5, 0, time.Local),
		Message:   "Device scan complete",
	})

	if got := buf.String(); got != "[13:04:05] Device scan complete\n" {
		t.Errorf("output = %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Severity
	}{
		{"ERROR: ADB not found!", SeverityError},
		{"Error: Failed to create pipe", SeverityError},
		{"WARNING: adb not found in ./ !", SeverityWarning},
		{"Device scan complete", SeverityInfo},
	}
	for _, tt := range tests {
		if got := Classify(tt.msg); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
