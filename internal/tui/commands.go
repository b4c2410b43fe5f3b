package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/device"
	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tools"
)

// tickCmd schedules the next auto-detect pass
func tickCmd(id int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

// scanDevices runs one scan in the background
func scanDevices(ctx context.Context, devices device.Manager, id int) tea.Cmd {
	return func() tea.Msg {
		return scanMsg{id: id, report: devices.Scan(ctx)}
	}
}

// runAction runs a blocking device operation in its own goroutine
func runAction(name string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{name: name, err: fn()}
	}
}

// waitForLog waits for the next batch of log events
func waitForLog(ctx context.Context, sink *logsink.Sink) tea.Cmd {
	return func() tea.Msg {
		events, err := sink.Next(ctx)
		return logBatchMsg{events: events, err: err}
	}
}

// watchTools follows the tools directory until ctx is done
func watchTools(ctx context.Context, dir string, log zerolog.Logger, out chan<- tools.Set) tea.Cmd {
	return func() tea.Msg {
		err := tools.Watch(ctx, dir, log, func(set tools.Set) {
			select {
			case out <- set:
			case <-ctx.Done():
			}
		})
		return watchStoppedMsg{err: err}
	}
}

// waitForTools waits for the next tools change from the watcher
func waitForTools(ctx context.Context, in <-chan tools.Set) tea.Cmd {
	return func() tea.Msg {
		select {
		case set := <-in:
			return toolsMsg{set: set}
		case <-ctx.Done():
			return nil
		}
	}
}

// loadHistory reads the newest journal rows
func loadHistory(h History, limit int) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		h.Flush()
		runs, err := h.Recent(limit)
		return historyMsg{runs: runs, err: err}
	}
}

// copyLog puts the whole log on the system clipboard
func copyLog(entries []model.LogEntry) tea.Cmd {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return func() tea.Msg {
		if len(lines) == 0 {
			return statusMsg("Log is empty")
		}
		if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
			return statusMsg("Copy failed: " + err.Error())
		}
		return statusMsg(fmt.Sprintf("Copied %d lines to clipboard", len(lines)))
	}
}

// isShutdown reports errors that only mean the program is exiting
func isShutdown(err error) bool {
	return errors.Is(err, logsink.ErrClosed) || errors.Is(err, context.Canceled)
}
