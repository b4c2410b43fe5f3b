package storage

import (
	"context"
	"errors"

	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/runner"
)

// RecordingExecutor journals every request it forwards
type RecordingExecutor struct {
	next    runner.Executor
	journal *Journal
	onRun   func(model.CommandRun)
}

// NewRecordingExecutor wraps next. onRun, when set, is called after each run
// is queued; the TUI uses it to refresh the history panel.
func NewRecordingExecutor(next runner.Executor, journal *Journal, onRun func(model.CommandRun)) *RecordingExecutor {
	return &RecordingExecutor{next: next, journal: journal, onRun: onRun}
}

// Run forwards req and records the outcome
func (r *RecordingExecutor) Run(ctx context.Context, req runner.Request) runner.Result {
	res := r.next.Run(ctx, req)

	run := model.CommandRun{
		Command:  req.Command,
		Started:  res.Started,
		Duration: res.Duration,
		Outcome:  Outcome(req, res),
		Bytes:    len(res.Output),
	}
	r.journal.Write(&run)
	if r.onRun != nil {
		r.onRun(run)
	}
	return res
}

// Outcome classifies a result for the journal
func Outcome(req runner.Request, res runner.Result) string {
	switch {
	case errors.Is(res.Err, runner.ErrCommandTooLong):
		return "too-long"
	case errors.Is(res.Err, runner.ErrPipe):
		return "pipe"
	case errors.Is(res.Err, runner.ErrSpawn):
		return "spawn"
	case res.TimedOut, errors.Is(res.Err, runner.ErrTimeout):
		return "timeout"
	case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, context.DeadlineExceeded):
		return "cancelled"
	case !req.Wait:
		return "detached"
	case res.ExitCode != 0:
		return "exit"
	default:
		return "ok"
	}
}

var _ runner.Executor = (*RecordingExecutor)(nil)
