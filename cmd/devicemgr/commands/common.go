package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/config"
	"github.com/rusenback/devicemgr/internal/device"
	"github.com/rusenback/devicemgr/internal/logging"
	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/runner"
	"github.com/rusenback/devicemgr/internal/storage"
	"github.com/rusenback/devicemgr/internal/tools"
)

// app wires the shared components. The caller must Close it.
type app struct {
	log     zerolog.Logger
	sink    *logsink.Sink
	journal *storage.Journal
	client  *device.Client
	closers []io.Closer
}

// buildApp constructs everything a command needs. Diagnostics go to the log
// file when one is configured, otherwise to diag (nil discards).
func buildApp(cfg config.Config, diag io.Writer) (*app, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log, logCloser, err := logging.New(logging.Options{Level: level, File: cfg.LogFile, Out: diag})
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	journal, err := storage.NewJournal(log)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	r := runner.New(runner.Config{Timeout: cfg.Timeout}, log)
	exec := storage.NewRecordingExecutor(r, journal, func(run model.CommandRun) {
		log.Debug().Str("id", run.ID).Str("outcome", run.Outcome).Dur("took", run.Duration).Msg("journaled")
	})

	set := tools.Locate(cfg.ToolsDir)
	sink := logsink.New(log)
	client := device.NewClient(device.Config{
		Tools:   set,
		Timeout: cfg.Timeout,
		Models:  device.KnownModels(),
	}, exec, sink, log)

	log.Info().Str("tools", cfg.ToolsDir).Bool("adb", set.HasADB()).Bool("fastboot", set.HasFastboot()).Msg("starting")

	return &app{
		log:     log,
		sink:    sink,
		journal: journal,
		client:  client,
		closers: []io.Closer{journal, logCloser},
	}, nil
}

// printLog streams the log sink to w until the returned stop is called.
// stop closes the sink and waits for the last entries to be written.
func (a *app) printLog(ctx context.Context, w io.Writer) (stop func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := logsink.Pump(ctx, a.sink, logsink.NewWriterSurface(w)); err != nil {
			a.log.Debug().Err(err).Msg("log pump stopped")
		}
	}()
	return func() {
		a.sink.Close()
		<-done
	}
}

// Close releases the journal and the log file
func (a *app) Close() {
	for _, c := range a.closers {
		c.Close()
	}
}
