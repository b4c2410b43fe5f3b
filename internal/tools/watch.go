package tools

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch re-runs Locate whenever the tools directory changes and calls
// onChange if the result differs from the previous one. It returns when ctx
// is done.
func Watch(ctx context.Context, dir string, log zerolog.Logger, onChange func(Set)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	log = log.With().Str("module", "tools").Logger()
	current := Locate(dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Chmod) {
				continue
			}
			next := Locate(dir)
			if next == current {
				continue
			}
			log.Debug().Str("file", ev.Name).Bool("adb", next.HasADB()).
				Bool("fastboot", next.HasFastboot()).Msg("tools changed")
			current = next
			onChange(next)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// Changes returns the log lines describing the difference between two sets
func Changes(prev, next Set) []string {
	var lines []string
	if !prev.HasADB() && next.HasADB() {
		lines = append(lines, "ADB detected: "+next.ADB)
	}
	if prev.HasADB() && !next.HasADB() {
		lines = append(lines, "WARNING: "+Executable(ADBName)+" removed from "+next.Dir+"!")
	}
	if !prev.HasFastboot() && next.HasFastboot() {
		lines = append(lines, "Fastboot detected: "+next.Fastboot)
	}
	if prev.HasFastboot() && !next.HasFastboot() {
		lines = append(lines, "WARNING: "+Executable(FastbootName)+" removed from "+next.Dir+"!")
	}
	return lines
}
