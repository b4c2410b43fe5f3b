package model

import "time"

// CommandRun is a finished external command as the history panel shows it
type CommandRun struct {
	ID       string
	Command  string
	Started  time.Time
	Duration time.Duration
	Outcome  string // "ok", "exit", "timeout", "cancelled", "too-long", "pipe", "spawn", "detached"
	Bytes    int
}
