package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// MaxCommandLength bounds the command text; longer commands are rejected before spawn
	MaxCommandLength = 1024

	// DefaultTimeout is how long Run waits for a child to exit
	DefaultTimeout = 10 * time.Second

	// drainGrace is how long the reader may keep going after the child has exited.
	// Daemons forked by the child (adb start-server) can inherit the write end.
	drainGrace = 500 * time.Millisecond
)

// Result texts. Callers display them verbatim.
const (
	TextCommandTooLong = "Error: Command too long"
	TextPipeFailed     = "Error: Failed to create pipe"
	TextSpawnFailed    = "Error: Failed to execute command"
)

var (
	ErrCommandTooLong = errors.New("command too long")
	ErrPipe           = errors.New("failed to create pipe")
	ErrSpawn          = errors.New("failed to execute command")
	ErrTimeout        = errors.New("command timed out")
)

// Request describes one external command invocation
type Request struct {
	Command string
	Wait    bool
	Timeout time.Duration
}

// NewRequest returns a waiting request with the default timeout
func NewRequest(command string) Request {
	return Request{Command: command, Wait: true, Timeout: DefaultTimeout}
}

// Detached returns a fire-and-forget request
func Detached(command string) Request {
	return Request{Command: command}
}

// Result is the captured outcome of a Request
type Result struct {
	Command  string
	Output   string // merged stdout+stderr, or one of the Text* failure strings
	Err      error
	TimedOut bool
	ExitCode int // -1 when the process never ran to completion
	Started  time.Time
	Duration time.Duration
}

// Failed reports whether the command could not be run at all
func (r Result) Failed() bool {
	return errors.Is(r.Err, ErrCommandTooLong) || errors.Is(r.Err, ErrPipe) || errors.Is(r.Err, ErrSpawn)
}

// Executor runs requests. Implemented by Runner, FakeExecutor and the storage journal.
type Executor interface {
	Run(ctx context.Context, req Request) Result
}

// Config holds the runner settings
type Config struct {
	Shell     []string // shell argv prefix, the command is appended as last arg
	EOL       string   // line ending applied to captured output
	Timeout   time.Duration
	MaxLength int
}

// DefaultConfig returns settings for the host platform
func DefaultConfig() Config {
	cfg := Config{
		Shell:     []string{"/bin/sh", "-c"},
		EOL:       "\n",
		Timeout:   DefaultTimeout,
		MaxLength: MaxCommandLength,
	}
	if runtime.GOOS == "windows" {
		cfg.Shell = []string{"cmd.exe", "/c"}
		cfg.EOL = "\r\n"
	}
	return cfg
}

// Runner spawns commands through the host shell and captures their output
type Runner struct {
	cfg  Config
	log  zerolog.Logger
	pipe func() (*os.File, *os.File, error)
}

// New creates a Runner. Zero fields in cfg fall back to DefaultConfig.
func New(cfg Config, log zerolog.Logger) *Runner {
	def := DefaultConfig()
	if len(cfg.Shell) == 0 {
		cfg.Shell = def.Shell
	}
	if cfg.EOL == "" {
		cfg.EOL = def.EOL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = def.MaxLength
	}
	return &Runner{
		cfg:  cfg,
		log:  log.With().Str("module", "runner").Logger(),
		pipe: os.Pipe,
	}
}

// Run executes req.Command and returns its captured output. It never panics
// and never returns a truncated command; failures come back as Result text.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	res := Result{Command: req.Command, ExitCode: -1, Started: time.Now()}

	if len(req.Command) >= r.cfg.MaxLength {
		return r.fail(res, ErrCommandTooLong, TextCommandTooLong)
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		r.log.Debug().Err(err).Str("cmd", req.Command).Msg("command not started")
		return res
	}

	pr, pw, err := r.pipe()
	if err != nil {
		return r.fail(res, fmt.Errorf("%w: %v", ErrPipe, err), TextPipeFailed)
	}

	args := append(append([]string{}, r.cfg.Shell[1:]...), req.Command)
	cmd := exec.Command(r.cfg.Shell[0], args...)
	cmd.Stdout = pw
	cmd.Stderr = pw
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return r.fail(res, fmt.Errorf("%w: %v", ErrSpawn, err), TextSpawnFailed)
	}
	// The child holds its own copy now
	pw.Close()

	if !req.Wait {
		go func() {
			io.Copy(io.Discard, pr)
			pr.Close()
			cmd.Wait()
		}()
		res.Duration = time.Since(res.Started)
		r.log.Debug().Str("cmd", req.Command).Int("pid", cmd.Process.Pid).Msg("detached")
		return res
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.cfg.Timeout
	}

	out := &lockedBuffer{}
	readDone := make(chan struct{})
	go func() {
		io.Copy(out, pr)
		close(readDone)
	}()

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr error
	select {
	case waitErr = <-waitDone:
	case <-timer.C:
		res.TimedOut = true
		res.Err = ErrTimeout
		killProcess(cmd)
		waitErr = <-waitDone
	case <-ctx.Done():
		res.Err = ctx.Err()
		killProcess(cmd)
		waitErr = <-waitDone
	}

	select {
	case <-readDone:
	case <-time.After(drainGrace):
		pr.Close()
		select {
		case <-readDone:
		case <-time.After(drainGrace):
		}
	}
	pr.Close()

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		res.ExitCode = 0
	case errors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	}

	res.Output = Normalize(out.String(), r.cfg.EOL)
	res.Duration = time.Since(res.Started)

	ev := r.log.Debug()
	if res.Err != nil {
		ev = r.log.Warn().Err(res.Err)
	}
	ev.Str("cmd", req.Command).
		Int("exit", res.ExitCode).
		Int("bytes", len(res.Output)).
		Dur("took", res.Duration).
		Msg("command finished")

	return res
}

// fail builds a failure result without touching any process
func (r *Runner) fail(res Result, err error, text string) Result {
	res.Err = err
	res.Output = text
	res.Duration = time.Since(res.Started)
	r.log.Warn().Err(err).Int("len", len(res.Command)).Msg("command not run")
	return res
}

// lockedBuffer lets Run snapshot output while a late reader may still write
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ Executor = (*Runner)(nil)
