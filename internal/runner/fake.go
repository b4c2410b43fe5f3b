package runner

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FakeExecutor records requests and returns canned results.
// Exported for the device and storage tests.
type FakeExecutor struct {
	mu        sync.Mutex
	Calls     []Request
	responses map[string]Result
	fallback  Result
}

// NewFakeExecutor creates a FakeExecutor whose fallback is empty output
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		responses: make(map[string]Result),
		fallback:  Result{ExitCode: 0},
	}
}

// SetOutput configures the output returned for an exact command string
func (f *FakeExecutor) SetOutput(command, output string) {
	f.SetResult(command, Result{Output: output})
}

// SetResult configures the full result for an exact command string
func (f *FakeExecutor) SetResult(command string, res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[command] = res
}

// SetFallback sets the result for unmatched commands
func (f *FakeExecutor) SetFallback(res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = res
}

// Run records the call and returns the matching result
func (f *FakeExecutor) Run(_ context.Context, req Request) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, req)

	res, ok := f.responses[req.Command]
	if !ok {
		res = f.fallback
	}
	res.Command = req.Command
	res.Started = time.Now()
	return res
}

// Commands returns the recorded command strings in call order
func (f *FakeExecutor) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Command
	}
	return out
}

// CallCount returns how many recorded commands start with prefix
func (f *FakeExecutor) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Command, prefix) {
			n++
		}
	}
	return n
}

var _ Executor = (*FakeExecutor)(nil)
