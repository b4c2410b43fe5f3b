package device

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/runner"
	"github.com/rusenback/devicemgr/internal/tools"
)

// Config holds the device client settings
type Config struct {
	Tools   tools.Set
	Timeout time.Duration
	Models  []model.KnownModel
}

// DefaultConfig uses the built-in model table and the runner timeout
func DefaultConfig(set tools.Set) Config {
	return Config{
		Tools:   set,
		Timeout: runner.DefaultTimeout,
		Models:  KnownModels(),
	}
}

// Client drives adb and fastboot through an Executor and reports to the log
type Client struct {
	exec    runner.Executor
	sink    logsink.Poster
	log     zerolog.Logger
	timeout time.Duration
	models  []model.KnownModel

	mu    sync.RWMutex
	tools tools.Set
}

// NewClient creates a device client
func NewClient(cfg Config, exec runner.Executor, sink logsink.Poster, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = runner.DefaultTimeout
	}
	if cfg.Models == nil {
		cfg.Models = KnownModels()
	}
	return &Client{
		exec:    exec,
		sink:    sink,
		log:     log.With().Str("module", "device").Logger(),
		timeout: cfg.Timeout,
		models:  cfg.Models,
		tools:   cfg.Tools,
	}
}

// Tools returns the currently located tools
func (c *Client) Tools() tools.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tools
}

// SetTools swaps the located tools, e.g. after the tools directory changed
func (c *Client) SetTools(set tools.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tools = set
}

// Models returns the model table in use
func (c *Client) Models() []model.KnownModel {
	return c.models
}

func (c *Client) request(command string) runner.Request {
	return runner.Request{Command: command, Wait: true, Timeout: c.timeout}
}
