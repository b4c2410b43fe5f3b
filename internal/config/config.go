// Package config holds the settings shared by the TUI and the CLI commands.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/runner"
)

// Config is populated from command line flags only
type Config struct {
	ToolsDir           string
	Timeout            time.Duration
	AutoDetectInterval time.Duration
	LogLevel           string
	LogFile            string
	HistorySize        int
}

// DefaultConfig returns the settings used when no flags are given
func DefaultConfig() Config {
	return Config{
		ToolsDir:           ".",
		Timeout:            runner.DefaultTimeout,
		AutoDetectInterval: 5 * time.Second,
		LogLevel:           "info",
		HistorySize:        20,
	}
}

// Validate checks the flag values
func (c Config) Validate() error {
	if strings.TrimSpace(c.ToolsDir) == "" {
		return fmt.Errorf("config: tools directory is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.AutoDetectInterval < time.Second {
		return fmt.Errorf("config: auto-detect interval must be at least 1s, got %s", c.AutoDetectInterval)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("config: history size must be at least 1, got %d", c.HistorySize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
