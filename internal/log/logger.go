// Package log builds the structured loggers used across the toolkit.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// LevelEnv selects the minimum level (debug, info, warn, error).
const LevelEnv = "GODOG_PW_LOG_LEVEL"

// DebugEnv forces debug level when set to any non-empty value.
const DebugEnv = "DEBUG"

// Options configures a logger.
type Options struct {
	Level  string
	Output io.Writer
	Prefix string
}

// OptionsFromEnv returns options for stderr with the level taken from the environment.
func OptionsFromEnv(prefix string) Options {
	opts := Options{
		Level:  "info",
		Output: os.Stderr,
		Prefix: prefix,
	}
	if level := os.Getenv(LevelEnv); level != "" {
		opts.Level = level
	}
	if os.Getenv(DebugEnv) != "" {
		opts.Level = "debug"
	}
	return opts
}

// ParseLevel converts a level name to a charmlog.Level. Unknown names map to info.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// NewWithOptions creates a logger from opts.
func NewWithOptions(opts Options) *charmlog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return charmlog.NewWithOptions(out, charmlog.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		TimeFormat:      time.TimeOnly,
		ReportTimestamp: true,
	})
}

// New creates a stderr logger with the given prefix, configured from the environment.
func New(prefix string) *charmlog.Logger {
	return NewWithOptions(OptionsFromEnv(prefix))
}

var (
	defaultOnce   sync.Once
	defaultLogger *charmlog.Logger
)

// Default returns the shared unprefixed logger.
func Default() *charmlog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("")
	})
	return defaultLogger
}
