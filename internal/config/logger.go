package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevelEnv names the variable holding the log level (debug, info, warn, error).
const LogLevelEnv = "STARFALL_LOG_LEVEL"

// NewLogger returns a logger writing to stderr at the level named by
// STARFALL_LOG_LEVEL. Unknown levels fall back to info.
func NewLogger(prefix string) *log.Logger {
	return newLogger(os.Stderr, prefix, GetEnv(LogLevelEnv, "info"))
}

func newLogger(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// LogFileEnv names the variable holding a log file path. The local game
// shares the terminal with stderr, so it only logs to a file.
const LogFileEnv = "STARFALL_LOG_FILE"

// NewFileLogger returns a logger appending to path and a func closing the
// file. An empty path discards all output.
func NewFileLogger(path, prefix string) (*log.Logger, func() error, error) {
	level := GetEnv(LogLevelEnv, "info")
	if path == "" {
		return newLogger(io.Discard, prefix, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, prefix, level), f.Close, nil
}
