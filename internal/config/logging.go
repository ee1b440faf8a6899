package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr logger with timestamps and the given prefix.
// Its level comes from BALLWORLD_LOG_LEVEL and defaults to info.
func NewLogger(prefix string) *log.Logger {
	return NewLoggerTo(os.Stderr, prefix)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	name := GetEnv("BALLWORLD_LOG_LEVEL", "info")
	level, err := log.ParseLevel(name)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", name)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
