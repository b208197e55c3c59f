// SPDX-License-Identifier: EPL-2.0

// Package logging hands out scoped pion leveled loggers sharing one factory.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pion/logging"
)

var (
	mu            sync.Mutex
	loggerFactory = newFactory(os.Stderr, logging.LogLevelInfo)
)

func newFactory(w io.Writer, level logging.LogLevel) *logging.DefaultLoggerFactory {
	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: level,
		ScopeLevels:     make(map[string]logging.LogLevel),
	}
}

// NewLogger returns a logger for scope, e.g. "audwave/waveform".
func NewLogger(scope string) logging.LeveledLogger {
	mu.Lock()
	defer mu.Unlock()

	return loggerFactory.NewLogger(scope)
}

// Configure replaces the shared factory. Loggers created earlier keep
// their settings.
func Configure(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	loggerFactory = newFactory(w, ParseLevel(level))
}

// ParseLevel maps a level name to a pion log level, defaulting to info.
func ParseLevel(level string) logging.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "disabled", "off", "none":
		return logging.LogLevelDisabled
	case "error":
		return logging.LogLevelError
	case "warn", "warning":
		return logging.LogLevelWarn
	case "debug":
		return logging.LogLevelDebug
	case "trace":
		return logging.LogLevelTrace
	default:
		return logging.LogLevelInfo
	}
}

// Discard returns a logger that writes nothing.
func Discard() logging.LeveledLogger {
	return logging.NewDefaultLeveledLoggerForScope("", logging.LogLevelDisabled, io.Discard)
}
