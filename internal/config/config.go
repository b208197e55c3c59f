// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds runtime configuration, loaded from environment variables.
type Config struct {
	// Samples per stored window of every trace cache
	BaseWindow uint64
	// Upper bound on the count of windows one HTTP request may ask for
	MaxWindows int

	Addr            string
	ShutdownTimeout time.Duration

	// trace, debug, info, warn, error or disabled
	LogLevel string

	// Columns of the ASCII overview
	OverviewWidth int
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		BaseWindow: uint64(envInt("AUDWAVE_BASE_WINDOW", 64)),
		MaxWindows: envInt("AUDWAVE_MAX_WINDOWS", 4096),

		Addr:            envStr("AUDWAVE_ADDR", ":8080"),
		ShutdownTimeout: time.Duration(envInt("AUDWAVE_SHUTDOWN_TIMEOUT", 5)) * time.Second,

		LogLevel: envStr("AUDWAVE_LOG_LEVEL", "info"),

		OverviewWidth: envInt("AUDWAVE_OVERVIEW_WIDTH", 80),
	}
}

// Validate reports the first setting that the rest of the program would reject.
func (c Config) Validate() error {
	switch {
	case c.BaseWindow < 2:
		return fmt.Errorf("%w: base window %d < 2", ErrInvalid, c.BaseWindow)
	case c.MaxWindows < 1:
		return fmt.Errorf("%w: max windows %d < 1", ErrInvalid, c.MaxWindows)
	case c.OverviewWidth < 1:
		return fmt.Errorf("%w: overview width %d < 1", ErrInvalid, c.OverviewWidth)
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown timeout %s", ErrInvalid, c.ShutdownTimeout)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
