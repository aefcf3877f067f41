package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort          = 5000
	DefaultFibIterations = 500000
)

// Environment variable names. There is no config file; the agent is meant
// to be configured the way container platforms configure things.
const (
	EnvPort          = "PORT"
	EnvFibIterations = "FIB_ITERATIONS"
)

// Config holds the agent's startup configuration. Nothing here changes at
// runtime and nothing persists across restarts.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// FibIterations is the default iteration budget for start requests
	// that do not supply their own.
	FibIterations int64
}

// FromEnv reads configuration from the process environment, applying
// defaults for unset variables. Malformed values are returned as errors
// rather than silently replaced; the caller decides whether that is fatal.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          DefaultPort,
		FibIterations: DefaultFibIterations,
	}

	if v := os.Getenv(EnvPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: invalid %s %q", EnvPort, v)
		}
		if p < 1 || p > 65535 {
			return Config{}, errors.Errorf("config: %s out of range: %d", EnvPort, p)
		}
		cfg.Port = p
	}

	if v := os.Getenv(EnvFibIterations); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: invalid %s %q", EnvFibIterations, v)
		}
		if n <= 0 {
			return Config{}, errors.Errorf("config: %s must be positive, got %d", EnvFibIterations, n)
		}
		cfg.FibIterations = n
	}

	return cfg, nil
}
