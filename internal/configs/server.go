package configs

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Environment names.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// ServerConfig holds configuration settings for the server.
type ServerConfig struct {
	Address             string        `json:"address"`               // Listen address
	Environment         string        `json:"environment"`           // Deployment environment name
	Version             string        `json:"version"`               // Reported build version
	LogLevel            string        `json:"log_level"`             // zap level name
	DataDelay           time.Duration `json:"data_delay"`            // Simulated processing time of /api/data
	Buckets             []float64     `json:"buckets"`               // Request duration buckets, nil for defaults
	HostMetrics         bool          `json:"host_metrics"`          // Export host CPU and memory gauges
	HostMetricsInterval time.Duration `json:"host_metrics_interval"` // Host sampling period
	RuntimeMetrics      bool          `json:"runtime_metrics"`       // Export Go runtime and process metrics
	ShutdownTimeout     time.Duration `json:"shutdown_timeout"`      // Graceful shutdown bound
}

// ServerConfigOpt defines a function type for applying options to ServerConfig.
type ServerConfigOpt func(*ServerConfig) error

// NewServerConfig creates a ServerConfig with defaults and applies the given options.
// Returns an error if any option returns an error.
func NewServerConfig(opts ...ServerConfigOpt) (*ServerConfig, error) {
	cfg := &ServerConfig{
		Address:             ":5000",
		Environment:         EnvProduction,
		Version:             "1.0.0",
		LogLevel:            "info",
		DataDelay:           100 * time.Millisecond,
		HostMetricsInterval: 15 * time.Second,
		ShutdownTimeout:     5 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (cfg *ServerConfig) IsDevelopment() bool {
	return cfg.Environment == EnvDevelopment
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values []string) (string, bool) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// WithAddress returns a ServerConfigOpt that sets the Address field
// to the first non-empty string provided in addrs.
func WithAddress(addrs ...string) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		if addr, ok := firstNonEmpty(addrs); ok {
			cfg.Address = addr
		}
		return nil
	}
}

// WithEnvironment returns a ServerConfigOpt that sets the Environment field
// to the first non-empty string provided in envs.
func WithEnvironment(envs ...string) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		if env, ok := firstNonEmpty(envs); ok {
			cfg.Environment = strings.ToLower(env)
		}
		return nil
	}
}

// WithVersion returns a ServerConfigOpt that sets the Version field
// to the first non-empty string provided in versions.
func WithVersion(versions ...string) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		if v, ok := firstNonEmpty(versions); ok {
			cfg.Version = v
		}
		return nil
	}
}

// WithLogLevel returns a ServerConfigOpt that sets the LogLevel field
// to the first non-empty string provided in levels. The level must be
// a valid zap level name.
func WithLogLevel(levels ...string) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		level, ok := firstNonEmpty(levels)
		if !ok {
			return nil
		}
		if _, err := zapcore.ParseLevel(level); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		cfg.LogLevel = level
		return nil
	}
}

// WithDataDelay returns a ServerConfigOpt that sets the DataDelay field.
// Zero disables the delay.
func WithDataDelay(delay time.Duration) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		if delay < 0 {
			return fmt.Errorf("data delay must not be negative, got %s", delay)
		}
		cfg.DataDelay = delay
		return nil
	}
}

// WithBuckets returns a ServerConfigOpt that sets the request duration
// buckets. An empty slice keeps the defaults.
func WithBuckets(buckets []float64) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		if len(buckets) > 0 {
			cfg.Buckets = buckets
		}
		return nil
	}
}

// WithHostMetrics returns a ServerConfigOpt that enables host gauges sampled
// every interval. A non-positive interval keeps the current one.
func WithHostMetrics(enabled bool, interval time.Duration) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		cfg.HostMetrics = enabled
		if interval > 0 {
			cfg.HostMetricsInterval = interval
		}
		return nil
	}
}

// WithRuntimeMetrics returns a ServerConfigOpt that sets the RuntimeMetrics field.
func WithRuntimeMetrics(enabled bool) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		cfg.RuntimeMetrics = enabled
		return nil
	}
}

// WithShutdownTimeout returns a ServerConfigOpt that sets the ShutdownTimeout
// field to the first positive duration provided in timeouts.
func WithShutdownTimeout(timeouts ...time.Duration) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		for _, timeout := range timeouts {
			if timeout > 0 {
				cfg.ShutdownTimeout = timeout
				break
			}
		}
		return nil
	}
}
