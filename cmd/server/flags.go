package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/sbilibin2017/demoapp/internal/configs"
)

// flagValues holds raw command-line values before environment overrides.
type flagValues struct {
	addr                string
	env                 string
	logLevel            string
	dataDelay           time.Duration
	buckets             []float64
	hostMetrics         bool
	hostMetricsInterval time.Duration
	runtimeMetrics      bool
	shutdownTimeout     time.Duration
}

// newFlagSet registers the server flags on a fresh flag set.
func newFlagSet(v *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.StringVarP(&v.addr, "address", "a", ":5000", "address to listen on")
	fs.StringVarP(&v.env, "env", "e", configs.EnvProduction, "deployment environment")
	fs.StringVarP(&v.logLevel, "log-level", "l", "", "log level (default info, debug in development)")
	fs.DurationVar(&v.dataDelay, "data-delay", 100*time.Millisecond, "simulated processing time of /api/data")
	fs.Float64SliceVar(&v.buckets, "buckets", nil, "request duration histogram buckets in seconds")
	fs.BoolVar(&v.hostMetrics, "host-metrics", false, "export host CPU and memory gauges")
	fs.DurationVar(&v.hostMetricsInterval, "host-metrics-interval", 15*time.Second, "host metrics sampling interval")
	fs.BoolVar(&v.runtimeMetrics, "runtime-metrics", false, "export Go runtime and process metrics")
	fs.DurationVar(&v.shutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
	return fs
}

// parseFlags parses args and applies environment overrides. Environment
// variables take priority over flags.
func parseFlags(args []string, getenv func(string) string) (*configs.ServerConfig, error) {
	var v flagValues
	fs := newFlagSet(&v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if len(fs.Args()) > 0 {
		return nil, errors.New("unknown flags or arguments are provided")
	}

	addrs := []string{getenv("ADDRESS")}
	if port := getenv("PORT"); port != "" {
		addrs = append(addrs, ":"+port)
	}
	addrs = append(addrs, v.addr)

	if env := getenv("DATA_DELAY"); env != "" {
		d, err := time.ParseDuration(env)
		if err != nil {
			return nil, fmt.Errorf("invalid DATA_DELAY env value: %w", err)
		}
		v.dataDelay = d
	}

	var err error
	if v.hostMetrics, err = boolEnv(getenv, "HOST_METRICS", v.hostMetrics); err != nil {
		return nil, err
	}
	if v.runtimeMetrics, err = boolEnv(getenv, "RUNTIME_METRICS", v.runtimeMetrics); err != nil {
		return nil, err
	}

	env := v.env
	for _, name := range []string{"FLASK_ENV", "APP_ENV"} {
		if e := getenv(name); e != "" {
			env = e
		}
	}
	defaultLevel := "info"
	if strings.EqualFold(env, configs.EnvDevelopment) {
		defaultLevel = "debug"
	}

	return configs.NewServerConfig(
		configs.WithAddress(addrs...),
		configs.WithEnvironment(env),
		configs.WithVersion(getenv("APP_VERSION"), buildVersionOrEmpty()),
		configs.WithLogLevel(getenv("LOG_LEVEL"), v.logLevel, defaultLevel),
		configs.WithDataDelay(v.dataDelay),
		configs.WithBuckets(v.buckets),
		configs.WithHostMetrics(v.hostMetrics, v.hostMetricsInterval),
		configs.WithRuntimeMetrics(v.runtimeMetrics),
		configs.WithShutdownTimeout(v.shutdownTimeout),
	)
}

// boolEnv returns the boolean value of the named variable, or fallback when unset.
func boolEnv(getenv func(string) string, name string, fallback bool) (bool, error) {
	env := getenv(name)
	if env == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(env)
	if err != nil {
		return false, fmt.Errorf("invalid %s env value, must be true or false", name)
	}
	return b, nil
}

// buildVersionOrEmpty returns the linked build version, or "" when unset.
func buildVersionOrEmpty() string {
	if buildVersion == "N/A" {
		return ""
	}
	return buildVersion
}

