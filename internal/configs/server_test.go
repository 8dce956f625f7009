package configs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Address)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.DataDelay)
	assert.Nil(t, cfg.Buckets)
	assert.False(t, cfg.HostMetrics)
	assert.False(t, cfg.RuntimeMetrics)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsDevelopment())
}

func TestNewServerConfig_OptionError(t *testing.T) {
	failing := func(cfg *ServerConfig) error { return errors.New("bad option") }

	cfg, err := NewServerConfig(WithAddress(":1"), failing)
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "bad option")
}

func TestWithAddress(t *testing.T) {
	cfg := &ServerConfig{}
	opt := WithAddress("", "  ", "localhost:9090")
	err := opt(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "localhost:9090", cfg.Address)

	// No valid address, should keep current value
	cfg = &ServerConfig{Address: ":5000"}
	opt = WithAddress("", "  ")
	err = opt(cfg)
	assert.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Address)
}

func TestWithEnvironment(t *testing.T) {
	cfg := &ServerConfig{}
	require.NoError(t, WithEnvironment("", "Development")(cfg))
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
}

func TestWithVersion(t *testing.T) {
	cfg := &ServerConfig{Version: "1.0.0"}
	require.NoError(t, WithVersion("", "2.1.0")(cfg))
	assert.Equal(t, "2.1.0", cfg.Version)
}

func TestWithLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		levels  []string
		want    string
		wantErr bool
	}{
		{name: "first non-empty wins", levels: []string{"", "debug", "warn"}, want: "debug"},
		{name: "nothing set keeps current", levels: []string{""}, want: "info"},
		{name: "invalid level", levels: []string{"loud"}, want: "info", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{LogLevel: "info"}
			err := WithLogLevel(tt.levels...)(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, cfg.LogLevel)
		})
	}
}

func TestWithDataDelay(t *testing.T) {
	cfg := &ServerConfig{DataDelay: time.Second}
	require.NoError(t, WithDataDelay(0)(cfg))
	assert.Equal(t, time.Duration(0), cfg.DataDelay)

	assert.Error(t, WithDataDelay(-time.Millisecond)(cfg))
}

func TestWithBuckets(t *testing.T) {
	cfg := &ServerConfig{}
	require.NoError(t, WithBuckets(nil)(cfg))
	assert.Nil(t, cfg.Buckets)

	require.NoError(t, WithBuckets([]float64{0.1, 1})(cfg))
	assert.Equal(t, []float64{0.1, 1}, cfg.Buckets)
}

func TestWithHostMetrics(t *testing.T) {
	cfg := &ServerConfig{HostMetricsInterval: 15 * time.Second}
	require.NoError(t, WithHostMetrics(true, 0)(cfg))
	assert.True(t, cfg.HostMetrics)
	assert.Equal(t, 15*time.Second, cfg.HostMetricsInterval)

	require.NoError(t, WithHostMetrics(true, time.Second)(cfg))
	assert.Equal(t, time.Second, cfg.HostMetricsInterval)
}

func TestWithRuntimeMetrics(t *testing.T) {
	cfg := &ServerConfig{}
	require.NoError(t, WithRuntimeMetrics(true)(cfg))
	assert.True(t, cfg.RuntimeMetrics)
}

func TestWithShutdownTimeout(t *testing.T) {
	cfg := &ServerConfig{}
	opt := WithShutdownTimeout(0, -1, 3*time.Second)
	require.NoError(t, opt(cfg))
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}
