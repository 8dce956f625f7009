package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/sbilibin2017/demoapp/internal/metrics"
)

// Host gauge names.
const (
	HostMemoryTotalName     = "host_memory_total_bytes"
	HostMemoryAvailableName = "host_memory_available_bytes"
	HostCPUUsageName        = "host_cpu_usage_percent"
)

// HostStats is one sample of host resource usage.
type HostStats struct {
	MemoryTotal     uint64
	MemoryAvailable uint64
	CPUPercent      float64
}

//go:generate mockgen -source=host.go -destination=host_mock.go -package=worker

// HostSampler takes a host resource sample.
type HostSampler interface {
	Sample(ctx context.Context) (HostStats, error)
}

// GaugeSetter sets the current value of an unlabeled gauge.
type GaugeSetter interface {
	Set(value float64, labelValues ...string)
}

// SystemSampler reads host statistics through gopsutil.
type SystemSampler struct{}

// Sample returns memory totals and CPU utilisation since the previous call.
func (SystemSampler) Sample(ctx context.Context) (HostStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return HostStats{}, fmt.Errorf("read memory stats: %w", err)
	}

	// interval 0 compares against the previous call
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return HostStats{}, fmt.Errorf("read cpu stats: %w", err)
	}

	stats := HostStats{
		MemoryTotal:     vm.Total,
		MemoryAvailable: vm.Available,
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	return stats, nil
}

// HostMetricsWorker periodically copies host samples into gauges.
type HostMetricsWorker struct {
	sampler   HostSampler
	interval  time.Duration
	total     GaugeSetter
	available GaugeSetter
	cpu       GaugeSetter
	log       *zap.Logger
}

// NewHostMetricsWorker declares the host gauges in reg and returns a worker
// sampling every interval.
func NewHostMetricsWorker(
	reg *metrics.Registry,
	sampler HostSampler,
	interval time.Duration,
	log *zap.Logger,
) (*HostMetricsWorker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("host metrics interval must be positive, got %s", interval)
	}

	total, err := reg.RegisterGauge(HostMemoryTotalName, "Total host memory in bytes")
	if err != nil {
		return nil, err
	}
	available, err := reg.RegisterGauge(HostMemoryAvailableName, "Available host memory in bytes")
	if err != nil {
		return nil, err
	}
	cpuUsage, err := reg.RegisterGauge(HostCPUUsageName, "Host CPU usage in percent")
	if err != nil {
		return nil, err
	}

	return newHostMetricsWorker(sampler, interval, total, available, cpuUsage, log), nil
}

func newHostMetricsWorker(
	sampler HostSampler,
	interval time.Duration,
	total, available, cpu GaugeSetter,
	log *zap.Logger,
) *HostMetricsWorker {
	return &HostMetricsWorker{
		sampler:   sampler,
		interval:  interval,
		total:     total,
		available: available,
		cpu:       cpu,
		log:       log,
	}
}

// Start samples once immediately and then on every tick until ctx is done.
// Failed samples are logged and leave the gauges at their last value.
func (w *HostMetricsWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.collect(ctx)
		}
	}
}

func (w *HostMetricsWorker) collect(ctx context.Context) {
	stats, err := w.sampler.Sample(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Warn("host sample failed", zap.Error(err))
		}
		return
	}

	w.total.Set(float64(stats.MemoryTotal))
	w.available.Set(float64(stats.MemoryAvailable))
	w.cpu.Set(stats.CPUPercent)
}
