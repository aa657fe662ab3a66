package observe

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats publishes host health gauges next to the dispatch metrics, so a
// scrape of a serving machine also shows what the process is running on.
type Stats struct {
	cpuUsage prometheus.Gauge
	memUsed  prometheus.Gauge
	memTotal prometheus.Gauge

	interval time.Duration
	logger   *log.Logger
}

// NewStats registers the host gauges with reg
func NewStats(reg prometheus.Registerer, interval time.Duration, logger *log.Logger) *Stats {
	s := &Stats{
		cpuUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "switchcase_host_cpu_usage_percent",
			Help: "Host CPU usage percentage (0-100)",
		}),
		memUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "switchcase_host_memory_used_bytes",
			Help: "Host memory in use",
		}),
		memTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "switchcase_host_memory_total_bytes",
			Help: "Host memory total",
		}),
		interval: interval,
		logger:   logger,
	}

	reg.MustRegister(s.cpuUsage, s.memUsed, s.memTotal)

	return s
}

// Start samples on the configured interval until ctx is cancelled
func (s *Stats) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

// sample refreshes the gauges; a failed probe keeps the previous value
func (s *Stats) sample() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.cpuUsage.Set(percents[0])
	} else if err != nil {
		s.logger.Printf("cpu sample failed: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.memUsed.Set(float64(vm.Used))
		s.memTotal.Set(float64(vm.Total))
	} else {
		s.logger.Printf("memory sample failed: %v", err)
	}
}
