package workers

import (
	"context"
	"log/slog"
	"os"
	"pop-lab/observability"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessMetricsWorker samples CPU and memory of the running mixer into the Prometheus gauges.
type ProcessMetricsWorker struct {
	log            *slog.Logger
	metrics        *observability.Metrics
	metricInterval time.Duration
}

func NewProcessMetricsWorker(log *slog.Logger, metrics *observability.Metrics, metricInterval time.Duration) *ProcessMetricsWorker {
	return &ProcessMetricsWorker{log: log, metrics: metrics, metricInterval: metricInterval}
}

func (w *ProcessMetricsWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process sampling")
			return nil
		case <-ticker.C:
			w.sample(p)
		}
	}
}

func (w *ProcessMetricsWorker) sample(p *process.Process) {
	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Error("Error while finding process cpu usage", "err", err)
		return
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		w.log.Error("Error while finding process ram usage", "err", err)
		return
	}
	w.metrics.RecordProcess(cpu, mem.RSS)
}
