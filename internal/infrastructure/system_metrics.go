package infrastructure

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics records Go runtime figures for a batch run. A run is short
// enough that a single snapshot at the end is all the textfile needs.
type RuntimeMetrics struct {
	goroutines    metric.Int64Gauge
	heapInUse     metric.Int64Gauge
	totalAlloc    metric.Int64Gauge
	memorySystem  metric.Int64Gauge
	gcCount       metric.Int64Gauge
	lastGCPause   metric.Float64Gauge
	cpuCount      metric.Int64Gauge
	processUptime metric.Float64Gauge
	start         time.Time
}

// NewRuntimeMetrics creates the runtime instruments on meter. start is the
// process start used for the uptime gauge.
func NewRuntimeMetrics(meter metric.Meter, start time.Time) (*RuntimeMetrics, error) {
	goroutines, err := meter.Int64Gauge(
		"runtime_goroutines",
		metric.WithDescription("Number of live goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heapInUse, err := meter.Int64Gauge(
		"runtime_heap_alloc_bytes",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	totalAlloc, err := meter.Int64Gauge(
		"runtime_total_alloc_bytes",
		metric.WithDescription("Cumulative bytes allocated for heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	memorySystem, err := meter.Int64Gauge(
		"runtime_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"runtime_gc_count",
		metric.WithDescription("Completed garbage collection cycles"),
	)
	if err != nil {
		return nil, err
	}

	lastGCPause, err := meter.Float64Gauge(
		"runtime_last_gc_pause_seconds",
		metric.WithDescription("Pause of the most recent garbage collection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cpuCount, err := meter.Int64Gauge(
		"runtime_cpu_count",
		metric.WithDescription("Number of logical CPUs"),
	)
	if err != nil {
		return nil, err
	}

	processUptime, err := meter.Float64Gauge(
		"process_uptime_seconds",
		metric.WithDescription("Seconds since the process started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		goroutines:    goroutines,
		heapInUse:     heapInUse,
		totalAlloc:    totalAlloc,
		memorySystem:  memorySystem,
		gcCount:       gcCount,
		lastGCPause:   lastGCPause,
		cpuCount:      cpuCount,
		processUptime: processUptime,
		start:         start,
	}, nil
}

// RuntimeStats is one snapshot of the runtime
type RuntimeStats struct {
	Goroutines   int64
	HeapAlloc    uint64
	TotalAlloc   uint64
	MemorySystem uint64
	GCCount      uint32
	LastGCPause  time.Duration
	CPUCount     int
	Uptime       time.Duration
}

// Collect reads the runtime and records every gauge
func (rm *RuntimeMetrics) Collect(ctx context.Context) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := RuntimeStats{
		Goroutines:   int64(runtime.NumGoroutine()),
		HeapAlloc:    mem.HeapAlloc,
		TotalAlloc:   mem.TotalAlloc,
		MemorySystem: mem.Sys,
		GCCount:      mem.NumGC,
		CPUCount:     runtime.NumCPU(),
		Uptime:       time.Since(rm.start),
	}
	if mem.NumGC > 0 {
		stats.LastGCPause = time.Duration(mem.PauseNs[(mem.NumGC+255)%256])
	}

	rm.goroutines.Record(ctx, stats.Goroutines)
	rm.heapInUse.Record(ctx, int64(stats.HeapAlloc))
	rm.totalAlloc.Record(ctx, int64(stats.TotalAlloc))
	rm.memorySystem.Record(ctx, int64(stats.MemorySystem))
	rm.gcCount.Record(ctx, int64(stats.GCCount))
	rm.lastGCPause.Record(ctx, stats.LastGCPause.Seconds())
	rm.cpuCount.Record(ctx, int64(stats.CPUCount))
	rm.processUptime.Record(ctx, stats.Uptime.Seconds())
	return stats
}

// LogAttrs renders the snapshot for a log line
func (s RuntimeStats) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int64("goroutines", s.Goroutines),
		slog.String("heap_alloc", humanize.Bytes(s.HeapAlloc)),
		slog.String("total_alloc", humanize.Bytes(s.TotalAlloc)),
		slog.String("memory_system", humanize.Bytes(s.MemorySystem)),
		slog.Uint64("gc_count", uint64(s.GCCount)),
		slog.Duration("last_gc_pause", s.LastGCPause),
		slog.Int("cpu_count", s.CPUCount),
		slog.Duration("uptime", s.Uptime),
	}
}
