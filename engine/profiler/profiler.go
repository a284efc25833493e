package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
)

// Stats is one profiling sample covering a full update interval.
type Stats struct {
	FPS          float64
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	Frames       int
	SampleWindow time.Duration
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Samples are logged at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger samples are written to. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = common.Logger(logger)
	}
}

// WithInterval sets how often a sample is taken. Non-positive values are ignored.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// A sample is logged when the update interval has elapsed. It covers FPS, heap usage,
// allocation rate, GC count and pause times, and total memory.
//
// Returns:
//   - bool: true if a sample was taken this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows, Sys is the process footprint.
	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
		Frames:       p.frameCount,
		SampleWindow: elapsed,
	}

	if gcCount := s.GCCount; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profiler",
		slog.Float64("fps", s.FPS),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb_s", s.AllocRateMB),
		slog.Any("gc", s.GCCount),
		slog.Uint64("gc_last_pause_us", s.LastPauseUs),
		slog.Uint64("gc_max_pause_us", s.MaxPauseUs),
		slog.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent sample. It is the zero value until the first interval elapses.
func (p *Profiler) Last() Stats {
	return p.last
}
