package renderer

import (
	"errors"
	"log/slog"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
)

// FrameOutcome is the result of one DrawFrame call.
type FrameOutcome int

const (
	// FramePresented means the frame was submitted and presented.
	FramePresented FrameOutcome = iota
	// FrameSkipped means no frame was produced and no corrective action was needed.
	FrameSkipped
	// FrameRecovered means the swapchain was lost and has been recreated; the frame was skipped.
	FrameRecovered
	// FrameFatal means the device cannot continue; the run must terminate.
	FrameFatal
)

func (o FrameOutcome) String() string {
	switch o {
	case FramePresented:
		return "presented"
	case FrameSkipped:
		return "skipped"
	case FrameRecovered:
		return "recovered"
	case FrameFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// FrameStats counts DrawFrame outcomes.
type FrameStats struct {
	Presented uint64
	Skipped   uint64
	Recovered uint64
	Fatal     uint64
}

// FrameRenderer renders frames through a Renderer and applies the surface failure policy:
// and running out of memory or losing the device is fatal.
// and running out of memory is fatal.
type FrameRenderer struct {
	renderer Renderer
	logger   *slog.Logger
	stats    FrameStats
}

// NewFrameRenderer creates a FrameRenderer. A nil logger uses slog.Default().
func NewFrameRenderer(r Renderer, logger *slog.Logger) *FrameRenderer {
	return &FrameRenderer{renderer: r, logger: common.Logger(logger)}
}

// DrawFrame renders one frame with resources bound in argument order.
func (f *FrameRenderer) DrawFrame(resources ...bind_group_provider.BindGroupProvider) FrameOutcome {
	outcome := f.drawFrame(resources)
	switch outcome {
	case FramePresented:
		f.stats.Presented++
	case FrameSkipped:
		f.stats.Skipped++
	case FrameRecovered:
		f.stats.Recovered++
	case FrameFatal:
		f.stats.Fatal++
	}
	return outcome
}

func (f *FrameRenderer) drawFrame(resources []bind_group_provider.BindGroupProvider) FrameOutcome {
	err := f.renderer.Render(resources...)
	if err == nil {
		return FramePresented
	}

	if errors.Is(err, ErrDeviceLost) {
		f.logger.Error("device lost", slog.Any("error", err))
		return FrameFatal
	}

	var fe *FrameError
	if !errors.As(err, &fe) {
		f.logger.Error("frame skipped", slog.Any("error", err))
		return FrameSkipped
	}

	switch fe.Kind {
	case FrameLost:
		size := f.renderer.Size()
		if rerr := f.renderer.Resize(size); rerr != nil {
			f.logger.Error("swapchain recreation failed", slog.String("size", size.String()), slog.Any("error", rerr))
			return FrameSkipped
		}
		f.logger.Warn("swapchain lost, recreated", slog.String("size", size.String()))
		return FrameRecovered
	case FrameOutOfMemory:
		f.logger.Error("device out of memory", slog.Any("error", err))
		return FrameFatal
	default:
		f.logger.Warn("frame skipped", slog.String("reason", fe.Kind.String()))
		return FrameSkipped
	}
}

// Stats returns the outcome counters.
func (f *FrameRenderer) Stats() FrameStats {
	return f.stats
}
