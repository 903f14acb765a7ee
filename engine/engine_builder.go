package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/beam-orb/engine/profiler"
)

// LoopBuilderOption is a functional option for configuring a Loop.
type LoopBuilderOption func(*loop)

// WithProfiling enables or disables frame statistics.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithProfiling(enabled bool) LoopBuilderOption {
	return func(l *loop) {
		l.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) LoopBuilderOption {
	return func(l *loop) {
		l.profiler = p
	}
}

// WithTickRate sets the ticker rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithTickRate(fps float64) LoopBuilderOption {
	return func(l *loop) {
		if fps <= 0 {
			fps = 60
		}
		l.tickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithFrameCallback registers the frame function.
//
// Parameters:
//   - frame: the frame function
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithFrameCallback(frame FrameFunc) LoopBuilderOption {
	return func(l *loop) {
		l.frame = frame
	}
}

// WithMaxTicks stops the loop after n ticks. Zero runs until stopped.
//
// Parameters:
//   - n: tick limit
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithMaxTicks(n int) LoopBuilderOption {
	return func(l *loop) {
		l.maxTicks = max(n, 0)
	}
}

// WithLoopLogger sets the loop and profiler logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithLoopLogger(logger *slog.Logger) LoopBuilderOption {
	return func(l *loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}
