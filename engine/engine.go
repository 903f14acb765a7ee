// Package engine assembles the orb and drives it frame by frame.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/beam-orb/engine/profiler"
)

// FrameFunc runs one host frame and reports whether the frame did work.
type FrameFunc func(now time.Time) bool

// loop implements the Loop interface.
type loop struct {
	tickRateChannel chan time.Duration

	mu      sync.Mutex
	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate time.Duration
	frame    FrameFunc
	maxTicks int
	ticks    int
}

// Loop dispatches host frames from a ticker for hosts without their own frame
// scheduler. Every frame runs on the goroutine that called Run, so frames never
// overlap.
type Loop interface {
	// SetTickRate sets the ticker rate in frames per second.
	// Takes effect immediately when the loop is running.
	//
	// Parameters:
	//   - fps: ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetFrameCallback registers the function called each tick.
	//
	// Parameters:
	//   - frame: the frame function
	SetFrameCallback(frame FrameFunc)

	// EnableProfiler reports frame statistics for frames that did work.
	EnableProfiler()

	// DisableProfiler stops frame statistics.
	DisableProfiler()

	// Ticks returns the number of ticks dispatched so far.
	//
	// Returns:
	//   - int: tick count
	Ticks() int

	// Run dispatches frames until the context is cancelled, Stop is called, or
	// the configured tick limit is reached.
	//
	// Parameters:
	//   - ctx: cancellation context
	//
	// Returns:
	//   - error: the context error if cancelled, nil otherwise
	Run(ctx context.Context) error

	// Stop ends the loop. Safe to call multiple times and before Run.
	Stop()

	// Done is closed once the loop has been stopped.
	//
	// Returns:
	//   - <-chan struct{}: the stop signal
	Done() <-chan struct{}
}

var _ Loop = &loop{}

// NewLoop creates a Loop with the provided options.
//
// Parameters:
//   - options: functional options for loop configuration
//
// Returns:
//   - Loop: the newly created loop
func NewLoop(options ...LoopBuilderOption) Loop {
	l := &loop{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          slog.New(slog.DiscardHandler),
		tickRate:        time.Second / 60,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.profiler == nil {
		l.profiler = profiler.NewProfiler(l.logger, time.Second)
	}
	return l
}

func (l *loop) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	l.mu.Lock()
	running := l.running
	if !running {
		l.tickRate = newRate
	}
	l.mu.Unlock()
	if !running {
		return
	}

	// replace any pending update
	select {
	case l.tickRateChannel <- newRate:
	default:
		select {
		case <-l.tickRateChannel:
		default:
		}
		l.tickRateChannel <- newRate
	}
}

func (l *loop) SetFrameCallback(frame FrameFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frame = frame
}

func (l *loop) EnableProfiler() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profilingEnabled = true
}

func (l *loop) DisableProfiler() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profilingEnabled = false
}

func (l *loop) Ticks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

func (l *loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.running = true
	rate := l.tickRate
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		l.Stop()
	}()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	l.logger.Debug("loop started", slog.Duration("tick", rate))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quitChannel:
			return nil
		case newRate := <-l.tickRateChannel:
			ticker.Reset(newRate)
			l.mu.Lock()
			l.tickRate = newRate
			l.mu.Unlock()
		case now := <-ticker.C:
			if l.dispatch(now) {
				return nil
			}
		}
	}
}

// dispatch runs one frame and reports whether the tick limit has been reached.
func (l *loop) dispatch(now time.Time) bool {
	l.mu.Lock()
	frame := l.frame
	profiling := l.profilingEnabled
	l.ticks++
	limitReached := l.maxTicks > 0 && l.ticks >= l.maxTicks
	l.mu.Unlock()

	if frame != nil && frame(now) && profiling {
		l.profiler.TickAt(now)
	}
	return limitReached
}

func (l *loop) Stop() {
	l.quitOnce.Do(func() {
		close(l.quitChannel)
	})
}

func (l *loop) Done() <-chan struct{} {
	return l.quitChannel
}
