package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopStopsAfterMaxTicks(t *testing.T) {
	var frames atomic.Int32
	l := NewLoop(
		WithTickRate(1000),
		WithMaxTicks(5),
		WithProfiling(true),
		WithFrameCallback(func(time.Time) bool {
			frames.Add(1)
			return true
		}),
	)
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := frames.Load(); got != 5 {
		t.Fatalf("frames %d", got)
	}
	if l.Ticks() != 5 {
		t.Fatalf("ticks %d", l.Ticks())
	}
	select {
	case <-l.Done():
	default:
		t.Fatal("done not closed after run")
	}
}

func TestLoopContextCancel(t *testing.T) {
	l := NewLoop(WithTickRate(1000))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err %v", err)
	}
}

func TestLoopStopIdempotent(t *testing.T) {
	l := NewLoop(WithTickRate(1000))
	l.Stop()
	l.Stop()
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run after stop: %v", err)
	}
	l.Stop()
}

func TestLoopStopFromFrame(t *testing.T) {
	var l Loop
	l = NewLoop(WithTickRate(1000), WithFrameCallback(func(time.Time) bool {
		l.Stop()
		return false
	}))
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopSetTickRateWhileRunning(t *testing.T) {
	var frames atomic.Int32
	var l Loop
	l = NewLoop(WithTickRate(50), WithMaxTicks(3), WithFrameCallback(func(time.Time) bool {
		if frames.Add(1) == 1 {
			l.SetTickRate(1000)
		}
		return true
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
}
