package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTickEmitsPerInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(logger, time.Second)
	start := p.lastTime

	for i := 1; i < 30; i++ {
		if p.TickAt(start.Add(time.Duration(i) * 10 * time.Millisecond)) {
			t.Fatalf("emitted early at frame %d", i)
		}
	}
	if !p.TickAt(start.Add(time.Second)) {
		t.Fatal("did not emit after the interval")
	}
	if p.Last().Frames != 30 {
		t.Fatalf("frames %d", p.Last().Frames)
	}
	if p.Last().FPS < 29.9 || p.Last().FPS > 30.1 {
		t.Fatalf("fps %v", p.Last().FPS)
	}
	if !strings.Contains(buf.String(), "frame stats") {
		t.Fatalf("no event logged: %q", buf.String())
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	p := NewProfiler(nil, 0)
	if p.updateInterval != time.Second {
		t.Fatalf("interval %v", p.updateInterval)
	}
	p.TickAt(p.lastTime.Add(2 * time.Second))
}
