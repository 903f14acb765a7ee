package engine

import (
	"math"
	"testing"
	"time"
)

func TestPacerSkipsEarlyFrames(t *testing.T) {
	p := NewPacer(30)
	t0 := time.Unix(100, 0)

	if dt, ok := p.Ready(t0); !ok || dt != 0 {
		t.Fatalf("first frame: dt=%v ok=%v", dt, ok)
	}
	if _, ok := p.Ready(t0.Add(16 * time.Millisecond)); ok {
		t.Fatal("frame under the interval accepted")
	}
	dt, ok := p.Ready(t0.Add(34 * time.Millisecond))
	if !ok {
		t.Fatal("frame past the interval skipped")
	}
	// one 1/30 s interval is consumed, the remaining 0.67ms carries over
	if math.Abs(float64(dt)-1.0/30) > 1e-5 {
		t.Fatalf("dt %v", dt)
	}
}

func TestPacerDeltasTrackWallTime(t *testing.T) {
	p := NewPacer(60)
	t0 := time.Unix(1000, 0)
	frame := time.Second / 144

	var sum float64
	var last time.Time
	for i := range 1440 {
		now := t0.Add(time.Duration(i) * frame)
		if dt, ok := p.Ready(now); ok {
			sum += float64(dt)
			last = now
		}
	}
	wall := last.Sub(t0).Seconds()
	if sum > wall+1e-3 {
		t.Fatalf("deltas sum to %.4fs, wall time covered %.4fs", sum, wall)
	}
	if wall-sum > 1.0/60 {
		t.Fatalf("deltas sum to %.4fs, lagging wall time %.4fs by more than one interval", sum, wall)
	}
}

func TestPacerAlignsToInterval(t *testing.T) {
	p := NewPacer(10) // 100ms
	t0 := time.Unix(0, 0)
	p.Ready(t0)
	p.Ready(t0.Add(130 * time.Millisecond))
	// the accepted frame is aligned back to 100ms, so 200ms is due
	if _, ok := p.Ready(t0.Add(200 * time.Millisecond)); !ok {
		t.Fatal("aligned frame skipped")
	}
}

func TestPacerUncapped(t *testing.T) {
	p := NewPacer(0)
	t0 := time.Unix(0, 0)
	p.Ready(t0)
	if _, ok := p.Ready(t0.Add(time.Microsecond)); !ok {
		t.Fatal("uncapped pacer skipped a frame")
	}
	if p.Interval() != 0 {
		t.Fatalf("interval %v", p.Interval())
	}
}

func TestPacerClockGoingBackwards(t *testing.T) {
	p := NewPacer(60)
	t0 := time.Unix(10, 0)
	p.Ready(t0)
	if _, ok := p.Ready(t0.Add(-time.Second)); ok {
		t.Fatal("frame from the past accepted")
	}
	p.Reset()
	if dt, ok := p.Ready(t0); !ok || dt != 0 {
		t.Fatal("reset pacer did not accept the next frame")
	}
}
