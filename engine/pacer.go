package engine

import "time"

// Pacer caps the frame rate without sleeping. A frame that arrives sooner than the
// target interval after the last accepted frame is skipped.
type Pacer struct {
	interval time.Duration
	last     time.Time
	started  bool
}

// NewPacer creates a pacer for the given target frame rate. Non-positive rates uncap it.
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - *Pacer: the pacer
func NewPacer(fps int) *Pacer {
	p := &Pacer{}
	p.SetTargetFPS(fps)
	return p
}

// SetTargetFPS changes the target frame rate. Non-positive rates uncap the pacer.
//
// Parameters:
//   - fps: target frames per second
func (p *Pacer) SetTargetFPS(fps int) {
	if fps <= 0 {
		p.interval = 0
		return
	}
	p.interval = time.Second / time.Duration(fps)
}

// Interval returns the minimum time between accepted frames.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Ready reports whether a frame at now should run and how much time it covers.
// The first frame is always accepted with a zero delta. The accepted timestamp is
// aligned down to a whole interval so a host running slightly faster than the
// target does not drift into skipping every other frame. The remainder is left for
// the next frame, so the deltas sum to the wall time covered.
//
// Parameters:
//   - now: the frame timestamp
//
// Returns:
//   - float32: seconds consumed by this frame, whole intervals when capped
//   - bool: true if the frame should run
func (p *Pacer) Ready(now time.Time) (float32, bool) {
	if !p.started {
		p.started = true
		p.last = now
		return 0, true
	}

	elapsed := now.Sub(p.last)
	if elapsed < 0 {
		p.last = now
		return 0, false
	}
	if elapsed < p.interval {
		return 0, false
	}

	consumed := elapsed
	if p.interval > 0 {
		consumed -= elapsed % p.interval
	}
	p.last = p.last.Add(consumed)
	return float32(consumed.Seconds()), true
}

// Reset forgets the last accepted frame.
func (p *Pacer) Reset() {
	p.started = false
	p.last = time.Time{}
}
