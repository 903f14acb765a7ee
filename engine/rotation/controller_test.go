package rotation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetSpeed_ClampsToBounds(t *testing.T) {
	c := NewController(WithSpeedBounds(0.5, 3))

	c.SetSpeed(-10)
	if got := c.State().TargetSpeed; got != 0.5 {
		t.Errorf("Expected target clamped to 0.5, got %v", got)
	}
	c.SetSpeed(10)
	if got := c.State().TargetSpeed; got != 3 {
		t.Errorf("Expected target clamped to 3, got %v", got)
	}

	c.SetSpeedImmediate(-1)
	if s := c.State(); s.CurrentSpeed != 0.5 || s.TargetSpeed != 0.5 {
		t.Errorf("Expected immediate speed clamped to 0.5, got %+v", s)
	}
	c.SetSpeedImmediate(99)
	if s := c.State(); s.CurrentSpeed != 3 || s.TargetSpeed != 3 {
		t.Errorf("Expected immediate speed clamped to 3, got %+v", s)
	}
}

func TestUpdate_MonotonicWithoutOvershoot(t *testing.T) {
	c := NewController(WithSpeedBounds(0, 2), WithSmoothing(3))
	c.SetSpeed(1.5)

	prev := c.State().CurrentSpeed
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
		cur := c.State().CurrentSpeed
		if cur < prev {
			t.Fatalf("step %d: speed decreased from %v to %v", i, prev, cur)
		}
		if cur > 1.5 {
			t.Fatalf("step %d: overshoot %v", i, cur)
		}
		prev = cur
	}
	if !c.Settled() {
		t.Fatalf("expected settled after 10s, state %+v", c.State())
	}

	c.Stop()
	prev = c.State().CurrentSpeed
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
		cur := c.State().CurrentSpeed
		if cur > prev || cur < 0 {
			t.Fatalf("step %d: decel not monotonic: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
	if c.State().CurrentSpeed != 0 {
		t.Fatalf("expected to settle at 0, got %v", c.State().CurrentSpeed)
	}
}

func TestUpdate_LargeStepDoesNotOvershoot(t *testing.T) {
	c := NewController(WithSmoothing(10))
	c.SetSpeed(2)
	c.Update(5)
	if got := c.State().CurrentSpeed; got != 2 {
		t.Fatalf("expected a huge step to land exactly on target, got %v", got)
	}
}

func TestUpdate_SpeedWithinBoundsAfterFirstUpdate(t *testing.T) {
	c := NewController(WithSpeedBounds(0.2, 1), WithSpeed(5))
	c.Update(0.016)
	s := c.State()
	if s.CurrentSpeed < s.MinSpeed || s.CurrentSpeed > s.MaxSpeed {
		t.Fatalf("speed %v outside [%v, %v]", s.CurrentSpeed, s.MinSpeed, s.MaxSpeed)
	}
}

func TestSetDirection_NormalizesSign(t *testing.T) {
	c := NewController()
	c.SetDirection(-42)
	if got := c.State().Direction; got != -1 {
		t.Errorf("Expected direction -1, got %d", got)
	}
	c.SetDirection(0)
	if got := c.State().Direction; got != -1 {
		t.Errorf("Expected zero to keep direction -1, got %d", got)
	}
	c.SetDirection(0.001)
	if got := c.State().Direction; got != 1 {
		t.Errorf("Expected direction 1, got %d", got)
	}
}

func TestUpdate_AngleAccumulation(t *testing.T) {
	c := NewController(WithSpeed(1), WithAxisFactors(0.3, 0.1))
	c.Update(0.5)

	s := c.State()
	wantYaw := float32(0.5)
	if math.Abs(float64(s.Yaw-wantYaw)) > 1e-6 {
		t.Fatalf("expected yaw %v, got %v", wantYaw, s.Yaw)
	}
	if math.Abs(float64(s.Pitch-wantYaw*0.3)) > 1e-6 {
		t.Fatalf("expected pitch %v, got %v", wantYaw*0.3, s.Pitch)
	}
	wantRoll := float32(math.Sin(1)) * 0.1 * 0.5
	if math.Abs(float64(s.Roll-wantRoll)) > 1e-6 {
		t.Fatalf("expected roll %v, got %v", wantRoll, s.Roll)
	}

	c.SetDirection(-1)
	c.Update(0.5)
	if s := c.State(); math.Abs(float64(s.Yaw)) > 1e-6 {
		t.Fatalf("expected reversed spin to return yaw to 0, got %v", s.Yaw)
	}
}

func TestStopImmediate(t *testing.T) {
	c := NewController(WithSpeed(1.5))
	c.StopImmediate()
	c.Update(0.1)
	s := c.State()
	if s.CurrentSpeed != 0 || s.Yaw != 0 {
		t.Fatalf("expected no motion after StopImmediate, got %+v", s)
	}
}

func TestOrientation_MatchesYaw(t *testing.T) {
	c := NewController(WithSpeed(1), WithAxisFactors(0, 0))
	c.Update(float32(math.Pi / 2))

	got := c.Orientation().Rotate(mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{0, 0, -1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("expected +X rotated a quarter turn about Y to be %v, got %v", want, got)
	}
}

func TestUpdate_IgnoresNegativeDelta(t *testing.T) {
	c := NewController(WithSpeed(1))
	c.Update(-1)
	if s := c.State(); s.Yaw != 0 {
		t.Fatalf("expected no rotation for negative delta, got yaw %v", s.Yaw)
	}
}
