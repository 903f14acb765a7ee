package color

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/lucasb-eyer/go-colorful"
)

func near(a, b colorful.Color) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func newBeams(n int) []*beam.Beam {
	out := make([]*beam.Beam, n)
	for i := range out {
		out[i] = &beam.Beam{ID: i, ApertureIndex: i, ColorPhaseOffset: float64(i) / float64(n)}
	}
	return out
}

func TestSamplePaletteEndpoints(t *testing.T) {
	if c := SamplePalette(RainbowPalette, 0); !near(c, RainbowPalette[0]) {
		t.Fatalf("t=0: got %v want red", c)
	}
	if c := SamplePalette(RainbowPalette, 0.5); !near(c, RainbowPalette[3]) {
		t.Fatalf("t=0.5: got %v want green", c)
	}
	if c := SamplePalette(RainbowPalette, 1.5); !near(c, RainbowPalette[3]) {
		t.Fatalf("t=1.5 should wrap to 0.5, got %v", c)
	}
	if c := SamplePalette(RainbowPalette, -0.5); !near(c, RainbowPalette[3]) {
		t.Fatalf("t=-0.5 should wrap to 0.5, got %v", c)
	}
}

func TestSamplePaletteMidpoint(t *testing.T) {
	// halfway between red and orange
	c := SamplePalette(RainbowPalette, 1.0/12)
	want := colorful.Color{R: 1, G: 0.25, B: 0}
	if !near(c, want) {
		t.Fatalf("got %v want %v", c, want)
	}
}

func TestSamplePaletteDegenerate(t *testing.T) {
	if c := SamplePalette(nil, 0.3); c != (colorful.Color{}) {
		t.Fatalf("empty palette: got %v", c)
	}
	one := []colorful.Color{{R: 0.2, G: 0.4, B: 0.6}}
	if c := SamplePalette(one, 0.7); c != one[0] {
		t.Fatalf("single palette: got %v", c)
	}
	if c := SamplePalette(RainbowPalette, math.NaN()); !near(c, RainbowPalette[0]) {
		t.Fatalf("NaN should sample the first entry, got %v", c)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"rainbow", "random", "white"} {
		if m, ok := ParseMode(s); !ok || string(m) != s {
			t.Fatalf("ParseMode(%q) = %q, %v", s, m, ok)
		}
	}
	if _, ok := ParseMode("plaid"); ok {
		t.Fatal("unknown mode accepted")
	}
}

func TestSetModeRejectsUnknown(t *testing.T) {
	a := NewAnimator(WithMode("white"))
	if a.SetMode("sparkle") {
		t.Fatal("unknown mode accepted")
	}
	if a.Mode() != ModeWhite {
		t.Fatalf("mode changed to %q", a.Mode())
	}
}

func TestAnimationSpeedClamp(t *testing.T) {
	a := NewAnimator(WithAnimationSpeed(9))
	if a.AnimationSpeed() != MaxAnimationSpeed {
		t.Fatalf("initial speed not clamped: %v", a.AnimationSpeed())
	}
	a.SetAnimationSpeed(-1)
	if a.AnimationSpeed() != 0 {
		t.Fatalf("negative speed not clamped: %v", a.AnimationSpeed())
	}
	a.SetAnimationSpeed(float32(math.NaN()))
	if a.AnimationSpeed() != 0 {
		t.Fatalf("NaN speed not clamped: %v", a.AnimationSpeed())
	}
}

func TestRainbowUpdate(t *testing.T) {
	a := NewAnimator(WithAnimationSpeed(1))
	beams := newBeams(2)
	a.Seed(beams)

	a.Update(0, beams)
	if !near(beams[0].CurrentColor, RainbowPalette[0]) {
		t.Fatalf("phase 0 at time 0: got %v", beams[0].CurrentColor)
	}
	if !near(beams[1].CurrentColor, RainbowPalette[3]) {
		t.Fatalf("phase 0.5 at time 0: got %v", beams[1].CurrentColor)
	}

	a.Update(0.5, beams)
	if math.Abs(a.GlobalTime()-0.5) > 1e-9 {
		t.Fatalf("global time %v", a.GlobalTime())
	}
	if !near(beams[0].CurrentColor, RainbowPalette[3]) {
		t.Fatalf("phase 0 at time 0.5: got %v", beams[0].CurrentColor)
	}
}

func TestZeroSpeedFreezesTime(t *testing.T) {
	a := NewAnimator(WithAnimationSpeed(0))
	beams := newBeams(3)
	a.Update(1, beams)
	a.Update(1, beams)
	if a.GlobalTime() != 0 {
		t.Fatalf("time advanced at speed 0: %v", a.GlobalTime())
	}
}

func TestWhiteMode(t *testing.T) {
	a := NewAnimator(WithMode("white"))
	beams := newBeams(4)
	a.Seed(beams)
	a.Update(0.016, beams)
	for _, b := range beams {
		if b.CurrentColor != White {
			t.Fatalf("beam %d not white: %v", b.ID, b.CurrentColor)
		}
	}
}

func TestRandomModeConverges(t *testing.T) {
	a := NewAnimator(
		WithMode("random"),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithRandomBlend(0, 0.05),
	)
	beams := newBeams(1)
	a.Seed(beams)
	target := beams[0].RandomTargetColor
	for range 400 {
		a.Update(0.016, beams)
	}
	if !near(beams[0].CurrentColor, target) && beams[0].CurrentColor.DistanceRgb(target) > 1e-3 {
		t.Fatalf("did not converge: %v vs %v", beams[0].CurrentColor, target)
	}
	if beams[0].RandomTargetColor != target {
		t.Fatal("target re-rolled with zero chance")
	}
}

func TestRandomModeRerolls(t *testing.T) {
	a := NewAnimator(
		WithMode("random"),
		WithRand(rand.New(rand.NewPCG(7, 7))),
		WithRandomBlend(1, 0.05),
	)
	beams := newBeams(1)
	a.Seed(beams)
	first := beams[0].RandomTargetColor
	changed := false
	for range 10 {
		a.Update(0.016, beams)
		if beams[0].RandomTargetColor != first {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("target never re-rolled with chance 1")
	}
}

func TestColorsFeedUniforms(t *testing.T) {
	set := aperture.NewSet(6, 5)
	sys := beam.NewSystem(set)
	defer sys.Dispose()

	a := NewAnimator()
	a.Seed(sys.Beams())
	a.Update(0.1, sys.Beams())
	sys.UpdateUniforms(0.1)

	for _, b := range sys.Beams() {
		want := [3]float32{float32(b.CurrentColor.R), float32(b.CurrentColor.G), float32(b.CurrentColor.B)}
		if b.Uniforms.Color != want {
			t.Fatalf("beam %d uniform color %v want %v", b.ID, b.Uniforms.Color, want)
		}
	}
}
