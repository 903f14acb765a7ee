// Package color animates the color of every beam according to a selectable mode.
package color

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how beam colors evolve.
type Mode string

const (
	// ModeRainbow cycles every beam through RainbowPalette, offset by its phase.
	ModeRainbow Mode = "rainbow"

	// ModeRandom drifts every beam toward an occasionally re-rolled random hue.
	ModeRandom Mode = "random"

	// ModeWhite holds every beam at White.
	ModeWhite Mode = "white"
)

// MaxAnimationSpeed is the upper bound for the palette cycling speed.
const MaxAnimationSpeed = 5

const (
	// DefaultRerollChance is the per-update probability of picking a new random target.
	DefaultRerollChance = 0.01

	// DefaultBlendFactor is the fraction of the distance to the random target covered
	// per update call. It is not scaled by elapsed time.
	DefaultBlendFactor = 0.05
)

// ParseMode maps a mode name onto a Mode.
//
// Parameters:
//   - s: mode name
//
// Returns:
//   - Mode: the parsed mode
//   - bool: false if s is not one of rainbow, random, white
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeRainbow, ModeRandom, ModeWhite:
		return Mode(s), true
	}
	return "", false
}

type animator struct {
	mode           Mode
	animationSpeed float32
	globalTime     float64

	rerollChance float64
	blendFactor  float64
	palette      []colorful.Color
	rng          *rand.Rand
}

// Animator advances and blends the color of each beam.
type Animator interface {
	// Mode returns the active color mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// SetMode switches to the named mode. Unknown names leave the current mode in place.
	//
	// Parameters:
	//   - mode: mode name
	//
	// Returns:
	//   - bool: true if the mode was recognized
	SetMode(mode string) bool

	// AnimationSpeed returns the palette cycling speed.
	//
	// Returns:
	//   - float32: cycles per second
	AnimationSpeed() float32

	// SetAnimationSpeed sets the palette cycling speed, clamped to [0, MaxAnimationSpeed].
	//
	// Parameters:
	//   - speed: cycles per second
	SetAnimationSpeed(speed float32)

	// GlobalTime returns the accumulated color time.
	//
	// Returns:
	//   - float64: animation speed integrated over elapsed time
	GlobalTime() float64

	// Seed assigns base, current and random target colors for freshly built beams.
	//
	// Parameters:
	//   - beams: the beams to seed
	Seed(beams []*beam.Beam)

	// Update advances the global color time and writes every beam's CurrentColor for
	// the active mode.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//   - beams: the beams to animate
	Update(deltaTime float32, beams []*beam.Beam)
}

var _ Animator = &animator{}

// NewAnimator creates a color animator. Defaults: rainbow mode, speed 1.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the newly created animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mode:           ModeRainbow,
		animationSpeed: 1,
		rerollChance:   DefaultRerollChance,
		blendFactor:    DefaultBlendFactor,
		palette:        RainbowPalette,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	a.animationSpeed = clampSpeed(a.animationSpeed)
	return a
}

func (a *animator) Mode() Mode {
	return a.mode
}

func (a *animator) SetMode(mode string) bool {
	m, ok := ParseMode(mode)
	if !ok {
		return false
	}
	a.mode = m
	return true
}

func (a *animator) AnimationSpeed() float32 {
	return a.animationSpeed
}

func (a *animator) SetAnimationSpeed(speed float32) {
	a.animationSpeed = clampSpeed(speed)
}

func (a *animator) GlobalTime() float64 {
	return a.globalTime
}

func (a *animator) Seed(beams []*beam.Beam) {
	for _, b := range beams {
		base := SamplePalette(a.palette, b.ColorPhaseOffset)
		b.BaseColor = base
		b.RandomTargetColor = a.randomHue()
		switch a.mode {
		case ModeWhite:
			b.CurrentColor = White
		default:
			b.CurrentColor = base
		}
	}
}

func (a *animator) Update(deltaTime float32, beams []*beam.Beam) {
	if deltaTime > 0 {
		a.globalTime += float64(a.animationSpeed * deltaTime)
	}

	for _, b := range beams {
		switch a.mode {
		case ModeRainbow:
			b.CurrentColor = SamplePalette(a.palette, b.ColorPhaseOffset+a.globalTime)
		case ModeRandom:
			if a.rng.Float64() < a.rerollChance {
				b.RandomTargetColor = a.randomHue()
			}
			b.CurrentColor = b.CurrentColor.BlendRgb(b.RandomTargetColor, a.blendFactor)
		case ModeWhite:
			b.CurrentColor = White
		}
	}
}

// randomHue returns a fully saturated color of random hue.
func (a *animator) randomHue() colorful.Color {
	return colorful.Hsv(a.rng.Float64()*360, 1, 1)
}

func clampSpeed(v float32) float32 {
	if v != v {
		return 0
	}
	return max(0, min(MaxAnimationSpeed, v))
}
