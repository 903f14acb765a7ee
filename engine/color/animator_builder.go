package color

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// AnimatorBuilderOption is a functional option for configuring an Animator.
type AnimatorBuilderOption func(*animator)

// WithMode sets the initial mode. Unknown names are ignored.
//
// Parameters:
//   - mode: mode name
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the mode
func WithMode(mode string) AnimatorBuilderOption {
	return func(a *animator) {
		a.SetMode(mode)
	}
}

// WithAnimationSpeed sets the initial palette cycling speed.
//
// Parameters:
//   - speed: cycles per second
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the speed
func WithAnimationSpeed(speed float32) AnimatorBuilderOption {
	return func(a *animator) {
		a.animationSpeed = speed
	}
}

// WithRand sets the random source used by the random mode.
//
// Parameters:
//   - rng: random source
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the random source
func WithRand(rng *rand.Rand) AnimatorBuilderOption {
	return func(a *animator) {
		a.rng = rng
	}
}

// WithRandomBlend overrides the re-roll probability and per-update blend factor of the
// random mode.
//
// Parameters:
//   - rerollChance: probability in [0, 1] of a new target per beam per update
//   - blendFactor: fraction of the remaining distance covered per update
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the random mode tuning
func WithRandomBlend(rerollChance, blendFactor float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.rerollChance = rerollChance
		a.blendFactor = blendFactor
	}
}

// WithPalette replaces the rainbow palette.
//
// Parameters:
//   - palette: ordered reference colors
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the palette
func WithPalette(palette []colorful.Color) AnimatorBuilderOption {
	return func(a *animator) {
		if len(palette) > 0 {
			a.palette = palette
		}
	}
}
