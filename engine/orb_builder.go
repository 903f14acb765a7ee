package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/rotation"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbBuilderOption is a functional option for configuring an Orb.
type OrbBuilderOption func(*orb)

// WithSceneHost sets the host scene. Required.
//
// Parameters:
//   - host: the scene host
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithSceneHost(host SceneHost) OrbBuilderOption {
	return func(o *orb) {
		o.host = host
	}
}

// WithDeviceProvider sets where device signals come from. Defaults to a 1080p desktop.
//
// Parameters:
//   - provider: the device profile provider
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithDeviceProvider(provider quality.DeviceProfileProvider) OrbBuilderOption {
	return func(o *orb) {
		o.provider = provider
	}
}

// WithLogger sets the structured logger. Events carry the orb id.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) OrbBuilderOption {
	return func(o *orb) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSphereRadius sets the sphere radius.
//
// Parameters:
//   - radius: sphere radius, must be positive
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithSphereRadius(radius float32) OrbBuilderOption {
	return func(o *orb) {
		o.sphereRadius = radius
	}
}

// WithHoleShape sets the size of the depression carved at each aperture.
//
// Parameters:
//   - radius: influence radius around the aperture, must be positive
//   - depth: maximum inward displacement, must not be negative
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithHoleShape(radius, depth float32) OrbBuilderOption {
	return func(o *orb) {
		o.holeRadius = radius
		o.holeDepth = depth
	}
}

// WithPosition places the sphere's center in world space.
//
// Parameters:
//   - position: world-space center
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithPosition(position mgl32.Vec3) OrbBuilderOption {
	return func(o *orb) {
		o.position = position
	}
}

// WithColorMode sets the initial color mode. Unknown modes fall back to rainbow.
//
// Parameters:
//   - mode: rainbow, random or white
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithColorMode(mode string) OrbBuilderOption {
	return func(o *orb) {
		o.colorMode = mode
	}
}

// WithRotation forwards options to the rotation controller.
//
// Parameters:
//   - options: rotation controller options
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithRotation(options ...rotation.ControllerBuilderOption) OrbBuilderOption {
	return func(o *orb) {
		o.rotationOptions = append(o.rotationOptions, options...)
	}
}

// WithRand sets the random source used by the random color mode.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithRand(rng *rand.Rand) OrbBuilderOption {
	return func(o *orb) {
		o.rng = rng
	}
}

// WithSyncWorkers fans beam synchronization out over a worker pool once the beam
// count reaches threshold.
//
// Parameters:
//   - workers: pool size, values below 2 keep synchronization on the tick goroutine
//   - threshold: minimum beam count for the parallel path
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithSyncWorkers(workers, threshold int) OrbBuilderOption {
	return func(o *orb) {
		o.syncWorkers = workers
		o.syncThreshold = threshold
	}
}

// WithOpacity overrides the quality profile's initial beam opacity.
//
// Parameters:
//   - opacity: beam opacity, clamped to [0, 1]
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithOpacity(opacity float32) OrbBuilderOption {
	return func(o *orb) {
		o.opacity = &opacity
	}
}

// WithIntensity overrides the quality profile's initial beam intensity.
//
// Parameters:
//   - intensity: beam intensity, clamped to [0, 3]
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithIntensity(intensity float32) OrbBuilderOption {
	return func(o *orb) {
		o.intensity = &intensity
	}
}

// WithAnimationSpeed overrides the quality profile's initial animation speed.
//
// Parameters:
//   - speed: palette cycles per second, clamped to [0, 5]
//
// Returns:
//   - OrbBuilderOption: option function to apply
func WithAnimationSpeed(speed float32) OrbBuilderOption {
	return func(o *orb) {
		o.animationSpeed = &speed
	}
}
