package scene

import (
	"github.com/Carmen-Shannon/beam-orb/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithDefaultLights adds the orb's standard rig: a dim ambient fill, a shadow-casting
// key light from above and a point light glowing inside the sphere.
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDefaultLights() SceneBuilderOption {
	return WithLights(
		light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.3)),
		light.NewLight(light.LightTypeDirectional,
			light.WithDirection(mgl32.Vec3{-0.5, -1, -0.3}),
			light.WithIntensity(0.8),
			light.WithCastsShadows(true),
		),
		light.NewLight(light.LightTypePoint,
			light.WithColor(colorful.Color{R: 1, G: 0.9, B: 0.8}),
			light.WithIntensity(2),
			light.WithRange(20),
			light.WithCastsShadows(true),
		),
	)
}

// WithFog sets the fog parameters.
//
// Parameters:
//   - fog: the fog parameters
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(fog Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = fog
	}
}
