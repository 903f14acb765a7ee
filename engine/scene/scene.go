// Package scene is the in-process host scene the orb renders into.
package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/Carmen-Shannon/beam-orb/engine/camera"
	"github.com/Carmen-Shannon/beam-orb/engine/light"
	"github.com/Carmen-Shannon/beam-orb/engine/mesh"
	"github.com/lucasb-eyer/go-colorful"
)

// Fog describes linear distance fog.
type Fog struct {
	Color colorful.Color
	Near  float32
	Far   float32
}

// Scene owns the camera, the lights and the renderer flags, and holds the
// renderable handles the orb exposes. Quality profiles are applied to it
// wholesale. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// AddLight registers a light with the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight unregisters a light. Unknown lights are ignored.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// PixelRatio returns the render scale applied to the viewport size.
	PixelRatio() float32

	// SetPixelRatio sets the render scale. Non-positive values are ignored.
	//
	// Parameters:
	//   - ratio: render pixels per viewport pixel
	SetPixelRatio(ratio float32)

	// FogEnabled reports whether distance fog is drawn.
	FogEnabled() bool

	// Fog returns the fog parameters.
	Fog() Fog

	// SetFog turns distance fog on or off.
	//
	// Parameters:
	//   - enabled: true to draw fog
	SetFog(enabled bool)

	// Antialias reports whether antialiasing is enabled.
	Antialias() bool

	// SetAntialias turns antialiasing on or off.
	//
	// Parameters:
	//   - enabled: true to antialias
	SetAntialias(enabled bool)

	// Attach stores the orb's renderable handles. Passing nil clears a handle.
	//
	// Parameters:
	//   - sphere: the deformed sphere mesh
	//   - beams: the beam group
	Attach(sphere *mesh.Mesh, beams beam.System)

	// Sphere returns the attached sphere mesh, or nil.
	Sphere() *mesh.Mesh

	// Beams returns the attached beam group, or nil.
	Beams() beam.System

	// Clear detaches the renderable handles and removes every light.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	camera camera.Camera
	lights []light.Light

	pixelRatio float32
	fogEnabled bool
	fog        Fog
	antialias  bool

	sphere *mesh.Mesh
	beams  beam.System
}

var _ Scene = &scene{}

// NewScene creates a scene with the given camera.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera; a default orbit camera is created when nil
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		cam = camera.NewCamera(camera.WithController(camera.NewOrbitController()))
	}
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		active:     true,
		camera:     cam,
		pixelRatio: 1,
		fogEnabled: true,
		fog:        Fog{Color: colorful.Color{R: 0.02, G: 0.02, B: 0.05}, Near: 10, Far: 50},
		antialias:  true,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) PixelRatio() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pixelRatio
}

func (s *scene) SetPixelRatio(ratio float32) {
	if ratio <= 0 || ratio != ratio {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixelRatio = ratio
}

func (s *scene) FogEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fogEnabled
}

func (s *scene) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fogEnabled = enabled
}

func (s *scene) Antialias() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.antialias
}

func (s *scene) SetAntialias(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.antialias = enabled
}

func (s *scene) Attach(sphere *mesh.Mesh, beams beam.System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sphere = sphere
	s.beams = beams
}

func (s *scene) Sphere() *mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sphere
}

func (s *scene) Beams() beam.System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.beams
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sphere = nil
	s.beams = nil
	s.lights = nil
}
