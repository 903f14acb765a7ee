package beam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxIntensity is the upper bound for the beam intensity multiplier.
const MaxIntensity = 3

type system struct {
	apertures    ApertureSource
	beams        []*Beam
	template     *Template
	synchronizer *Synchronizer

	segments int
	length   float32
	radius   float32

	workers   int
	threshold int

	opacity   float32
	intensity float32
	visible   bool
	disposed  bool
}

// System owns the beam group: one beam per aperture, the shared template mesh and the
// material state every beam's uniforms are derived from.
//
// The system only references the sphere's apertures. It must be disposed before the
// sphere that owns them, and Dispose drops that reference first.
type System interface {
	// Beams returns the live beam records, or nil once disposed.
	//
	// Returns:
	//   - []*Beam: the beams in aperture order
	Beams() []*Beam

	// Len returns the number of beams.
	//
	// Returns:
	//   - int: beam count, always equal to the aperture count until disposed
	Len() int

	// Template returns the shared beam mesh, or nil once disposed.
	//
	// Returns:
	//   - *Template: the shared template
	Template() *Template

	// Visible returns whether the beam group is shown.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the whole beam group.
	//
	// Parameters:
	//   - visible: true to show
	SetVisible(visible bool)

	// Opacity returns the material opacity.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// SetOpacity sets the material opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: requested opacity
	SetOpacity(opacity float32)

	// Intensity returns the material intensity.
	//
	// Returns:
	//   - float32: intensity in [0, MaxIntensity]
	Intensity() float32

	// SetIntensity sets the material intensity, clamped to [0, MaxIntensity].
	//
	// Parameters:
	//   - intensity: requested intensity
	SetIntensity(intensity float32)

	// Rebuild regenerates every beam from the current apertures, keeping material state.
	Rebuild()

	// Sync re-poses every beam from the parent transform. Must be called every tick
	// after the parent's orientation is updated.
	//
	// Parameters:
	//   - parentOrientation: current parent rotation
	//   - parentPosition: current parent translation
	Sync(parentOrientation mgl32.Quat, parentPosition mgl32.Vec3)

	// UpdateUniforms pushes each beam's current color and the material state into its
	// uniforms, regardless of color mode.
	//
	// Parameters:
	//   - time: animation time in seconds
	UpdateUniforms(time float32)

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool

	// Dispose releases beams, the template and the aperture reference.
	// Safe to call more than once; every other method is a no-op afterwards.
	Dispose()
}

var _ System = &system{}

// NewSystem creates the beam group for the given apertures with one beam per aperture.
//
// Parameters:
//   - apertures: the sphere's aperture lookup
//   - options: functional options to configure the system
//
// Returns:
//   - System: the newly created beam system
func NewSystem(apertures ApertureSource, options ...SystemBuilderOption) System {
	s := &system{
		apertures: apertures,
		segments:  16,
		length:    6,
		radius:    0.12,
		opacity:   0.5,
		intensity: 1.2,
		visible:   true,
	}
	for _, option := range options {
		option(s)
	}
	s.opacity = clamp(s.opacity, 0, 1)
	s.intensity = clamp(s.intensity, 0, MaxIntensity)

	s.template = NewTemplate(s.segments, s.length, s.radius)
	s.synchronizer = NewSynchronizer(s.workers, s.threshold)
	s.Rebuild()
	return s
}

func (s *system) Beams() []*Beam {
	return s.beams
}

func (s *system) Len() int {
	return len(s.beams)
}

func (s *system) Template() *Template {
	return s.template
}

func (s *system) Visible() bool {
	return s.visible
}

func (s *system) SetVisible(visible bool) {
	if s.disposed {
		return
	}
	s.visible = visible
}

func (s *system) Opacity() float32 {
	return s.opacity
}

func (s *system) SetOpacity(opacity float32) {
	if s.disposed {
		return
	}
	s.opacity = clamp(opacity, 0, 1)
}

func (s *system) Intensity() float32 {
	return s.intensity
}

func (s *system) SetIntensity(intensity float32) {
	if s.disposed {
		return
	}
	s.intensity = clamp(intensity, 0, MaxIntensity)
}

func (s *system) Rebuild() {
	if s.disposed || s.apertures == nil {
		return
	}
	s.beams = Build(s.apertures)
	s.UpdateUniforms(0)
}

func (s *system) Sync(parentOrientation mgl32.Quat, parentPosition mgl32.Vec3) {
	if s.disposed {
		return
	}
	s.synchronizer.Sync(s.apertures, s.beams, parentOrientation, parentPosition)
}

func (s *system) UpdateUniforms(time float32) {
	if s.disposed {
		return
	}
	for _, b := range s.beams {
		phase := 2*float64(time) + 2*math.Pi*b.ColorPhaseOffset
		pulse := float32(0.85 + 0.15*math.Sin(phase))
		b.Uniforms = Uniforms{
			Color:     [3]float32{float32(b.CurrentColor.R), float32(b.CurrentColor.G), float32(b.CurrentColor.B)},
			Opacity:   s.opacity,
			Intensity: s.intensity * pulse,
			Time:      time,
		}
	}
}

func (s *system) Disposed() bool {
	return s.disposed
}

func (s *system) Dispose() {
	if s.disposed {
		return
	}
	s.apertures = nil
	s.beams = nil
	s.template.Dispose()
	s.template = nil
	s.synchronizer.Release()
	s.synchronizer = nil
	s.disposed = true
}

// clamp bounds v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float32) float32 {
	if v != v {
		return lo
	}
	return max(lo, min(hi, v))
}
