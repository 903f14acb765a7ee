// Package beam builds and animates the light beams emitted from the sphere's apertures.
//
// Beams are not children of the sphere in any scene graph. They live in their own
// group and are re-posed every tick from the sphere's current orientation, which keeps
// visibility and lifetime independent from the sphere mesh.
package beam

import (
	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ApertureSource gives indexed, read-only access to the apertures owned by a sphere.
// *aperture.Set satisfies it.
type ApertureSource interface {
	// Len returns the number of apertures.
	//
	// Returns:
	//   - int: the aperture count
	Len() int

	// At returns the aperture at index i.
	//
	// Parameters:
	//   - i: aperture index
	//
	// Returns:
	//   - aperture.Aperture: the aperture
	//   - bool: false when i is out of range
	At(i int) (aperture.Aperture, bool)
}

var _ ApertureSource = &aperture.Set{}

// Uniforms is the per-beam shader state pushed to the GPU each frame.
type Uniforms struct {
	Color     [3]float32
	Opacity   float32
	Intensity float32
	Time      float32
}

// Beam is one light beam. It shares its ID with the aperture it is emitted from and
// refers to that aperture only through ApertureIndex.
type Beam struct {
	ID            int
	ApertureIndex int

	BaseColor         colorful.Color
	CurrentColor      colorful.Color
	RandomTargetColor colorful.Color

	// ColorPhaseOffset is ID / total beams and spreads beams across the palette.
	ColorPhaseOffset float64

	Uniforms Uniforms

	// RestPosition and RestOrientation place the beam before any parent rotation.
	RestPosition    mgl32.Vec3
	RestOrientation mgl32.Quat

	// World* fields are rewritten by the synchronizer every tick.
	WorldPosition    mgl32.Vec3
	WorldDirection   mgl32.Vec3
	WorldOrientation mgl32.Quat
	Model            mgl32.Mat4
}
