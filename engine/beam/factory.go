package beam

import (
	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// CanonicalUp is the axis the beam template is modeled along.
var CanonicalUp = mgl32.Vec3{0, 1, 0}

// ShortestArc returns the minimal rotation taking the canonical up axis onto dir.
//
// Parameters:
//   - dir: target direction (need not be normalized)
//
// Returns:
//   - mgl32.Quat: the rotation
func ShortestArc(dir mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatBetweenVectors(CanonicalUp, dir)
}

// RestTransform derives a beam's static local placement from its aperture: translated
// to the aperture position and rotated so +Y follows the aperture direction.
//
// Parameters:
//   - ap: the aperture the beam is emitted from
//
// Returns:
//   - mgl32.Vec3: rest position
//   - mgl32.Quat: rest orientation
func RestTransform(ap aperture.Aperture) (mgl32.Vec3, mgl32.Quat) {
	return ap.Position, ShortestArc(ap.Direction)
}

// Build creates one beam per aperture, in aperture order. Rest transforms are computed
// here once and world transforms start equal to them.
//
// Parameters:
//   - src: aperture lookup
//
// Returns:
//   - []*Beam: the beams, len == src.Len()
func Build(src ApertureSource) []*Beam {
	n := src.Len()
	beams := make([]*Beam, 0, n)
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := 0; i < n; i++ {
		ap, ok := src.At(i)
		if !ok {
			continue
		}
		pos, rot := RestTransform(ap)
		b := &Beam{
			ID:                i,
			ApertureIndex:     i,
			BaseColor:         white,
			CurrentColor:      white,
			RandomTargetColor: white,
			ColorPhaseOffset:  float64(i) / float64(n),
			RestPosition:      pos,
			RestOrientation:   rot,
			WorldPosition:     pos,
			WorldDirection:    ap.Direction,
			WorldOrientation:  rot,
		}
		b.Model = modelMatrix(pos, rot)
		beams = append(beams, b)
	}
	return beams
}

func modelMatrix(pos mgl32.Vec3, rot mgl32.Quat) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot.Mat4())
}
