package mesh

import (
	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
)

// normalBlend scales how far a vertex normal is pulled toward the inward aperture axis.
const normalBlend = 0.3

// Deform carves a depression at every aperture site by pushing nearby vertices
// inward along the negated aperture direction.
//
// For each vertex at distance d < holeRadius from an aperture's surface position,
// factor = 1 − d/holeRadius, the vertex moves holeDepth·factor² inward and its normal
// is blended toward the inward axis by factor·0.3 before renormalizing.
//
// Apertures are applied one after another over the same buffer, so vertices shared by
// overlapping apertures compound their displacement and the result depends on
// aperture order. Bounds are recomputed once at the end.
//
// Parameters:
//   - m: the mesh to mutate (no-op when nil or disposed)
//   - apertures: aperture sites in processing order
//   - holeRadius: influence radius around each site (no-op when <= 0)
//   - holeDepth: maximum inward displacement at the site center
func Deform(m *Mesh, apertures []aperture.Aperture, holeRadius, holeDepth float32) {
	if m == nil || m.disposed || holeRadius <= 0 {
		return
	}

	for _, ap := range apertures {
		inward := ap.Direction.Mul(-1)
		for i := range m.vertices {
			v := &m.vertices[i]
			d := v.Position.Sub(ap.Position).Len()
			if d >= holeRadius {
				continue
			}

			factor := 1 - d/holeRadius
			v.Position = v.Position.Add(inward.Mul(holeDepth * factor * factor))

			t := factor * normalBlend
			blended := v.Normal.Mul(1 - t).Add(inward.Mul(t))
			if blended.Len() > 1e-6 {
				v.Normal = blended.Normalize()
			}
		}
	}

	m.ComputeBounds()
}
