// Package aperture places light-emitting openings on the surface of a sphere.
//
// Apertures are distributed with a spherical Fibonacci (golden angle) lattice, which
// gives near-uniform, low-discrepancy coverage without any random component. The same
// (count, radius) pair always produces the same ordered sequence.
package aperture

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// goldenRatio is (1 + √5) / 2.
var goldenRatio = (1 + math.Sqrt(5)) / 2

// Aperture is a single opening on the sphere surface. Values are immutable once
// generated; a sphere regenerates its apertures wholesale instead of editing them.
type Aperture struct {
	// ID is the aperture's index within its owning sequence.
	ID int

	// Polar is the polar angle in radians measured from +Y.
	Polar float32

	// Azimuth is the azimuthal angle in radians around +Y.
	Azimuth float32

	// Direction is the unit outward normal at the aperture.
	Direction mgl32.Vec3

	// Position is Direction scaled by the sphere radius.
	Position mgl32.Vec3
}

// Generate computes n apertures on a sphere of the given radius.
// For index i the azimuth is 2π·i/φ and cos(polar) = 1 − 2(i+0.5)/n.
// A non-positive n yields an empty, non-nil slice.
//
// Parameters:
//   - n: number of apertures
//   - radius: sphere radius used to scale each position
//
// Returns:
//   - []Aperture: n apertures ordered by ID
func Generate(n int, radius float32) []Aperture {
	if n <= 0 {
		return []Aperture{}
	}

	out := make([]Aperture, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / goldenRatio
		polar := math.Acos(1 - 2*(float64(i)+0.5)/float64(n))

		sinP := math.Sin(polar)
		dir := mgl32.Vec3{
			float32(sinP * math.Cos(theta)),
			float32(math.Cos(polar)),
			float32(sinP * math.Sin(theta)),
		}.Normalize()

		out[i] = Aperture{
			ID:        i,
			Polar:     float32(polar),
			Azimuth:   float32(math.Mod(theta, 2*math.Pi)),
			Direction: dir,
			Position:  dir.Mul(radius),
		}
	}
	return out
}
