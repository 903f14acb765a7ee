package mesh

import (
	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/go-gl/mathgl/mgl32"
)

// Rim is the cosmetic ring drawn around one aperture. Rims are addressed by the index
// of the aperture they decorate and carry no ownership of it.
type Rim struct {
	ApertureIndex int
	Position      mgl32.Vec3
	Orientation   mgl32.Quat
	InnerRadius   float32
	OuterRadius   float32
	Visible       bool
}

// RimArena stores the rims of one sphere. It is owned by the sphere component and is
// disposable on its own, independent of any scene graph nesting.
type RimArena struct {
	rims     []Rim
	disposed bool
}

// NewRimArena creates one visible rim per aperture, sunk to the aperture's depth and
// oriented so the ring's +Y axis follows the aperture direction.
//
// Parameters:
//   - apertures: aperture sites
//   - holeRadius: outer radius of each ring
//   - holeDepth: inward offset of each ring center
//
// Returns:
//   - *RimArena: the populated arena
func NewRimArena(apertures []aperture.Aperture, holeRadius, holeDepth float32) *RimArena {
	up := mgl32.Vec3{0, 1, 0}
	rims := make([]Rim, len(apertures))
	for i, ap := range apertures {
		rims[i] = Rim{
			ApertureIndex: i,
			Position:      ap.Position.Sub(ap.Direction.Mul(holeDepth * 0.5)),
			Orientation:   mgl32.QuatBetweenVectors(up, ap.Direction),
			InnerRadius:   holeRadius * 0.7,
			OuterRadius:   holeRadius,
			Visible:       true,
		}
	}
	return &RimArena{rims: rims}
}

// Len returns the number of rims in the arena.
func (a *RimArena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.rims)
}

// At returns the rim at index i.
func (a *RimArena) At(i int) (Rim, bool) {
	if a == nil || i < 0 || i >= len(a.rims) {
		return Rim{}, false
	}
	return a.rims[i], true
}

// SetVisible toggles a single rim. Out of range indices are ignored.
func (a *RimArena) SetVisible(i int, visible bool) {
	if a == nil || i < 0 || i >= len(a.rims) {
		return
	}
	a.rims[i].Visible = visible
}

// SetAllVisible toggles every rim.
func (a *RimArena) SetAllVisible(visible bool) {
	if a == nil {
		return
	}
	for i := range a.rims {
		a.rims[i].Visible = visible
	}
}

// Dispose drops every rim. Safe to call more than once.
func (a *RimArena) Dispose() {
	if a == nil || a.disposed {
		return
	}
	a.rims = nil
	a.disposed = true
}
