package beam

import (
	"math"

	"github.com/Carmen-Shannon/beam-orb/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Template is the canonical beam mesh shared by every beam instance: an open, slightly
// flared tube along +Y with its base ring at the origin.
type Template struct {
	Segments int
	Length   float32
	Radius   float32
	Vertices []mesh.Vertex
	Indices  []uint32
}

// flare is the ratio of the far ring radius to the base ring radius.
const flare = 2.5

// NewTemplate builds the shared beam mesh.
//
// Parameters:
//   - segments: radial segments (minimum 3)
//   - length: beam length along +Y
//   - radius: base ring radius
//
// Returns:
//   - *Template: the shared mesh
func NewTemplate(segments int, length, radius float32) *Template {
	segments = max(segments, 3)
	t := &Template{Segments: segments, Length: length, Radius: radius}

	t.Vertices = make([]mesh.Vertex, 0, (segments+1)*2)
	for ring := 0; ring < 2; ring++ {
		y := float32(ring) * length
		r := radius
		if ring == 1 {
			r *= flare
		}
		for seg := 0; seg <= segments; seg++ {
			u := float32(seg) / float32(segments)
			s, c := math.Sincos(float64(u) * 2 * math.Pi)
			n := mgl32.Vec3{float32(c), 0, float32(s)}
			t.Vertices = append(t.Vertices, mesh.Vertex{
				Position: mgl32.Vec3{n.X() * r, y, n.Z() * r},
				Normal:   n,
				TexCoord: mgl32.Vec2{u, float32(ring)},
			})
		}
	}

	t.Indices = make([]uint32, 0, segments*6)
	for seg := 0; seg < segments; seg++ {
		a := uint32(seg)
		b := a + uint32(segments) + 1
		t.Indices = append(t.Indices, a, b, a+1, a+1, b, b+1)
	}
	return t
}

// Dispose releases the template buffers.
func (t *Template) Dispose() {
	if t == nil {
		return
	}
	t.Vertices = nil
	t.Indices = nil
}
