// Package mesh builds the sphere surface geometry and carves aperture depressions into it.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single sphere surface vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Bounds is the bounding volume of a mesh.
type Bounds struct {
	// Min is the minimum corner of the axis-aligned bounding box.
	Min mgl32.Vec3

	// Max is the maximum corner of the axis-aligned bounding box.
	Max mgl32.Vec3

	// Radius is the bounding sphere radius around the origin.
	Radius float32
}

// Mesh owns the vertex and index buffers of the sphere. The buffers are mutated in
// place by Deform and released by Dispose.
type Mesh struct {
	radius   float32
	width    int
	height   int
	vertices []Vertex
	indices  []uint32
	bounds   Bounds
	disposed bool
}

// NewSphere builds a UV sphere centered on the origin.
// Segment counts below the minimum (3 around, 2 top to bottom) are raised to it.
//
// Parameters:
//   - radius: sphere radius (non-positive values fall back to 1)
//   - widthSegments: number of segments around the Y axis
//   - heightSegments: number of rings from pole to pole
//
// Returns:
//   - *Mesh: the generated mesh with computed bounds
func NewSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if radius <= 0 {
		radius = 1
	}
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertices := make([]Vertex, 0, (widthSegments+1)*(heightSegments+1))
	for ring := 0; ring <= heightSegments; ring++ {
		v := float32(ring) / float32(heightSegments)
		theta := float64(v) * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		for seg := 0; seg <= widthSegments; seg++ {
			u := float32(seg) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			n := mgl32.Vec3{
				float32(cosPhi * sinTheta),
				float32(cosTheta),
				float32(sinPhi * sinTheta),
			}
			vertices = append(vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				TexCoord: mgl32.Vec2{u, v},
			})
		}
	}

	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for ring := 0; ring < heightSegments; ring++ {
		for seg := 0; seg < widthSegments; seg++ {
			current := uint32(ring*(widthSegments+1) + seg)
			next := current + uint32(widthSegments) + 1

			// degenerate triangles at the poles are skipped
			if ring != 0 {
				indices = append(indices, current, next, current+1)
			}
			if ring != heightSegments-1 {
				indices = append(indices, current+1, next, next+1)
			}
		}
	}

	m := &Mesh{
		radius:   radius,
		width:    widthSegments,
		height:   heightSegments,
		vertices: vertices,
		indices:  indices,
	}
	m.ComputeBounds()
	return m
}

// Radius returns the radius the sphere was generated with.
func (m *Mesh) Radius() float32 {
	return m.radius
}

// Segments returns the segment counts the sphere was generated with, after raising
// them to the minimum. The vertex grid is (width+1) columns by (height+1) rings.
func (m *Mesh) Segments() (width, height int) {
	return m.width, m.height
}

// Vertices returns the live vertex buffer. It is nil after Dispose.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the live index buffer. It is nil after Dispose.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Bounds returns the bounding volume computed by the last ComputeBounds call.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// Disposed reports whether Dispose has been called.
func (m *Mesh) Disposed() bool {
	return m.disposed
}

// ComputeBounds recomputes the axis-aligned box and bounding radius from the
// current vertex positions.
func (m *Mesh) ComputeBounds() {
	if len(m.vertices) == 0 {
		m.bounds = Bounds{}
		return
	}

	minV := m.vertices[0].Position
	maxV := minV
	var maxDistSq float32
	for _, v := range m.vertices {
		p := v.Position
		for k := 0; k < 3; k++ {
			minV[k] = min(minV[k], p[k])
			maxV[k] = max(maxV[k], p[k])
		}
		maxDistSq = max(maxDistSq, p.Dot(p))
	}
	m.bounds = Bounds{
		Min:    minV,
		Max:    maxV,
		Radius: float32(math.Sqrt(float64(maxDistSq))),
	}
}

// Dispose releases the vertex and index buffers. Safe to call more than once.
func (m *Mesh) Dispose() {
	if m == nil || m.disposed {
		return
	}
	m.vertices = nil
	m.indices = nil
	m.bounds = Bounds{}
	m.disposed = true
}
