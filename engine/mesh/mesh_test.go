package mesh

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewSphere_VerticesOnSurface(t *testing.T) {
	m := NewSphere(2, 16, 8)
	if got, want := len(m.Vertices()), 17*9; got != want {
		t.Fatalf("expected %d vertices, got %d", want, got)
	}
	for i, v := range m.Vertices() {
		if d := math.Abs(float64(v.Position.Len()) - 2); d > 1e-5 {
			t.Fatalf("vertex %d off the surface by %.3g", i, d)
		}
		if d := math.Abs(float64(v.Normal.Len()) - 1); d > 1e-5 {
			t.Fatalf("vertex %d normal not unit: %.6f", i, v.Normal.Len())
		}
	}
	if len(m.Indices())%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices()))
	}
	for _, idx := range m.Indices() {
		if int(idx) >= len(m.Vertices()) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if d := math.Abs(float64(m.Bounds().Radius) - 2); d > 1e-5 {
		t.Fatalf("expected bounding radius 2, got %.6f", m.Bounds().Radius)
	}
}

func TestNewSphere_ClampsDegenerateInput(t *testing.T) {
	m := NewSphere(-1, 0, 0)
	if m.Radius() != 1 {
		t.Fatalf("expected fallback radius 1, got %v", m.Radius())
	}
	if len(m.Vertices()) != 4*3 {
		t.Fatalf("expected minimum 3x2 tessellation, got %d vertices", len(m.Vertices()))
	}
	if w, h := m.Segments(); w != 3 || h != 2 {
		t.Fatalf("expected segments 3x2, got %dx%d", w, h)
	}
}

func TestDeform_PushesVerticesInward(t *testing.T) {
	m := NewSphere(1, 64, 32)
	aps := aperture.Generate(6, 1)
	Deform(m, aps, 0.3, 0.1)

	for _, ap := range aps {
		var deepest float32 = 2
		for _, v := range m.Vertices() {
			// only look at vertices that started near the site
			if v.Normal.Dot(ap.Direction) < 0.9 {
				continue
			}
			deepest = min(deepest, v.Position.Len())
		}
		if deepest >= 1-1e-4 {
			t.Fatalf("aperture %d: expected a depression, deepest radius %.5f", ap.ID, deepest)
		}
		if deepest < 1-0.1-1e-4 {
			t.Fatalf("aperture %d: depression deeper than holeDepth: %.5f", ap.ID, deepest)
		}
	}
	for i, v := range m.Vertices() {
		if d := math.Abs(float64(v.Normal.Len()) - 1); d > 1e-4 {
			t.Fatalf("vertex %d normal not renormalized: %.6f", i, v.Normal.Len())
		}
	}
}

func TestDeform_ExactDisplacementAtSite(t *testing.T) {
	m := &Mesh{vertices: []Vertex{
		{Position: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{0, 0.9, 0}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{1, 0, 0}},
	}}
	ap := aperture.Aperture{Direction: mgl32.Vec3{0, 1, 0}, Position: mgl32.Vec3{0, 1, 0}}
	Deform(m, []aperture.Aperture{ap}, 0.2, 0.1)

	v := m.Vertices()
	// d = 0, factor = 1: full depth
	if d := math.Abs(float64(v[0].Position.Y()) - 0.9); d > 1e-6 {
		t.Fatalf("site vertex expected y=0.9, got %.6f", v[0].Position.Y())
	}
	// d = 0.1, factor = 0.5: depth 0.1 * 0.25
	if d := math.Abs(float64(v[1].Position.Y()) - 0.875); d > 1e-6 {
		t.Fatalf("half-way vertex expected y=0.875, got %.6f", v[1].Position.Y())
	}
	// outside the radius: untouched
	if v[2].Position != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("distant vertex moved: %v", v[2].Position)
	}
	// normal blended toward -Y by 0.3 then renormalized, still pointing up
	if !v[0].Normal.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("site normal expected (0,1,0) after blend, got %v", v[0].Normal)
	}
	if m.Bounds().Max.X() != 1 {
		t.Fatalf("expected bounds recomputed, got %+v", m.Bounds())
	}
}

func TestDeform_OverlapCompoundsInOrder(t *testing.T) {
	newMesh := func() *Mesh {
		return &Mesh{vertices: []Vertex{{Position: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 1, 0}}}}
	}
	a := aperture.Aperture{Direction: mgl32.Vec3{0, 1, 0}, Position: mgl32.Vec3{0, 1, 0}}
	b := aperture.Aperture{Direction: mgl32.Vec3{0, 1, 0}, Position: mgl32.Vec3{0, 0.95, 0}}

	ab := newMesh()
	Deform(ab, []aperture.Aperture{a, b}, 0.2, 0.1)
	ba := newMesh()
	Deform(ba, []aperture.Aperture{b, a}, 0.2, 0.1)

	if ab.Vertices()[0].Position == ba.Vertices()[0].Position {
		t.Fatal("expected overlapping apertures to depend on processing order")
	}
	if ab.Vertices()[0].Position.Y() >= 0.9 {
		t.Fatalf("expected compounded depth beyond a single hole, got %.5f", ab.Vertices()[0].Position.Y())
	}
}

func TestDispose_Idempotent(t *testing.T) {
	m := NewSphere(1, 8, 4)
	m.Dispose()
	m.Dispose()
	if m.Vertices() != nil || m.Indices() != nil || !m.Disposed() {
		t.Fatal("expected buffers cleared after dispose")
	}
	// deforming a disposed mesh is a no-op
	Deform(m, aperture.Generate(3, 1), 0.5, 0.1)
	if m.Vertices() != nil {
		t.Fatal("disposed mesh was repopulated")
	}
}

func TestRimArena(t *testing.T) {
	aps := aperture.Generate(5, 2)
	arena := NewRimArena(aps, 0.3, 0.1)
	if arena.Len() != 5 {
		t.Fatalf("expected 5 rims, got %d", arena.Len())
	}
	rim, ok := arena.At(2)
	if !ok || rim.ApertureIndex != 2 || !rim.Visible {
		t.Fatalf("unexpected rim: %+v", rim)
	}
	up := rim.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
	if !up.ApproxEqualThreshold(aps[2].Direction, 1e-4) {
		t.Fatalf("rim axis %v does not follow aperture direction %v", up, aps[2].Direction)
	}

	arena.SetVisible(2, false)
	arena.SetVisible(99, false)
	if rim, _ := arena.At(2); rim.Visible {
		t.Fatal("expected rim 2 hidden")
	}

	arena.Dispose()
	arena.Dispose()
	if arena.Len() != 0 {
		t.Fatal("expected empty arena after dispose")
	}
}
