package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/Carmen-Shannon/beam-orb/engine/camera"
	"github.com/Carmen-Shannon/beam-orb/engine/light"
	"github.com/Carmen-Shannon/beam-orb/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestStructSizes(t *testing.T) {
	if (&GPUVertex{}).Size() != 32 {
		t.Fatalf("vertex size %d", (&GPUVertex{}).Size())
	}
	if (&GPUBeamInstance{}).Size() != 96 {
		t.Fatalf("instance size %d", (&GPUBeamInstance{}).Size())
	}
	if (&GPUCameraUniform{}).Size() != 80 {
		t.Fatalf("camera size %d", (&GPUCameraUniform{}).Size())
	}
	if (&GPULight{}).Size() != 64 {
		t.Fatalf("light size %d", (&GPULight{}).Size())
	}
}

func TestMarshalVertices(t *testing.T) {
	m := mesh.NewSphere(2, 4, 2)
	buf := MarshalVertices(m.Vertices())
	if len(buf) != len(m.Vertices())*32 {
		t.Fatalf("len %d", len(buf))
	}
	last := m.Vertices()[len(m.Vertices())-1]
	off := (len(m.Vertices()) - 1) * 32
	if f32At(buf, off+4) != last.Position.Y() || f32At(buf, off+28) != last.TexCoord.Y() {
		t.Fatal("last vertex misplaced")
	}
	idx := MarshalIndices(m.Indices())
	if binary.LittleEndian.Uint32(idx[4:]) != m.Indices()[1] {
		t.Fatal("index mismatch")
	}
}

func TestMarshalBeamInstances(t *testing.T) {
	sys := beam.NewSystem(aperture.NewSet(3, 5))
	defer sys.Dispose()
	sys.Sync(mgl32.QuatIdent(), mgl32.Vec3{1, 2, 3})
	sys.UpdateUniforms(0)

	buf := MarshalBeamInstances(sys)
	if len(buf) != 3*96 {
		t.Fatalf("len %d", len(buf))
	}
	b := sys.Beams()[1]
	// translation column of the model matrix
	if f32At(buf, 96+48) != b.Model[12] || f32At(buf, 96+52) != b.Model[13] {
		t.Fatal("model translation misplaced")
	}
	if f32At(buf, 96+76) != sys.Opacity() || f32At(buf, 96+92) != 1 {
		t.Fatal("opacity or visibility misplaced")
	}

	sys.SetVisible(false)
	if f32At(MarshalBeamInstances(sys), 92) != 0 {
		t.Fatal("hidden group still visible")
	}

	sys.Dispose()
	if len(MarshalBeamInstances(sys)) != 0 || len(MarshalBeamInstances(nil)) != 0 {
		t.Fatal("disposed group produced data")
	}
}

func TestMarshalLightsSkipsDisabled(t *testing.T) {
	on := light.NewLight(light.LightTypePoint, light.WithIntensity(2), light.WithCastsShadows(true))
	off := light.NewLight(light.LightTypeDirectional, light.WithEnabled(false))
	buf, n := MarshalLights([]light.Light{on, off, nil})
	if n != 1 || len(buf) != 64 {
		t.Fatalf("n=%d len=%d", n, len(buf))
	}
	if binary.LittleEndian.Uint32(buf[12:]) != uint32(light.LightTypePoint) || f32At(buf, 28) != 2 {
		t.Fatal("light fields misplaced")
	}
	if binary.LittleEndian.Uint32(buf[48:]) != 1 || binary.LittleEndian.Uint32(buf[52:]) != light.ShadowMapResolution {
		t.Fatal("shadow fields misplaced")
	}
}

func TestCameraUniform(t *testing.T) {
	cam := camera.NewCamera(camera.WithController(camera.NewOrbitController(camera.WithRadius(10))))
	u := NewCameraUniform(cam)
	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("len %d", len(buf))
	}
	if f32At(buf, 72) != 10 {
		t.Fatalf("camera z %v", f32At(buf, 72))
	}
}

func TestLayouts(t *testing.T) {
	layouts := BeamLayouts()
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts", len(layouts))
	}
	if layouts[0].ArrayStride != 32 || layouts[0].StepMode != wgpu.VertexStepModeVertex || len(layouts[0].Attributes) != 3 {
		t.Fatalf("vertex layout %+v", layouts[0])
	}
	inst := layouts[1]
	if inst.ArrayStride != 96 || inst.StepMode != wgpu.VertexStepModeInstance || len(inst.Attributes) != 6 {
		t.Fatalf("instance layout %+v", inst)
	}
	if inst.Attributes[5].Offset != 80 || inst.Attributes[5].ShaderLocation != LocationIntensityTimePhaseVisible {
		t.Fatalf("last attribute %+v", inst.Attributes[5])
	}
}

func TestEmbeddedShadersMatchLayouts(t *testing.T) {
	if err := VerifyLayouts(); err != nil {
		t.Fatal(err)
	}
}

func TestParseVertexLayout(t *testing.T) {
	src := `
// comment: not a field
struct In {
    @location(0) a: vec3<f32>, // trailing
    @location(4) b: vec2f,
    @location(2) c: f32,
};`
	l, err := ParseVertexLayout(src, "In", wgpu.VertexStepModeInstance)
	if err != nil {
		t.Fatal(err)
	}
	if l.ArrayStride != 24 || l.StepMode != wgpu.VertexStepModeInstance || len(l.Attributes) != 3 {
		t.Fatalf("layout %+v", l)
	}
	if l.Attributes[1].Offset != 12 || l.Attributes[1].ShaderLocation != 4 || l.Attributes[2].Offset != 20 {
		t.Fatalf("attributes %+v", l.Attributes)
	}

	if _, err := ParseVertexLayout(src, "Missing", wgpu.VertexStepModeVertex); err == nil {
		t.Fatal("missing struct accepted")
	}
	out := `struct Out { @builtin(position) pos: vec4<f32>, @location(0) uv: vec2<f32>, };`
	if _, err := ParseVertexLayout(out, "Out", wgpu.VertexStepModeVertex); err == nil {
		t.Fatal("builtin field accepted as attribute")
	}
}

func TestStructSizeAlignment(t *testing.T) {
	src := `struct U { a: f32, b: vec3<f32>, c: vec2<f32>, };`
	// a at 0, b aligned to 16, c at 32, rounded to 16
	size, err := StructSize(src, "U")
	if err != nil {
		t.Fatal(err)
	}
	if size != 48 {
		t.Fatalf("size %d, want 48", size)
	}
	if _, err := StructSize(`struct V { a: array<f32>, };`, "V"); err == nil {
		t.Fatal("runtime array accepted")
	}
}
