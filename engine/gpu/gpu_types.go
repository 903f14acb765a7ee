// Package gpu converts orb state into GPU-aligned buffers and describes their layouts.
package gpu

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/Carmen-Shannon/beam-orb/engine/camera"
	"github.com/Carmen-Shannon/beam-orb/engine/light"
	"github.com/Carmen-Shannon/beam-orb/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource is the canonical WGSL definition of the Vertex struct.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is one sphere or beam template vertex.
// Size: 32 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	UV       [2]float32 // offset 24
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	putFloats(buf[0:], g.Position[:])
	putFloats(buf[12:], g.Normal[:])
	putFloats(buf[24:], g.UV[:])
}

// MarshalVertices packs mesh vertices back to back.
//
// Parameters:
//   - vertices: the mesh vertices
//
// Returns:
//   - []byte: len(vertices)*32 bytes
func MarshalVertices(vertices []mesh.Vertex) []byte {
	const stride = 32
	buf := make([]byte, len(vertices)*stride)
	for i, v := range vertices {
		g := GPUVertex{Position: v.Position, Normal: v.Normal, UV: v.TexCoord}
		g.put(buf[i*stride:])
	}
	return buf
}

// MarshalIndices packs 32-bit indices little-endian.
//
// Parameters:
//   - indices: triangle list indices
//
// Returns:
//   - []byte: len(indices)*4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// GPUBeamInstanceSource is the canonical WGSL definition of the BeamInstance struct.
//
//go:embed assets/beam_instance.wgsl
var GPUBeamInstanceSource string

// GPUBeamInstance is the per-beam instance record. The model matrix is stored
// column-major as four vec4 attributes.
// Size: 96 bytes.
type GPUBeamInstance struct {
	Model     [16]float32 // offset  0: model matrix (column-major)
	Color     [3]float32  // offset 64
	Opacity   float32     // offset 76
	Intensity float32     // offset 80
	Time      float32     // offset 84
	Phase     float32     // offset 88
	Visible   float32     // offset 92: 1 visible, 0 hidden
}

// Size returns the size of the GPUBeamInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUBeamInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the instance for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer
func (g *GPUBeamInstance) Marshal() []byte {
	buf := make([]byte, 96)
	g.put(buf)
	return buf
}

func (g *GPUBeamInstance) put(buf []byte) {
	putFloats(buf[0:], g.Model[:])
	putFloats(buf[64:], g.Color[:])
	putFloats(buf[76:], []float32{g.Opacity, g.Intensity, g.Time, g.Phase, g.Visible})
}

// NewBeamInstance builds the instance record of one beam.
//
// Parameters:
//   - b: the beam
//   - visible: whether the beam group is shown
//
// Returns:
//   - GPUBeamInstance: the instance record
func NewBeamInstance(b *beam.Beam, visible bool) GPUBeamInstance {
	g := GPUBeamInstance{
		Model:     [16]float32(b.Model),
		Color:     b.Uniforms.Color,
		Opacity:   b.Uniforms.Opacity,
		Intensity: b.Uniforms.Intensity,
		Time:      b.Uniforms.Time,
		Phase:     float32(b.ColorPhaseOffset),
	}
	if visible {
		g.Visible = 1
	}
	return g
}

// MarshalBeamInstances packs the instance record of every beam in the group.
// A nil or disposed group yields an empty buffer.
//
// Parameters:
//   - group: the beam system
//
// Returns:
//   - []byte: Len()*96 bytes
func MarshalBeamInstances(group beam.System) []byte {
	if group == nil || group.Disposed() {
		return []byte{}
	}
	const stride = 96
	beams := group.Beams()
	buf := make([]byte, len(beams)*stride)
	for i, b := range beams {
		g := NewBeamInstance(b, group.Visible())
		g.put(buf[i*stride:])
	}
	return buf
}

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the camera uniform buffer.
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: mat4x4<f32>
	CameraPosition [3]float32  // offset 64
	_pad           float32     // offset 76
}

// NewCameraUniform reads the camera's matrices and controller position.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - GPUCameraUniform: the uniform
func NewCameraUniform(cam camera.Camera) GPUCameraUniform {
	var pos mgl32.Vec3
	if ctrl := cam.Controller(); ctrl != nil {
		pos = ctrl.Position()
	}
	return GPUCameraUniform{
		ViewProj:       [16]float32(cam.ViewProjectionMatrix()),
		CameraPosition: pos,
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:], g.ViewProj[:])
	putFloats(buf[64:], g.CameraPosition[:])
	return buf
}

// GPULightSource is the canonical WGSL definition of the Light struct.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is one light record of the light storage buffer.
// Size: 64 bytes (std430 aligned).
type GPULight struct {
	Position            [3]float32 // offset  0
	LightType           uint32     // offset 12
	Color               [3]float32 // offset 16
	Intensity           float32    // offset 28
	Direction           [3]float32 // offset 32
	LightRange          float32    // offset 44
	CastsShadows        uint32     // offset 48
	ShadowMapResolution uint32     // offset 52
	_pad                [2]uint32  // offset 56
}

// NewLight converts a host light.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GPULight: the light record
func NewLight(l light.Light) GPULight {
	c := l.Color()
	g := GPULight{
		Position:            l.Position(),
		LightType:           uint32(l.Type()),
		Color:               [3]float32{float32(c.R), float32(c.G), float32(c.B)},
		Intensity:           l.Intensity(),
		Direction:           l.Direction(),
		LightRange:          l.Range(),
		ShadowMapResolution: uint32(l.ShadowMapResolution()),
	}
	if l.CastsShadows() {
		g.CastsShadows = 1
	}
	return g
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the light for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putFloats(buf[0:], g.Position[:])
	binary.LittleEndian.PutUint32(buf[12:], g.LightType)
	putFloats(buf[16:], g.Color[:])
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Intensity))
	putFloats(buf[32:], g.Direction[:])
	binary.LittleEndian.PutUint32(buf[44:], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(buf[48:], g.CastsShadows)
	binary.LittleEndian.PutUint32(buf[52:], g.ShadowMapResolution)
	return buf
}

// MarshalLights packs every enabled light.
//
// Parameters:
//   - lights: the host lights
//
// Returns:
//   - []byte: the packed records
//   - uint32: number of records written
func MarshalLights(lights []light.Light) ([]byte, uint32) {
	buf := make([]byte, 0, len(lights)*64)
	var n uint32
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		g := NewLight(l)
		buf = append(buf, g.Marshal()...)
		n++
	}
	return buf, n
}

func putFloats(buf []byte, vals []float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
