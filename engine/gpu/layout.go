package gpu

import "github.com/cogentcore/webgpu/wgpu"

// Vertex shader locations. Instance attributes follow the vertex attributes.
const (
	LocationPosition = iota
	LocationNormal
	LocationUV
	LocationModel0
	LocationModel1
	LocationModel2
	LocationModel3
	LocationColorOpacity
	LocationIntensityTimePhaseVisible
)

// Buffer usages of the orb's GPU buffers. Every buffer is rewritten from the CPU.
var (
	VertexBufferUsage   = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	IndexBufferUsage    = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	InstanceBufferUsage = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	UniformBufferUsage  = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	StorageBufferUsage  = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
)

// VertexLayout describes GPUVertex as a per-vertex buffer.
//
// Returns:
//   - wgpu.VertexBufferLayout: 32-byte stride, three attributes
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: LocationUV},
		},
	}
}

// BeamInstanceLayout describes GPUBeamInstance as a per-instance buffer.
//
// Returns:
//   - wgpu.VertexBufferLayout: 96-byte stride, six vec4 attributes
func BeamInstanceLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, 6)
	for i := range 6 {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(LocationModel0 + i),
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: 96,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// BeamLayouts returns the vertex and instance layouts of the beam pipeline in slot order.
//
// Returns:
//   - []wgpu.VertexBufferLayout: template vertices, then beam instances
func BeamLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{VertexLayout(), BeamInstanceLayout()}
}
