package gpu

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	structRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex  = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex    = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)
)

type vertexFormat struct {
	format wgpu.VertexFormat
	size   uint64
}

// vertexFormats maps the WGSL attribute types used by the orb shaders to vertex formats.
var vertexFormats = map[string]vertexFormat{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
}

// hostLayout is the size and alignment of a host-shareable WGSL type.
type hostLayout struct {
	size  uint64
	align uint64
}

// hostLayouts follows https://www.w3.org/TR/WGSL/#alignment-and-size
var hostLayouts = map[string]hostLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

type wgslField struct {
	name     string
	typeName string
	location int
	builtin  bool
}

type wgslStruct struct {
	name   string
	fields []wgslField
}

// parseStructs extracts every struct declaration of a WGSL source. Line comments
// are dropped first.
func parseStructs(source string) []wgslStruct {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	var out []wgslStruct
	for _, m := range structRegex.FindAllStringSubmatch(sb.String(), -1) {
		s := wgslStruct{name: m[1]}
		for part := range strings.SplitSeq(m[2], ",") {
			part = strings.TrimSpace(part)
			fm := fieldRegex.FindStringSubmatch(part)
			if fm == nil {
				continue
			}
			f := wgslField{name: fm[1], typeName: strings.TrimSpace(fm[2]), location: -1}
			f.builtin = builtinRegex.MatchString(part)
			if lm := locationRegex.FindStringSubmatch(part); lm != nil {
				f.location, _ = strconv.Atoi(lm[1])
			}
			s.fields = append(s.fields, f)
		}
		out = append(out, s)
	}
	return out
}

func findStruct(source, name string) (wgslStruct, error) {
	for _, s := range parseStructs(source) {
		if s.name == name {
			return s, nil
		}
	}
	return wgslStruct{}, fmt.Errorf("struct %s not found", name)
}

// ParseVertexLayout builds a tightly packed vertex buffer layout from a WGSL vertex
// input struct. Every field needs an @location attribute.
//
// Parameters:
//   - source: WGSL source
//   - name: struct name
//   - step: vertex or instance stepping
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout
//   - error: error if the struct is missing or a field cannot be an attribute
func ParseVertexLayout(source, name string, step wgpu.VertexStepMode) (wgpu.VertexBufferLayout, error) {
	s, err := findStruct(source, name)
	if err != nil {
		return wgpu.VertexBufferLayout{}, err
	}
	layout := wgpu.VertexBufferLayout{StepMode: step}
	for _, f := range s.fields {
		if f.builtin || f.location < 0 {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%s.%s is not a vertex attribute", name, f.name)
		}
		vf, ok := vertexFormats[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%s.%s: unsupported attribute type %s", name, f.name, f.typeName)
		}
		layout.Attributes = append(layout.Attributes, wgpu.VertexAttribute{
			Format:         vf.format,
			Offset:         layout.ArrayStride,
			ShaderLocation: uint32(f.location),
		})
		layout.ArrayStride += vf.size
	}
	return layout, nil
}

// StructSize returns the host-shareable size of a WGSL struct as laid out in a
// uniform or storage buffer. Nested struct fields are not supported.
//
// Parameters:
//   - source: WGSL source
//   - name: struct name
//
// Returns:
//   - uint64: size in bytes, rounded to the struct alignment
//   - error: error if the struct is missing or uses an unknown type
func StructSize(source, name string) (uint64, error) {
	s, err := findStruct(source, name)
	if err != nil {
		return 0, err
	}
	var offset uint64
	align := uint64(1)
	for _, f := range s.fields {
		l, ok := hostLayouts[f.typeName]
		if !ok {
			return 0, fmt.Errorf("%s.%s: unsupported type %s", name, f.name, f.typeName)
		}
		offset = roundUp(l.align, offset) + l.size
		align = max(align, l.align)
	}
	return roundUp(align, offset), nil
}

func roundUp(align, v uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

// VerifyLayouts checks the embedded WGSL structs against the Go marshalers and the
// pipeline vertex layouts.
//
// Returns:
//   - error: every mismatch found, joined
func VerifyLayouts() error {
	var errs []error

	vertexChecks := []struct {
		source, name string
		want         wgpu.VertexBufferLayout
		size         int
	}{
		{GPUVertexSource, "Vertex", VertexLayout(), (&GPUVertex{}).Size()},
		{GPUBeamInstanceSource, "BeamInstance", BeamInstanceLayout(), (&GPUBeamInstance{}).Size()},
	}
	for _, c := range vertexChecks {
		got, err := ParseVertexLayout(c.source, c.name, c.want.StepMode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if got.ArrayStride != uint64(c.size) || got.ArrayStride != c.want.ArrayStride {
			errs = append(errs, fmt.Errorf("%s stride: wgsl %d, layout %d, go %d", c.name, got.ArrayStride, c.want.ArrayStride, c.size))
		}
		if len(got.Attributes) != len(c.want.Attributes) {
			errs = append(errs, fmt.Errorf("%s: wgsl has %d attributes, layout %d", c.name, len(got.Attributes), len(c.want.Attributes)))
			continue
		}
		for i, a := range got.Attributes {
			if a != c.want.Attributes[i] {
				errs = append(errs, fmt.Errorf("%s attribute %d: wgsl %+v, layout %+v", c.name, i, a, c.want.Attributes[i]))
			}
		}
	}

	uniformChecks := []struct {
		source, name string
		size         int
	}{
		{GPUCameraUniformSource, "CameraUniform", (&GPUCameraUniform{}).Size()},
		{GPULightSource, "Light", (&GPULight{}).Size()},
	}
	for _, c := range uniformChecks {
		got, err := StructSize(c.source, c.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if got != uint64(c.size) {
			errs = append(errs, fmt.Errorf("%s size: wgsl %d, go %d", c.name, got, c.size))
		}
	}
	return errors.Join(errs...)
}
