// Package light holds the host scene's light sources.
package light

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly. Position and direction are unused.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used as the key light that casts the sphere's shadow.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates with
	// distance up to a configurable range. Used as the glow inside the sphere.
	LightTypePoint
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     mgl32.Vec3
	direction    mgl32.Vec3
	color        colorful.Color
	intensity    float32
	lightRange   float32
	enabled      bool
	castsShadows bool
	shadowRes    int
}

// Light defines the interface for a light source in the host scene.
//
// The orb never manages lighting itself. Applying a quality profile only toggles
// shadow casting and the shadow map resolution on every light the host owns.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, directional, or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction of a directional light.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Color returns the light color.
	//
	// Returns:
	//   - colorful.Color: the color
	Color() colorful.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the attenuation cutoff distance of a point light.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light renders a shadow depth pass.
	// Ambient lights never cast shadows.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowMapResolution returns the width and height in texels of the shadow map.
	//
	// Returns:
	//   - int: the resolution
	ShadowMapResolution() int

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the position
	SetPosition(position mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - direction: the direction (will be normalized)
	SetDirection(direction mgl32.Vec3)

	// SetColor sets the light color.
	//
	// Parameters:
	//   - c: the color
	SetColor(c colorful.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light renders a shadow pass.
	// Ignored for ambient lights.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetShadowMapResolution sets the shadow map size. Values below MinShadowMapResolution
	// are raised to it.
	//
	// Parameters:
	//   - resolution: width and height in texels
	SetShadowMapResolution(resolution int)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  mgl32.Vec3{0, -1, 0},
		color:      colorful.Color{R: 1, G: 1, B: 1},
		intensity:  1.0,
		lightRange: 10.0,
		enabled:    true,
		shadowRes:  ShadowMapResolution,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lightType == LightTypeAmbient {
		l.castsShadows = false
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() colorful.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) ShadowMapResolution() int {
	return l.shadowRes
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	l.direction = normalize(direction)
}

func (l *lightImpl) SetColor(c colorful.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	if l.lightType == LightTypeAmbient {
		return
	}
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetShadowMapResolution(resolution int) {
	l.shadowRes = max(resolution, MinShadowMapResolution)
}

// normalize returns v scaled to unit length, or straight down for a zero vector.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-8 {
		return mgl32.Vec3{0, -1, 0}
	}
	return v.Normalize()
}
