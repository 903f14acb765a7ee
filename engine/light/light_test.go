package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	if !l.Enabled() || l.CastsShadows() || l.Intensity() != 1 {
		t.Fatalf("unexpected defaults: enabled=%v shadows=%v intensity=%v", l.Enabled(), l.CastsShadows(), l.Intensity())
	}
	if l.ShadowMapResolution() != ShadowMapResolution {
		t.Fatalf("shadow resolution %d", l.ShadowMapResolution())
	}
	if l.Direction() != (mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("direction %v", l.Direction())
	}
}

func TestDirectionNormalized(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(mgl32.Vec3{3, 0, 4}))
	if !l.Direction().ApproxEqualThreshold(mgl32.Vec3{0.6, 0, 0.8}, 1e-6) {
		t.Fatalf("direction %v", l.Direction())
	}
	l.SetDirection(mgl32.Vec3{})
	if l.Direction() != (mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("zero direction not replaced: %v", l.Direction())
	}
}

func TestAmbientNeverCastsShadows(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithCastsShadows(true))
	if l.CastsShadows() {
		t.Fatal("ambient light casts shadows")
	}
	l.SetCastsShadows(true)
	if l.CastsShadows() {
		t.Fatal("ambient light accepted shadow toggle")
	}
}

func TestShadowToggle(t *testing.T) {
	l := NewLight(LightTypePoint, WithPosition(mgl32.Vec3{0, 0, 0}), WithRange(20))
	l.SetCastsShadows(true)
	if !l.CastsShadows() {
		t.Fatal("point light did not enable shadows")
	}
	l.SetShadowMapResolution(512)
	if l.ShadowMapResolution() != 512 {
		t.Fatalf("resolution %d", l.ShadowMapResolution())
	}
	l.SetShadowMapResolution(10)
	if l.ShadowMapResolution() != MinShadowMapResolution {
		t.Fatalf("resolution not raised: %d", l.ShadowMapResolution())
	}
}
