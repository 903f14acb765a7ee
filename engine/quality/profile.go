// Package quality maps device and viewport signals onto a discrete rendering profile.
package quality

import "fmt"

// Tier is a discrete bucket of rendering and geometry parameters.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ScreenSize is the viewport width breakpoint.
type ScreenSize int

const (
	ScreenMobile ScreenSize = iota
	ScreenTablet
	ScreenSmallDesktop
	ScreenDesktop
)

func (s ScreenSize) String() string {
	switch s {
	case ScreenMobile:
		return "mobile"
	case ScreenTablet:
		return "tablet"
	case ScreenSmallDesktop:
		return "small-desktop"
	case ScreenDesktop:
		return "desktop"
	}
	return fmt.Sprintf("ScreenSize(%d)", int(s))
}

// Breakpoint upper bounds in CSS pixels, inclusive.
const (
	MobileMaxWidth       = 480
	TabletMaxWidth       = 768
	SmallDesktopMaxWidth = 1024
)

// MaxPixelArea is the physical pixel count above which the tier drops to medium.
const MaxPixelArea = 3840 * 2160

// BeamParams are the visual parameters of the beam group.
type BeamParams struct {
	Length         float32
	Radius         float32
	Opacity        float32
	Intensity      float32
	AnimationSpeed float32
}

// Profile is a complete set of quality parameters. It is replaced wholesale, never patched.
type Profile struct {
	Tier       Tier
	ScreenSize ScreenSize

	SphereWidthSegments  int
	SphereHeightSegments int
	HoleCount            int
	BeamSegments         int
	Beam                 BeamParams

	Shadows             bool
	ShadowMapResolution int
	TargetFrameRate     int
	Antialias           bool
	Fog                 bool
	MaxPixelRatio       float32

	CameraFov      float32
	CameraDistance float32
}

// PixelRatio caps the device pixel density at the profile's MaxPixelRatio.
func (p Profile) PixelRatio(density float32) float32 {
	if density != density || density <= 0 {
		return 1
	}
	return min(density, p.MaxPixelRatio)
}

var tierTable = map[Tier]Profile{
	TierHigh: {
		SphereWidthSegments:  128,
		SphereHeightSegments: 64,
		HoleCount:            32,
		BeamSegments:         32,
		Beam:                 BeamParams{Length: 8, Radius: 0.15, Opacity: 0.6, Intensity: 1.5, AnimationSpeed: 1.0},
		Shadows:              true,
		ShadowMapResolution:  2048,
		TargetFrameRate:      60,
		Antialias:            true,
		Fog:                  true,
		MaxPixelRatio:        2,
	},
	TierMedium: {
		SphereWidthSegments:  64,
		SphereHeightSegments: 32,
		HoleCount:            24,
		BeamSegments:         16,
		Beam:                 BeamParams{Length: 6, Radius: 0.12, Opacity: 0.5, Intensity: 1.2, AnimationSpeed: 0.8},
		Shadows:              true,
		ShadowMapResolution:  1024,
		TargetFrameRate:      60,
		Antialias:            true,
		Fog:                  true,
		MaxPixelRatio:        1.5,
	},
	TierLow: {
		SphereWidthSegments:  32,
		SphereHeightSegments: 16,
		HoleCount:            12,
		BeamSegments:         8,
		Beam:                 BeamParams{Length: 4, Radius: 0.1, Opacity: 0.4, Intensity: 1.0, AnimationSpeed: 0.6},
		Shadows:              false,
		ShadowMapResolution:  512,
		TargetFrameRate:      30,
		Antialias:            false,
		Fog:                  false,
		MaxPixelRatio:        1,
	},
}

type cameraParams struct {
	fov      float32
	distance float32
}

var cameraTable = map[ScreenSize]cameraParams{
	ScreenMobile:       {fov: 75, distance: 14},
	ScreenTablet:       {fov: 65, distance: 12},
	ScreenSmallDesktop: {fov: 60, distance: 11},
	ScreenDesktop:      {fov: 50, distance: 10},
}

// ProfileFor assembles the profile for a tier and breakpoint.
func ProfileFor(tier Tier, size ScreenSize) Profile {
	p, ok := tierTable[tier]
	if !ok {
		p = tierTable[TierMedium]
		tier = TierMedium
	}
	cam, ok := cameraTable[size]
	if !ok {
		cam = cameraTable[ScreenDesktop]
		size = ScreenDesktop
	}
	p.Tier = tier
	p.ScreenSize = size
	p.CameraFov = cam.fov
	p.CameraDistance = cam.distance
	return p
}
