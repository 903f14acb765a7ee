// Package window reads display properties from the platform windowing system.
package window

import (
	"errors"
	"math"

	"github.com/Carmen-Shannon/beam-orb/engine/quality"
)

// ErrNoMonitor is returned when the windowing system reports no connected monitor.
var ErrNoMonitor = errors.New("window: no monitor connected")

// Physical diagonal thresholds in millimetres used to classify a display.
const (
	MobileMaxDiagonalMM = 178 // 7 in
	TabletMaxDiagonalMM = 280 // 11 in
)

// Display describes the primary monitor.
type Display struct {
	// Width and Height are the video mode size in physical pixels.
	Width  int
	Height int

	// ContentScaleX and ContentScaleY are the platform's DPI scale factors.
	ContentScaleX float32
	ContentScaleY float32

	// PhysicalWidthMM and PhysicalHeightMM are the reported panel size, zero when unknown.
	PhysicalWidthMM  int
	PhysicalHeightMM int
}

// DiagonalMM returns the physical panel diagonal, or 0 when unknown.
func (d Display) DiagonalMM() float64 {
	if d.PhysicalWidthMM <= 0 || d.PhysicalHeightMM <= 0 {
		return 0
	}
	return math.Hypot(float64(d.PhysicalWidthMM), float64(d.PhysicalHeightMM))
}

// Density returns the larger of the two content scales, or 1 when unset.
func (d Display) Density() float32 {
	s := max(d.ContentScaleX, d.ContentScaleY)
	if s <= 0 || s != s {
		return 1
	}
	return s
}

// DisplayProbe reads the primary display and reports it as device signals.
type DisplayProbe interface {
	quality.DeviceProfileProvider

	// Display returns the raw properties of the primary monitor.
	//
	// Returns:
	//   - Display: the monitor properties
	//   - error: error if the windowing system could not be queried
	Display() (Display, error)

	// Close releases the windowing system. Safe to call more than once.
	//
	// Returns:
	//   - error: error if termination fails
	Close() error
}

// DeviceProfileFor converts display properties into device signals.
// A zero viewport is taken to be the whole monitor in logical pixels.
//
// Parameters:
//   - d: the display properties
//   - viewportWidth, viewportHeight: logical viewport size, or zero
//
// Returns:
//   - quality.DeviceProfile: the device signals
func DeviceProfileFor(d Display, viewportWidth, viewportHeight int) quality.DeviceProfile {
	density := d.Density()
	if viewportWidth <= 0 || viewportHeight <= 0 {
		viewportWidth = int(float32(d.Width) / density)
		viewportHeight = int(float32(d.Height) / density)
	}

	diag := d.DiagonalMM()
	return quality.DeviceProfile{
		IsMobile:       diag > 0 && diag <= MobileMaxDiagonalMM,
		IsTablet:       diag > MobileMaxDiagonalMM && diag <= TabletMaxDiagonalMM,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		PixelDensity:   density,
	}
}
