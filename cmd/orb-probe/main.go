// Command orb-probe reports the quality profile the orb would pick on this display.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/window"
)

type report struct {
	Device     quality.DeviceProfile `json:"device"`
	DiagonalMM float64               `json:"diagonalMM,omitempty"`
	Tier       string                `json:"tier"`
	ScreenSize string                `json:"screenSize"`
	PixelRatio float32               `json:"pixelRatio"`
	Profile    quality.Profile       `json:"profile"`
}

func main() {
	var (
		width, height int
		density       float64
		mobile        bool
		tablet        bool
	)
	flag.IntVar(&width, "width", 0, "Viewport width in pixels (0 = monitor width).")
	flag.IntVar(&height, "height", 0, "Viewport height in pixels (0 = monitor height).")
	flag.Float64Var(&density, "density", 0, "Skip the display probe and use this pixel density.")
	flag.BoolVar(&mobile, "mobile", false, "Treat the device as a phone (with -density).")
	flag.BoolVar(&tablet, "tablet", false, "Treat the device as a tablet (with -density).")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		device   quality.DeviceProfile
		diagonal float64
	)
	if density > 0 {
		if width <= 0 || height <= 0 {
			fmt.Fprintln(os.Stderr, "-density needs -width and -height")
			os.Exit(2)
		}
		device = quality.DeviceProfile{
			IsMobile:       mobile,
			IsTablet:       tablet,
			ViewportWidth:  width,
			ViewportHeight: height,
			PixelDensity:   float32(density),
		}
	} else {
		probe := window.NewDisplayProbe(window.WithViewport(width, height))
		d, err := probe.Display()
		if err != nil {
			probe.Close()
			logger.Error("display probe failed", slog.Any("error", err))
			os.Exit(1)
		}
		probe.Close()
		device = window.DeviceProfileFor(d, width, height)
		diagonal = d.DiagonalMM()
	}

	ctrl := quality.NewController(device)
	p := ctrl.Profile()
	out := report{
		Device:     ctrl.Device(),
		DiagonalMM: diagonal,
		Tier:       p.Tier.String(),
		ScreenSize: p.ScreenSize.String(),
		PixelRatio: ctrl.PixelRatio(),
		Profile:    p,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encoding report", slog.Any("error", err))
		os.Exit(1)
	}
}
