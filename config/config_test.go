package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/beam-orb/engine"
	"github.com/Carmen-Shannon/beam-orb/engine/color"
	"github.com/Carmen-Shannon/beam-orb/engine/scene"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{"colorMode": "white", "beam": {"opacity": 0.25}}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ColorMode != "white" || cfg.SphereRadius != 5 || cfg.HoleRadius != 0.6 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Beam.Opacity == nil || *cfg.Beam.Opacity != 0.25 || cfg.Beam.Intensity != nil {
		t.Fatalf("beam overrides %+v", cfg.Beam)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     `{"sphereRadiuss": 3}`,
		"zero radius":     `{"sphereRadius": 0}`,
		"negative depth":  `{"holeDepth": -0.1}`,
		"bad level":       `{"logLevel": "loud"}`,
		"bad device":      `{"device": {"viewportWidth": 0, "viewportHeight": 10}}`,
		"malformed":       `{"sphereRadius": `,
		"wrong type":      `{"colorMode": 3}`,
		"zero hole width": `{"holeRadius": 0}`,
		"inverted bounds": `{"rotation": {"minSpeed": 2, "maxSpeed": 1}}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(src)); err == nil {
				t.Fatal("accepted invalid config")
			}
		})
	}
}

func TestRotationBoundsKeepDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{"rotation": {"minSpeed": 0.2}}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rotation.MinSpeed != 0.2 || cfg.Rotation.MaxSpeed != 2 {
		t.Fatalf("bounds %v..%v", cfg.Rotation.MinSpeed, cfg.Rotation.MaxSpeed)
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	if lvl, err := cfg.Level(); err != nil || lvl != slog.LevelDebug {
		t.Fatalf("level %v err %v", lvl, err)
	}
	cfg.LogLevel = ""
	if lvl, _ := cfg.Level(); lvl != slog.LevelInfo {
		t.Fatalf("empty level %v", lvl)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orb.json")
	src := `{
  "sphereRadius": 4,
  "colorMode": "random",
  "rotation": {"speed": 1.2, "direction": -1},
  "device": {"isMobile": true, "viewportWidth": 390, "viewportHeight": 844, "pixelDensity": 3}
}`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SphereRadius != 4 || cfg.Device == nil || !cfg.Device.IsMobile {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file err %v", err)
	}
}

func TestOrbOptionsBuildAnOrb(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{
  "colorMode": "white",
  "rotation": {"speed": 1.5, "direction": -1, "maxSpeed": 3},
  "beam": {"intensity": 2},
  "device": {"isMobile": true, "viewportWidth": 390, "viewportHeight": 844, "pixelDensity": 3}
}`))
	if err != nil {
		t.Fatal(err)
	}
	host := scene.NewScene("config", nil, scene.WithDefaultLights())
	o, err := engine.NewOrb(append(cfg.OrbOptions(), engine.WithSceneHost(host))...)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Dispose()

	c := o.Config()
	if c.ColorMode != color.ModeWhite || c.Intensity != 2 {
		t.Fatalf("config not applied: %+v", c)
	}
	if c.Rotation.CurrentSpeed != 1.5 || c.Rotation.Direction != -1 || c.Rotation.MaxSpeed != 3 {
		t.Fatalf("rotation %+v", c.Rotation)
	}
	if c.Profile.HoleCount != 12 {
		t.Fatalf("device override ignored, holes=%d", c.Profile.HoleCount)
	}
	if o.BeamGroup().Len() != 12 {
		t.Fatalf("beams %d", o.BeamGroup().Len())
	}
}
