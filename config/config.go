// Package config loads the JSON configuration of the orb host binaries.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/beam-orb/engine"
	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/rotation"
)

// RotationCfg tunes the spin. Zero values other than the speed bounds keep the
// controller defaults.
type RotationCfg struct {
	Speed       float32 `json:"speed,omitempty"`
	Direction   float32 `json:"direction,omitempty"`
	MinSpeed    float32 `json:"minSpeed"`
	MaxSpeed    float32 `json:"maxSpeed"`
	Smoothing   float32 `json:"smoothing,omitempty"`
	Scale       float32 `json:"scale,omitempty"`
	XAxisFactor float32 `json:"xAxisFactor,omitempty"`
	ZAxisFactor float32 `json:"zAxisFactor,omitempty"`
}

// BeamCfg overrides the quality profile's initial beam parameters. Nil keeps the profile value.
type BeamCfg struct {
	Opacity        *float32 `json:"opacity,omitempty"`
	Intensity      *float32 `json:"intensity,omitempty"`
	AnimationSpeed *float32 `json:"animationSpeed,omitempty"`
}

// SyncCfg enables the parallel beam synchronization path.
type SyncCfg struct {
	Workers   int `json:"workers,omitempty"`
	Threshold int `json:"threshold,omitempty"`
}

// WindowCfg sizes the preview window.
type WindowCfg struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Config is the host configuration file.
type Config struct {
	SphereRadius float32 `json:"sphereRadius"`
	HoleRadius   float32 `json:"holeRadius"`
	HoleDepth    float32 `json:"holeDepth"`
	ColorMode    string  `json:"colorMode"`

	Rotation RotationCfg `json:"rotation"`
	Beam     BeamCfg     `json:"beam"`
	Sync     SyncCfg     `json:"sync"`
	Window   WindowCfg   `json:"window"`

	// Device replaces the probed device signals when set.
	Device *quality.DeviceProfile `json:"device,omitempty"`

	LogLevel  string `json:"logLevel,omitempty"`
	Profiling bool   `json:"profiling,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SphereRadius: 5,
		HoleRadius:   0.6,
		HoleDepth:    0.3,
		ColorMode:    "rainbow",
		Rotation:     RotationCfg{Speed: 0.5, Direction: 1, MinSpeed: 0, MaxSpeed: 2},
		Window:       WindowCfg{Width: 1280, Height: 720, Title: "beam orb"},
		LogLevel:     "info",
	}
}

// Load reads a configuration file. Keys missing from the file keep their defaults.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - Config: the configuration
//   - error: error if the file cannot be read or is invalid
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r on top of Default and validates it.
// Unknown keys are rejected.
//
// Parameters:
//   - r: JSON source
//
// Returns:
//   - Config: the configuration
//   - error: error if the JSON is malformed or a value is invalid
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values NewOrb would refuse. Out-of-range tunables are left for
// the orb to clamp.
//
// Returns:
//   - error: the first invalid value found
func (c Config) Validate() error {
	if c.SphereRadius <= 0 {
		return fmt.Errorf("sphereRadius must be > 0, got %v", c.SphereRadius)
	}
	if c.HoleRadius <= 0 {
		return fmt.Errorf("holeRadius must be > 0, got %v", c.HoleRadius)
	}
	if c.HoleDepth < 0 {
		return fmt.Errorf("holeDepth must be >= 0, got %v", c.HoleDepth)
	}
	if c.Rotation.MinSpeed < 0 || c.Rotation.MaxSpeed < c.Rotation.MinSpeed {
		return fmt.Errorf("rotation speed bounds must satisfy 0 <= minSpeed <= maxSpeed, got %v..%v", c.Rotation.MinSpeed, c.Rotation.MaxSpeed)
	}
	if c.Device != nil && (c.Device.ViewportWidth <= 0 || c.Device.ViewportHeight <= 0) {
		return fmt.Errorf("device viewport must be positive, got %dx%d", c.Device.ViewportWidth, c.Device.ViewportHeight)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. Empty means info.
//
// Returns:
//   - slog.Level: the level
//   - error: error if the name is unknown
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logLevel: %w", err)
	}
	return lvl, nil
}

// RotationOptions translates the rotation section into controller options.
//
// Returns:
//   - []rotation.ControllerBuilderOption: the options
func (c Config) RotationOptions() []rotation.ControllerBuilderOption {
	r := c.Rotation
	opts := []rotation.ControllerBuilderOption{rotation.WithSpeedBounds(r.MinSpeed, r.MaxSpeed)}
	if r.Smoothing != 0 {
		opts = append(opts, rotation.WithSmoothing(r.Smoothing))
	}
	if r.Scale != 0 {
		opts = append(opts, rotation.WithScale(r.Scale))
	}
	if r.XAxisFactor != 0 || r.ZAxisFactor != 0 {
		opts = append(opts, rotation.WithAxisFactors(r.XAxisFactor, r.ZAxisFactor))
	}
	if r.Direction != 0 {
		opts = append(opts, rotation.WithDirection(r.Direction))
	}
	if r.Speed != 0 {
		opts = append(opts, rotation.WithSpeed(r.Speed))
	}
	return opts
}

// OrbOptions translates the configuration into orb options. The scene host, the
// device provider and the logger are supplied by the caller.
//
// Returns:
//   - []engine.OrbBuilderOption: the options
func (c Config) OrbOptions() []engine.OrbBuilderOption {
	opts := []engine.OrbBuilderOption{
		engine.WithSphereRadius(c.SphereRadius),
		engine.WithHoleShape(c.HoleRadius, c.HoleDepth),
		engine.WithColorMode(c.ColorMode),
		engine.WithRotation(c.RotationOptions()...),
	}
	if c.Beam.Opacity != nil {
		opts = append(opts, engine.WithOpacity(*c.Beam.Opacity))
	}
	if c.Beam.Intensity != nil {
		opts = append(opts, engine.WithIntensity(*c.Beam.Intensity))
	}
	if c.Beam.AnimationSpeed != nil {
		opts = append(opts, engine.WithAnimationSpeed(*c.Beam.AnimationSpeed))
	}
	if c.Sync.Workers > 1 {
		opts = append(opts, engine.WithSyncWorkers(c.Sync.Workers, c.Sync.Threshold))
	}
	if c.Device != nil {
		opts = append(opts, engine.WithDeviceProvider(&quality.StaticProvider{Profile: *c.Device}))
	}
	return opts
}
