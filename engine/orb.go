package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Carmen-Shannon/beam-orb/engine/aperture"
	"github.com/Carmen-Shannon/beam-orb/engine/beam"
	"github.com/Carmen-Shannon/beam-orb/engine/camera"
	"github.com/Carmen-Shannon/beam-orb/engine/color"
	"github.com/Carmen-Shannon/beam-orb/engine/light"
	"github.com/Carmen-Shannon/beam-orb/engine/mesh"
	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/rotation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrInitialization is wrapped by every error NewOrb returns.
var ErrInitialization = errors.New("orb initialization failed")

// SceneHost owns the camera, the lights and the renderer. The orb never manages
// them itself; it only applies quality profiles to them.
type SceneHost interface {
	Camera() camera.Camera
	Lights() []light.Light
	SetPixelRatio(ratio float32)
	SetFog(enabled bool)
	SetAntialias(enabled bool)
}

// Geometry holds the counts the sphere and beams were built with. They stay fixed
// for the lifetime of the orb even when a later profile asks for different ones.
type Geometry struct {
	Apertures            int
	SphereWidthSegments  int
	SphereHeightSegments int
	BeamSegments         int
}

// Config is a snapshot of the orb's tunable state. Profile is the profile currently
// applied to the host; Geometry describes the live mesh and beams.
type Config struct {
	SphereRadius float32
	HoleRadius   float32
	HoleDepth    float32

	Profile    quality.Profile
	Geometry   Geometry
	Device     quality.DeviceProfile
	PixelRatio float32

	ColorMode      color.Mode
	Opacity        float32
	Intensity      float32
	AnimationSpeed float32
	Visible        bool

	Rotation rotation.State
}

// Orb is the procedurally generated sphere and its beams.
//
// All state changes happen on Tick. Setters clamp out-of-range input instead of
// failing. Once disposed every method is a no-op and the accessors return zero values.
type Orb interface {
	// ID returns the instance id carried by every log event.
	ID() uuid.UUID

	// SetRotationSpeed sets the target spin speed. The current speed eases toward it.
	//
	// Parameters:
	//   - speed: radians per second, clamped to the rotation bounds
	SetRotationSpeed(speed float32)

	// SetRotationDirection sets the spin direction from the sign of d. Zero keeps
	// the current direction.
	//
	// Parameters:
	//   - d: direction sign
	SetRotationDirection(d float32)

	// SetColorMode switches the color mode.
	//
	// Parameters:
	//   - mode: rainbow, random or white
	//
	// Returns:
	//   - bool: false if the mode is unknown and nothing changed
	SetColorMode(mode string) bool

	// SetIntensity sets the beam intensity, clamped to [0, 3].
	SetIntensity(intensity float32)

	// SetOpacity sets the beam opacity, clamped to [0, 1].
	SetOpacity(opacity float32)

	// SetAnimationSpeed sets the palette cycling speed, clamped to [0, 5].
	SetAnimationSpeed(speed float32)

	// SetVisible shows or hides the beams.
	SetVisible(visible bool)

	// RotationState returns a snapshot of the rotation controller.
	RotationState() rotation.State

	// Orientation returns the sphere's current orientation.
	Orientation() mgl32.Quat

	// Config returns a snapshot of the tunable state.
	Config() Config

	// Tick advances rotation, beam transforms and colors by deltaTime seconds.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds, negative values are treated as zero
	Tick(deltaTime float32)

	// Frame paces a host frame against the profile's target frame rate and ticks
	// when it is due.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - bool: true if the frame ticked
	Frame(now time.Time) bool

	// Resize records a new logical viewport size and reapplies the quality profile
	// if its tier or breakpoint changed.
	//
	// Parameters:
	//   - width, height: viewport size in logical pixels
	//
	// Returns:
	//   - bool: true if a new profile was applied
	Resize(width, height int) bool

	// DeviceChanged reapplies the quality profile for new device signals if the tier
	// or breakpoint changed.
	//
	// Parameters:
	//   - device: the new device signals
	//
	// Returns:
	//   - bool: true if a new profile was applied
	DeviceChanged(device quality.DeviceProfile) bool

	// Refresh re-reads the device provider and calls DeviceChanged.
	//
	// Returns:
	//   - bool: true if a new profile was applied
	//   - error: the provider error, if any
	Refresh() (bool, error)

	// SphereMesh returns the deformed sphere mesh for the host to render.
	SphereMesh() *mesh.Mesh

	// BeamGroup returns the beam system for the host to render.
	BeamGroup() beam.System

	// Rims returns the cosmetic aperture rims.
	Rims() *mesh.RimArena

	// Apertures returns the aperture set.
	Apertures() *aperture.Set

	// Disposed reports whether Dispose has run.
	Disposed() bool

	// Dispose releases the beams, the rims, the mesh and the apertures in that
	// order. Safe to call more than once.
	Dispose()
}

type orb struct {
	mu *sync.Mutex

	id     uuid.UUID
	logger *slog.Logger

	host     SceneHost
	provider quality.DeviceProfileProvider

	sphereRadius float32
	holeRadius   float32
	holeDepth    float32
	position     mgl32.Vec3

	quality   quality.Controller
	geometry  Geometry
	apertures *aperture.Set
	sphere    *mesh.Mesh
	rims      *mesh.RimArena
	beams     beam.System
	animator  color.Animator
	rotation  rotation.Controller
	pacer     *Pacer

	elapsed  float32
	disposed bool

	// construction inputs
	colorMode       string
	rotationOptions []rotation.ControllerBuilderOption
	rng             *rand.Rand
	syncWorkers     int
	syncThreshold   int
	opacity         *float32
	intensity       *float32
	animationSpeed  *float32
}

var _ Orb = &orb{}

// NewOrb builds the sphere and its beams for the host's current device.
//
// Parameters:
//   - options: functional options to configure the orb
//
// Returns:
//   - Orb: the orb, nil on error
//   - error: wraps ErrInitialization when the host is missing, the provider fails,
//     or the geometry parameters are invalid
func NewOrb(options ...OrbBuilderOption) (Orb, error) {
	o := &orb{
		mu:           &sync.Mutex{},
		id:           uuid.New(),
		logger:       slog.New(slog.DiscardHandler),
		sphereRadius: 5,
		holeRadius:   0.6,
		holeDepth:    0.3,
		colorMode:    string(color.ModeRainbow),
	}
	for _, opt := range options {
		opt(o)
	}
	o.logger = o.logger.With(slog.String("orb", o.id.String()))

	if o.host == nil {
		return nil, fmt.Errorf("%w: no scene host", ErrInitialization)
	}
	if !(o.sphereRadius > 0) {
		return nil, fmt.Errorf("%w: sphere radius %v must be positive", ErrInitialization, o.sphereRadius)
	}
	if !(o.holeRadius > 0) || o.holeDepth < 0 || o.holeDepth != o.holeDepth {
		return nil, fmt.Errorf("%w: invalid hole shape radius=%v depth=%v", ErrInitialization, o.holeRadius, o.holeDepth)
	}
	if o.provider == nil {
		o.provider = &quality.StaticProvider{Profile: quality.DeviceProfile{ViewportWidth: 1920, ViewportHeight: 1080, PixelDensity: 1}}
	}
	device, err := o.provider.DeviceProfile()
	if err != nil {
		return nil, fmt.Errorf("%w: reading device profile: %w", ErrInitialization, err)
	}

	o.quality = quality.NewController(device)
	p := o.quality.Profile()

	o.apertures = aperture.NewSet(p.HoleCount, o.sphereRadius)
	o.sphere = mesh.NewSphere(o.sphereRadius, p.SphereWidthSegments, p.SphereHeightSegments)
	mesh.Deform(o.sphere, o.apertures.All(), o.holeRadius, o.holeDepth)
	o.rims = mesh.NewRimArena(o.apertures.All(), o.holeRadius, o.holeDepth)
	width, height := o.sphere.Segments()

	o.beams = beam.NewSystem(o.apertures,
		beam.WithTemplate(p.BeamSegments, p.Beam.Length, p.Beam.Radius),
		beam.WithOpacity(valueOr(o.opacity, p.Beam.Opacity)),
		beam.WithIntensity(valueOr(o.intensity, p.Beam.Intensity)),
		beam.WithWorkers(o.syncWorkers, o.syncThreshold),
	)

	animOpts := []color.AnimatorBuilderOption{
		color.WithAnimationSpeed(valueOr(o.animationSpeed, p.Beam.AnimationSpeed)),
	}
	if o.rng != nil {
		animOpts = append(animOpts, color.WithRand(o.rng))
	}
	o.geometry = Geometry{
		Apertures:            o.apertures.Len(),
		SphereWidthSegments:  width,
		SphereHeightSegments: height,
		BeamSegments:         o.beams.Template().Segments,
	}

	o.animator = color.NewAnimator(animOpts...)
	if !o.animator.SetMode(o.colorMode) {
		o.logger.Debug("ignoring unknown color mode", slog.String("mode", o.colorMode))
	}
	o.animator.Seed(o.beams.Beams())

	o.rotation = rotation.NewController(o.rotationOptions...)
	o.pacer = NewPacer(p.TargetFrameRate)

	o.applyProfile(p)
	o.beams.Sync(o.rotation.Orientation(), o.position)
	o.beams.UpdateUniforms(0)

	o.logger.Info("orb initialized",
		slog.String("tier", p.Tier.String()),
		slog.String("screen", p.ScreenSize.String()),
		slog.Int("apertures", o.apertures.Len()),
		slog.Int("vertices", len(o.sphere.Vertices())),
		slog.Int("beams", o.beams.Len()),
	)
	return o, nil
}

// applyProfile pushes every host-level parameter of p in one step. Caller must hold
// the mutex or own the orb exclusively.
func (o *orb) applyProfile(p quality.Profile) {
	ratio := o.quality.PixelRatio()
	o.host.SetPixelRatio(ratio)
	for _, l := range o.host.Lights() {
		l.SetCastsShadows(p.Shadows)
		l.SetShadowMapResolution(p.ShadowMapResolution)
	}
	o.host.SetFog(p.Fog)
	o.host.SetAntialias(p.Antialias)
	if cam := o.host.Camera(); cam != nil {
		cam.SetFov(p.CameraFov)
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.SetRadius(p.CameraDistance)
		}
		cam.Update()
	}
	o.pacer.SetTargetFPS(p.TargetFrameRate)

	o.logger.Info("quality profile applied",
		slog.String("tier", p.Tier.String()),
		slog.String("screen", p.ScreenSize.String()),
		slog.Float64("pixel_ratio", float64(ratio)),
		slog.Bool("shadows", p.Shadows),
		slog.Int("shadow_map", p.ShadowMapResolution),
		slog.Bool("fog", p.Fog),
		slog.Bool("antialias", p.Antialias),
		slog.Int("fps", p.TargetFrameRate),
	)
}

func (o *orb) ID() uuid.UUID {
	return o.id
}

func (o *orb) SetRotationSpeed(speed float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.rotation.SetSpeed(speed)
}

func (o *orb) SetRotationDirection(d float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.rotation.SetDirection(d)
}

func (o *orb) SetColorMode(mode string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return false
	}
	if !o.animator.SetMode(mode) {
		o.logger.Debug("ignoring unknown color mode", slog.String("mode", mode))
		return false
	}
	return true
}

func (o *orb) SetIntensity(intensity float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.beams.SetIntensity(intensity)
}

func (o *orb) SetOpacity(opacity float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.beams.SetOpacity(opacity)
}

func (o *orb) SetAnimationSpeed(speed float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.animator.SetAnimationSpeed(speed)
}

func (o *orb) SetVisible(visible bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.beams.SetVisible(visible)
	o.rims.SetAllVisible(visible)
}

func (o *orb) RotationState() rotation.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return rotation.State{}
	}
	return o.rotation.State()
}

func (o *orb) Orientation() mgl32.Quat {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return mgl32.QuatIdent()
	}
	return o.rotation.Orientation()
}

func (o *orb) Config() Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return Config{}
	}
	return Config{
		SphereRadius:   o.sphereRadius,
		HoleRadius:     o.holeRadius,
		HoleDepth:      o.holeDepth,
		Profile:        o.quality.Profile(),
		Geometry:       o.geometry,
		Device:         o.quality.Device(),
		PixelRatio:     o.quality.PixelRatio(),
		ColorMode:      o.animator.Mode(),
		Opacity:        o.beams.Opacity(),
		Intensity:      o.beams.Intensity(),
		AnimationSpeed: o.animator.AnimationSpeed(),
		Visible:        o.beams.Visible(),
		Rotation:       o.rotation.State(),
	}
}

func (o *orb) Tick(deltaTime float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tick(deltaTime)
}

// tick runs one frame. Caller must hold the mutex.
func (o *orb) tick(deltaTime float32) {
	if o.disposed {
		return
	}
	if deltaTime < 0 || deltaTime != deltaTime {
		deltaTime = 0
	}

	o.rotation.Update(deltaTime)
	o.beams.Sync(o.rotation.Orientation(), o.position)
	o.animator.Update(deltaTime, o.beams.Beams())
	o.elapsed += deltaTime
	o.beams.UpdateUniforms(o.elapsed)
}

func (o *orb) Frame(now time.Time) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return false
	}
	dt, ok := o.pacer.Ready(now)
	if !ok {
		return false
	}
	o.tick(dt)
	return true
}

func (o *orb) Resize(width, height int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed || width <= 0 || height <= 0 {
		return false
	}
	if cam := o.host.Camera(); cam != nil {
		cam.SetAspect(float32(width) / float32(height))
	}
	device := o.quality.Device()
	device.ViewportWidth = width
	device.ViewportHeight = height
	return o.deviceChanged(device)
}

func (o *orb) DeviceChanged(device quality.DeviceProfile) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return false
	}
	return o.deviceChanged(device)
}

// deviceChanged reapplies the profile when the tier or breakpoint moved. Caller must
// hold the mutex.
func (o *orb) deviceChanged(device quality.DeviceProfile) bool {
	prevRatio := o.quality.PixelRatio()
	p, changed := o.quality.Update(device)
	if changed {
		o.applyProfile(p)
		return true
	}
	// a density change within the same tier still moves the capped ratio
	if ratio := o.quality.PixelRatio(); ratio != prevRatio {
		o.host.SetPixelRatio(ratio)
	}
	return false
}

func (o *orb) Refresh() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return false, nil
	}
	device, err := o.provider.DeviceProfile()
	if err != nil {
		o.logger.Warn("device profile unavailable", slog.Any("error", err))
		return false, fmt.Errorf("refreshing device profile: %w", err)
	}
	return o.deviceChanged(device), nil
}

func (o *orb) SphereMesh() *mesh.Mesh {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sphere
}

func (o *orb) BeamGroup() beam.System {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.beams == nil {
		return nil
	}
	return o.beams
}

func (o *orb) Rims() *mesh.RimArena {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rims
}

func (o *orb) Apertures() *aperture.Set {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.apertures
}

func (o *orb) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}

func (o *orb) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.disposed = true

	// beams reference apertures by index, so they go first
	o.beams.Dispose()
	o.beams = nil
	o.rims.Dispose()
	o.rims = nil
	o.sphere.Dispose()
	o.sphere = nil
	o.apertures.Release()
	o.apertures = nil

	o.animator = nil
	o.rotation = nil
	o.quality = nil
	o.pacer = nil
	o.host = nil
	o.provider = nil

	o.logger.Info("orb disposed")
}

func valueOr(v *float32, fallback float32) float32 {
	if v == nil {
		return fallback
	}
	return *v
}
