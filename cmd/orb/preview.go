package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/beam-orb/config"
	"github.com/Carmen-Shannon/beam-orb/engine"
	"github.com/Carmen-Shannon/beam-orb/engine/camera"
	orbcolor "github.com/Carmen-Shannon/beam-orb/engine/color"
	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gridStride thins the sphere wireframe to every n-th ring and meridian.
const gridStride = 4

var (
	background = color.RGBA{R: 0x05, G: 0x05, B: 0x0a, A: 0xff}
	wireframe  = color.RGBA{R: 0x30, G: 0x34, B: 0x44, A: 0xff}
	rimColor   = color.RGBA{R: 0x80, G: 0x84, B: 0x90, A: 0xff}
	modes      = []orbcolor.Mode{orbcolor.ModeRainbow, orbcolor.ModeRandom, orbcolor.ModeWhite}
)

// ebitenProvider reports the preview window as the device.
type ebitenProvider struct {
	mu     *sync.Mutex
	width  int
	height int
}

var _ quality.DeviceProfileProvider = &ebitenProvider{}

func (p *ebitenProvider) setViewport(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
}

func (p *ebitenProvider) DeviceProfile() (quality.DeviceProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	density := float32(1)
	if m := ebiten.Monitor(); m != nil {
		density = float32(m.DeviceScaleFactor())
	}
	return quality.DeviceProfile{
		ViewportWidth:  p.width,
		ViewportHeight: p.height,
		PixelDensity:   density,
	}, nil
}

type preview struct {
	orb      engine.Orb
	host     scene.Scene
	provider *ebitenProvider
	logger   *slog.Logger

	width, height int
	density       float64
	mode          int
}

func runPreview(cfg config.Config, logger *slog.Logger) error {
	provider := &ebitenProvider{mu: &sync.Mutex{}, width: cfg.Window.Width, height: cfg.Window.Height}
	host := scene.NewScene("preview", nil, scene.WithDefaultLights())

	opts := cfg.OrbOptions()
	if cfg.Device == nil {
		opts = append(opts, engine.WithDeviceProvider(provider))
	}
	opts = append(opts, engine.WithSceneHost(host), engine.WithLogger(logger))
	orb, err := engine.NewOrb(opts...)
	if err != nil {
		return fmt.Errorf("building orb: %w", err)
	}
	defer orb.Dispose()
	host.Attach(orb.SphereMesh(), orb.BeamGroup())
	defer host.Clear()

	p := &preview{orb: orb, host: host, provider: provider, logger: logger}
	for i, m := range modes {
		if m == orb.Config().ColorMode {
			p.mode = i
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(p)
}

func (p *preview) Update() error {
	p.handleInput()
	if m := ebiten.Monitor(); m != nil && m.DeviceScaleFactor() != p.density {
		p.density = m.DeviceScaleFactor()
		if _, err := p.orb.Refresh(); err != nil {
			return err
		}
	}
	p.orb.Frame(time.Now())
	return nil
}

func (p *preview) handleInput() {
	state := p.orb.RotationState()
	cfg := p.orb.Config()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		p.mode = (p.mode + 1) % len(modes)
		p.orb.SetColorMode(string(modes[p.mode]))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.orb.SetRotationDirection(-float32(state.Direction))
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		p.orb.SetVisible(!cfg.Visible)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		p.orb.SetRotationSpeed(state.TargetSpeed + 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		p.orb.SetRotationSpeed(state.TargetSpeed - 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p.orb.SetIntensity(cfg.Intensity + 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p.orb.SetIntensity(cfg.Intensity - 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.orb.SetAnimationSpeed(cfg.AnimationSpeed + 0.25)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		p.orb.SetAnimationSpeed(cfg.AnimationSpeed - 0.25)
	}
}

func (p *preview) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	cam := p.host.Camera()
	cam.Update()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	q := p.orb.Orientation()

	line := func(a, b mgl32.Vec3, width float32, clr color.Color) {
		pa, pb, ok := camera.ProjectSegment(cam, a, b, w, h)
		if !ok {
			return
		}
		vector.StrokeLine(screen, pa.X(), pa.Y(), pb.X(), pb.Y(), width, clr, true)
	}

	cfg := p.orb.Config()
	profile := cfg.Profile
	if sphere := p.orb.SphereMesh(); sphere != nil {
		verts := sphere.Vertices()
		width, height := sphere.Segments()
		cols, rows := width+1, height+1
		if cols*rows == len(verts) {
			at := func(x, y int) mgl32.Vec3 { return q.Rotate(verts[y*cols+x].Position) }
			for y := 0; y < rows; y += gridStride {
				for x := range cols - 1 {
					line(at(x, y), at(x+1, y), 1, wireframe)
				}
			}
			for x := 0; x < cols; x += gridStride {
				for y := range rows - 1 {
					line(at(x, y), at(x, y+1), 1, wireframe)
				}
			}
		}
	}

	if apertures := p.orb.Apertures(); apertures != nil {
		for _, ap := range apertures.All() {
			c := q.Rotate(ap.Position)
			line(c, c.Add(q.Rotate(ap.Direction).Mul(0.05)), 3, rimColor)
		}
	}

	beams := p.orb.BeamGroup()
	if beams != nil && beams.Visible() {
		length := beams.Template().Length
		for _, b := range beams.Beams() {
			r, g, bl := b.CurrentColor.Clamped().RGB255()
			alpha := uint8(min(b.Uniforms.Opacity*b.Uniforms.Intensity, 1) * 255)
			tip := b.WorldPosition.Add(b.WorldDirection.Mul(length))
			line(b.WorldPosition, tip, 2, color.NRGBA{R: r, G: g, B: bl, A: alpha})
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"tier %s  %s  fps %.0f  apertures %d\nmode %s  speed %.2f  intensity %.2f  anim %.2f\n[M]ode [R]everse [V]isible arrows/pgup/pgdn",
		profile.Tier, profile.ScreenSize, ebiten.ActualFPS(), cfg.Geometry.Apertures,
		cfg.ColorMode, cfg.Rotation.TargetSpeed, cfg.Intensity, cfg.AnimationSpeed,
	))
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.width || outsideHeight != p.height {
		p.width, p.height = outsideWidth, outsideHeight
		p.provider.setViewport(outsideWidth, outsideHeight)
		if p.orb.Resize(outsideWidth, outsideHeight) {
			p.logger.Info("viewport resized",
				slog.Int("width", outsideWidth),
				slog.Int("height", outsideHeight),
				slog.String("tier", p.orb.Config().Profile.Tier.String()),
			)
		}
	}
	return outsideWidth, outsideHeight
}
