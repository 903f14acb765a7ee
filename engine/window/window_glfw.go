package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwProbe queries the primary monitor through GLFW without opening a window.
type glfwProbe struct {
	mu             *sync.Mutex
	initialized    bool
	closed         bool
	viewportWidth  int
	viewportHeight int

	// GLFW and thread hooks, replaced in tests
	glfwInit      func() error
	glfwTerminate func()
	lockThread    func()
	unlockThread  func()
}

var _ DisplayProbe = &glfwProbe{}

// NewDisplayProbe creates a GLFW backed DisplayProbe. GLFW is initialized on the
// first query and must be used from the main thread.
//
// Parameters:
//   - options: functional options to configure the probe
//
// Returns:
//   - DisplayProbe: the probe
func NewDisplayProbe(options ...DisplayProbeBuilderOption) DisplayProbe {
	p := &glfwProbe{
		mu:            &sync.Mutex{},
		glfwInit:      glfw.Init,
		glfwTerminate: glfw.Terminate,
		lockThread:    runtime.LockOSThread,
		unlockThread:  runtime.UnlockOSThread,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// init brings up GLFW once on a locked OS thread. The thread stays locked until
// Close, or is released right away when GLFW fails to start. Caller must hold the
// mutex.
//
// GLFW reference: https://www.glfw.org/docs/latest/monitor_guide.html
func (p *glfwProbe) init() error {
	if p.closed {
		return fmt.Errorf("display probe is closed")
	}
	if p.initialized {
		return nil
	}
	p.lockThread()
	if err := p.glfwInit(); err != nil {
		p.unlockThread()
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	p.initialized = true
	return nil
}

func (p *glfwProbe) Display() (Display, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.init(); err != nil {
		return Display{}, err
	}

	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		return Display{}, ErrNoMonitor
	}
	mode := mon.GetVideoMode()
	if mode == nil {
		return Display{}, fmt.Errorf("primary monitor %q reported no video mode", mon.GetName())
	}
	sx, sy := mon.GetContentScale()
	wmm, hmm := mon.GetPhysicalSize()
	return Display{
		Width:            mode.Width,
		Height:           mode.Height,
		ContentScaleX:    sx,
		ContentScaleY:    sy,
		PhysicalWidthMM:  wmm,
		PhysicalHeightMM: hmm,
	}, nil
}

func (p *glfwProbe) DeviceProfile() (quality.DeviceProfile, error) {
	d, err := p.Display()
	if err != nil {
		return quality.DeviceProfile{}, err
	}
	return DeviceProfileFor(d, p.viewportWidth, p.viewportHeight), nil
}

func (p *glfwProbe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.initialized {
		p.glfwTerminate()
		p.unlockThread()
		p.initialized = false
	}
	return nil
}
