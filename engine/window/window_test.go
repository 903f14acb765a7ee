package window

import (
	"errors"
	"testing"
)

type threadHooks struct {
	locks, unlocks, inits, terminates int
	initErr                           error
}

func stubbedGLFW(h *threadHooks) *glfwProbe {
	p := NewDisplayProbe().(*glfwProbe)
	p.lockThread = func() { h.locks++ }
	p.unlockThread = func() { h.unlocks++ }
	p.glfwInit = func() error { h.inits++; return h.initErr }
	p.glfwTerminate = func() { h.terminates++ }
	return p
}

func TestGLFWInitFailureUnlocksThread(t *testing.T) {
	h := &threadHooks{initErr: errors.New("no display server")}
	p := stubbedGLFW(h)

	if _, err := p.Display(); !errors.Is(err, h.initErr) {
		t.Fatalf("expected init error, got %v", err)
	}
	if h.locks != 1 || h.unlocks != 1 {
		t.Fatalf("locks=%d unlocks=%d after failed init", h.locks, h.unlocks)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if h.unlocks != 1 || h.terminates != 0 {
		t.Fatalf("close after failed init: unlocks=%d terminates=%d", h.unlocks, h.terminates)
	}
}

func TestCloseTerminatesAndUnlocksThread(t *testing.T) {
	h := &threadHooks{}
	p := stubbedGLFW(h)

	p.mu.Lock()
	for range 2 {
		if err := p.init(); err != nil {
			t.Fatal(err)
		}
	}
	p.mu.Unlock()
	if h.locks != 1 || h.inits != 1 {
		t.Fatalf("init not idempotent: locks=%d inits=%d", h.locks, h.inits)
	}

	p.Close()
	p.Close()
	if h.terminates != 1 || h.unlocks != 1 {
		t.Fatalf("close: terminates=%d unlocks=%d", h.terminates, h.unlocks)
	}
	if _, err := p.Display(); err == nil {
		t.Fatal("query accepted after Close")
	}
	if h.locks != 1 {
		t.Fatalf("thread locked again after Close: %d", h.locks)
	}
}

func TestDeviceProfileForDesktop(t *testing.T) {
	d := Display{Width: 3840, Height: 2160, ContentScaleX: 2, ContentScaleY: 2, PhysicalWidthMM: 600, PhysicalHeightMM: 340}
	p := DeviceProfileFor(d, 0, 0)
	if p.IsMobile || p.IsTablet {
		t.Fatalf("desktop classified as handheld: %+v", p)
	}
	if p.ViewportWidth != 1920 || p.ViewportHeight != 1080 || p.PixelDensity != 2 {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestDeviceProfileForHandheld(t *testing.T) {
	phone := Display{Width: 1170, Height: 2532, ContentScaleX: 3, ContentScaleY: 3, PhysicalWidthMM: 64, PhysicalHeightMM: 139}
	if p := DeviceProfileFor(phone, 0, 0); !p.IsMobile || p.IsTablet {
		t.Fatalf("phone: %+v", p)
	}
	tablet := Display{Width: 2048, Height: 2732, ContentScaleX: 2, ContentScaleY: 2, PhysicalWidthMM: 160, PhysicalHeightMM: 210}
	if p := DeviceProfileFor(tablet, 0, 0); p.IsMobile || !p.IsTablet {
		t.Fatalf("tablet: %+v", p)
	}
}

func TestDeviceProfileForViewportOverride(t *testing.T) {
	d := Display{Width: 2560, Height: 1440}
	p := DeviceProfileFor(d, 800, 600)
	if p.ViewportWidth != 800 || p.ViewportHeight != 600 || p.PixelDensity != 1 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.IsMobile || p.IsTablet {
		t.Fatal("unknown physical size should not be handheld")
	}
}
