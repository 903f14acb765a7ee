package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/beam-orb/config"
	"github.com/Carmen-Shannon/beam-orb/engine"
	"github.com/Carmen-Shannon/beam-orb/engine/gpu"
	"github.com/Carmen-Shannon/beam-orb/engine/profiler"
	"github.com/Carmen-Shannon/beam-orb/engine/quality"
	"github.com/Carmen-Shannon/beam-orb/engine/scene"
	"github.com/Carmen-Shannon/beam-orb/engine/window"
)

type headlessConfig struct {
	Enabled bool
	Hz      float64
	Ticks   int
}

// probeDevice reads the primary monitor once. Without a display the configured
// window size at density 1 is used.
func probeDevice(cfg config.Config, logger *slog.Logger) quality.DeviceProfile {
	if cfg.Device != nil {
		return *cfg.Device
	}
	probe := window.NewDisplayProbe(window.WithViewport(cfg.Window.Width, cfg.Window.Height))
	defer probe.Close()

	device, err := probe.DeviceProfile()
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, window.ErrNoMonitor) {
			level = slog.LevelInfo
		}
		logger.Log(context.Background(), level, "display probe unavailable", slog.Any("error", err))
		return quality.DeviceProfile{
			ViewportWidth:  cfg.Window.Width,
			ViewportHeight: cfg.Window.Height,
			PixelDensity:   1,
		}
	}
	return device
}

func runHeadless(ctx context.Context, cfg config.Config, hc headlessConfig, logger *slog.Logger) error {
	device := probeDevice(cfg, logger)
	host := scene.NewScene("headless", nil, scene.WithDefaultLights())

	opts := append(cfg.OrbOptions(),
		engine.WithSceneHost(host),
		engine.WithDeviceProvider(&quality.StaticProvider{Profile: device}),
		engine.WithLogger(logger),
	)
	orb, err := engine.NewOrb(opts...)
	if err != nil {
		return fmt.Errorf("building orb: %w", err)
	}
	defer orb.Dispose()
	host.Attach(orb.SphereMesh(), orb.BeamGroup())
	defer host.Clear()

	loop := engine.NewLoop(
		engine.WithTickRate(hc.Hz),
		engine.WithMaxTicks(hc.Ticks),
		engine.WithFrameCallback(orb.Frame),
		engine.WithProfiler(profiler.NewProfiler(logger, time.Second)),
		engine.WithProfiling(cfg.Profiling),
		engine.WithLoopLogger(logger),
	)

	started := time.Now()
	err = loop.Run(ctx)

	// upload payloads a renderer would write for the last frame
	host.Camera().Update()
	camUniform := gpu.NewCameraUniform(host.Camera())
	lights, lightCount := gpu.MarshalLights(host.Lights())
	state := orb.RotationState()
	logger.Info("headless run finished",
		slog.Int("ticks", loop.Ticks()),
		slog.Duration("elapsed", time.Since(started)),
		slog.Float64("yaw", float64(state.Yaw)),
		slog.String("tier", orb.Config().Profile.Tier.String()),
		slog.Int("vertexBytes", len(gpu.MarshalVertices(orb.SphereMesh().Vertices()))),
		slog.Int("instanceBytes", len(gpu.MarshalBeamInstances(orb.BeamGroup()))),
		slog.Int("cameraBytes", len(camUniform.Marshal())),
		slog.Int("lightBytes", len(lights)),
		slog.Int("lights", int(lightCount)),
	)
	return err
}
