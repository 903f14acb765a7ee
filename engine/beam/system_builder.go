package beam

// SystemBuilderOption is a functional option for configuring a beam System.
type SystemBuilderOption func(*system)

// WithTemplate sets the shape of the shared beam mesh.
//
// Parameters:
//   - segments: radial segments
//   - length: beam length
//   - radius: base radius
//
// Returns:
//   - SystemBuilderOption: functional option to set the template shape
func WithTemplate(segments int, length, radius float32) SystemBuilderOption {
	return func(s *system) {
		s.segments = segments
		s.length = length
		s.radius = radius
	}
}

// WithOpacity sets the initial opacity (clamped to [0, 1]).
//
// Parameters:
//   - opacity: initial opacity
//
// Returns:
//   - SystemBuilderOption: functional option to set the opacity
func WithOpacity(opacity float32) SystemBuilderOption {
	return func(s *system) {
		s.opacity = opacity
	}
}

// WithIntensity sets the initial intensity (clamped to [0, MaxIntensity]).
//
// Parameters:
//   - intensity: initial intensity
//
// Returns:
//   - SystemBuilderOption: functional option to set the intensity
func WithIntensity(intensity float32) SystemBuilderOption {
	return func(s *system) {
		s.intensity = intensity
	}
}

// WithVisible sets the initial visibility of the beam group.
//
// Parameters:
//   - visible: true to show
//
// Returns:
//   - SystemBuilderOption: functional option to set visibility
func WithVisible(visible bool) SystemBuilderOption {
	return func(s *system) {
		s.visible = visible
	}
}

// WithWorkers enables the synchronizer's worker pool for large beam counts.
//
// Parameters:
//   - workers: pool size (<= 1 keeps synchronization on the calling goroutine)
//   - threshold: minimum beam count for a parallel pass (<= 0 uses the default)
//
// Returns:
//   - SystemBuilderOption: functional option to configure parallel synchronization
func WithWorkers(workers, threshold int) SystemBuilderOption {
	return func(s *system) {
		s.workers = workers
		s.threshold = threshold
	}
}
