package window

// DisplayProbeBuilderOption is a functional option for configuring a DisplayProbe.
type DisplayProbeBuilderOption func(p *glfwProbe)

// WithViewport fixes the logical viewport reported instead of the full monitor.
//
// Parameters:
//   - width: viewport width in logical pixels
//   - height: viewport height in logical pixels
//
// Returns:
//   - DisplayProbeBuilderOption: option function to apply
func WithViewport(width, height int) DisplayProbeBuilderOption {
	return func(p *glfwProbe) {
		p.viewportWidth = width
		p.viewportHeight = height
	}
}
