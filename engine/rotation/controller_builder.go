package rotation

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithSpeedBounds sets the allowed speed range. Swapped bounds are reordered.
//
// Parameters:
//   - minSpeed: lowest allowed speed
//   - maxSpeed: highest allowed speed
//
// Returns:
//   - ControllerBuilderOption: functional option to set the bounds
func WithSpeedBounds(minSpeed, maxSpeed float32) ControllerBuilderOption {
	return func(c *controller) {
		c.minSpeed = minSpeed
		c.maxSpeed = maxSpeed
	}
}

// WithSmoothing sets the exponential convergence rate per second.
// Non-positive values are ignored.
//
// Parameters:
//   - rate: convergence rate
//
// Returns:
//   - ControllerBuilderOption: functional option to set the smoothing rate
func WithSmoothing(rate float32) ControllerBuilderOption {
	return func(c *controller) {
		if rate > 0 {
			c.smoothing = rate
		}
	}
}

// WithSpeed sets the initial current and target speed.
//
// Parameters:
//   - speed: initial speed, clamped once all options are applied
//
// Returns:
//   - ControllerBuilderOption: functional option to set the initial speed
func WithSpeed(speed float32) ControllerBuilderOption {
	return func(c *controller) {
		c.currentSpeed = speed
		c.targetSpeed = speed
	}
}

// WithDirection sets the initial spin direction from the sign of d.
//
// Parameters:
//   - d: direction sign source
//
// Returns:
//   - ControllerBuilderOption: functional option to set the direction
func WithDirection(d float32) ControllerBuilderOption {
	return func(c *controller) {
		c.SetDirection(d)
	}
}

// WithScale sets the multiplier converting speed to radians per second.
//
// Parameters:
//   - scale: angular scale
//
// Returns:
//   - ControllerBuilderOption: functional option to set the scale
func WithScale(scale float32) ControllerBuilderOption {
	return func(c *controller) {
		c.scale = scale
	}
}

// WithAxisFactors sets the pitch coupling and roll oscillation factors.
//
// Parameters:
//   - xAxisFactor: fraction of each yaw step added to pitch
//   - zAxisFactor: amplitude of the roll oscillation
//
// Returns:
//   - ControllerBuilderOption: functional option to set the axis factors
func WithAxisFactors(xAxisFactor, zAxisFactor float32) ControllerBuilderOption {
	return func(c *controller) {
		c.xAxisFactor = xAxisFactor
		c.zAxisFactor = zAxisFactor
	}
}
