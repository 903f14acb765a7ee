// Package rotation implements the smoothed multi-axis spin of the sphere.
package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// settleEpsilon is the speed difference under which the controller snaps to its target.
const settleEpsilon = 1e-4

// State is a snapshot of the rotation controller.
type State struct {
	CurrentSpeed float32
	TargetSpeed  float32
	Direction    int
	Yaw          float32
	Pitch        float32
	Roll         float32
	MinSpeed     float32
	MaxSpeed     float32
	Smoothing    float32
}

type controller struct {
	currentSpeed float32
	targetSpeed  float32
	direction    int

	yaw   float32
	pitch float32
	roll  float32

	minSpeed  float32
	maxSpeed  float32
	smoothing float32
	scale     float32

	xAxisFactor float32
	zAxisFactor float32
}

// Controller drives the parent object's orientation with a smoothed, multi-axis spin.
//
// The controller is either transitioning (current speed still converging on the target)
// or settled. All inputs are clamped into range rather than rejected. It is not safe for
// concurrent use; every call is expected to happen on the frame tick.
type Controller interface {
	// SetSpeed sets the target speed, clamped to [MinSpeed, MaxSpeed]. The current
	// speed converges over subsequent Update calls.
	//
	// Parameters:
	//   - target: desired speed
	SetSpeed(target float32)

	// SetSpeedImmediate clamps value and assigns it to both current and target speed.
	//
	// Parameters:
	//   - value: desired speed
	SetSpeedImmediate(value float32)

	// SetDirection sets the spin direction to the sign of d. Zero keeps the current direction.
	//
	// Parameters:
	//   - d: any value whose sign selects the direction
	SetDirection(d float32)

	// Stop eases the speed down to zero.
	Stop()

	// StopImmediate sets the speed to zero at once.
	StopImmediate()

	// Update advances the speed toward the target and accumulates the rotation angles.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds since the previous update
	Update(deltaTime float32)

	// Settled reports whether the current speed has reached the target.
	//
	// Returns:
	//   - bool: true when |current − target| <= ε
	Settled() bool

	// Orientation returns the parent orientation for the current angles
	// (yaw about Y, then pitch about X, then roll about Z).
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Orientation() mgl32.Quat

	// State returns a snapshot of the controller.
	//
	// Returns:
	//   - State: current speeds, direction, angles and bounds
	State() State
}

var _ Controller = &controller{}

// NewController creates a rotation controller with the default bounds
// (speed 0..2, smoothing 3/s, scale 1, axis factors 0.3 / 0.1).
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		direction:   1,
		minSpeed:    0,
		maxSpeed:    2,
		smoothing:   3,
		scale:       1,
		xAxisFactor: 0.3,
		zAxisFactor: 0.1,
	}
	for _, option := range options {
		option(c)
	}
	if c.maxSpeed < c.minSpeed {
		c.minSpeed, c.maxSpeed = c.maxSpeed, c.minSpeed
	}
	c.currentSpeed = c.clamp(c.currentSpeed)
	c.targetSpeed = c.clamp(c.targetSpeed)
	return c
}

func (c *controller) SetSpeed(target float32) {
	c.targetSpeed = c.clamp(target)
}

func (c *controller) SetSpeedImmediate(value float32) {
	v := c.clamp(value)
	c.currentSpeed = v
	c.targetSpeed = v
}

func (c *controller) SetDirection(d float32) {
	switch {
	case d > 0:
		c.direction = 1
	case d < 0:
		c.direction = -1
	}
}

func (c *controller) Stop() {
	c.SetSpeed(0)
}

func (c *controller) StopImmediate() {
	c.SetSpeedImmediate(0)
}

func (c *controller) Update(deltaTime float32) {
	if deltaTime < 0 || isNaN(deltaTime) {
		deltaTime = 0
	}

	diff := c.targetSpeed - c.currentSpeed
	if abs(diff) <= settleEpsilon {
		c.currentSpeed = c.targetSpeed
	} else {
		c.currentSpeed += diff * min(1, c.smoothing*deltaTime)
	}
	c.currentSpeed = c.clamp(c.currentSpeed)

	deltaYaw := c.currentSpeed * float32(c.direction) * deltaTime * c.scale
	c.yaw += deltaYaw
	c.pitch += deltaYaw * c.xAxisFactor
	c.roll = float32(math.Sin(float64(c.yaw*2))) * c.zAxisFactor * deltaYaw
}

func (c *controller) Settled() bool {
	return abs(c.currentSpeed-c.targetSpeed) <= settleEpsilon
}

func (c *controller) Orientation() mgl32.Quat {
	return mgl32.AnglesToQuat(c.yaw, c.pitch, c.roll, mgl32.YXZ)
}

func (c *controller) State() State {
	return State{
		CurrentSpeed: c.currentSpeed,
		TargetSpeed:  c.targetSpeed,
		Direction:    c.direction,
		Yaw:          c.yaw,
		Pitch:        c.pitch,
		Roll:         c.roll,
		MinSpeed:     c.minSpeed,
		MaxSpeed:     c.maxSpeed,
		Smoothing:    c.smoothing,
	}
}

// clamp bounds v to [minSpeed, maxSpeed]; NaN maps to minSpeed.
func (c *controller) clamp(v float32) float32 {
	if isNaN(v) {
		return c.minSpeed
	}
	return max(c.minSpeed, min(c.maxSpeed, v))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func isNaN(v float32) bool {
	return v != v
}
