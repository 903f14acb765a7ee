package quality

type controller struct {
	current Profile
	device  DeviceProfile
	valid   bool
}

// Controller tracks the active quality profile and recomputes it on device changes.
type Controller interface {
	// Evaluate computes the profile for the given device signals without changing state.
	//
	// Parameters:
	//   - device: the device signals
	//
	// Returns:
	//   - Profile: the profile those signals map to
	Evaluate(device DeviceProfile) Profile

	// Update recomputes the profile for new device signals.
	// The stored profile is replaced only when the tier or the screen size breakpoint
	// differs from the current one.
	//
	// Parameters:
	//   - device: the new device signals
	//
	// Returns:
	//   - Profile: the active profile after the update
	//   - bool: true if the tier or breakpoint changed
	Update(device DeviceProfile) (Profile, bool)

	// Profile returns the active profile.
	//
	// Returns:
	//   - Profile: the active profile
	Profile() Profile

	// Device returns the device signals last passed to Update.
	//
	// Returns:
	//   - DeviceProfile: the last device signals
	Device() DeviceProfile

	// PixelRatio returns the device pixel density capped by the active profile.
	//
	// Returns:
	//   - float32: the effective pixel ratio
	PixelRatio() float32
}

var _ Controller = &controller{}

// NewController creates a quality controller seeded with the given device signals.
//
// Parameters:
//   - device: the initial device signals
//
// Returns:
//   - Controller: the newly created controller
func NewController(device DeviceProfile) Controller {
	c := &controller{}
	c.Update(device)
	return c
}

// ClassifyScreen maps a viewport width onto its breakpoint.
func ClassifyScreen(width int) ScreenSize {
	switch {
	case width <= MobileMaxWidth:
		return ScreenMobile
	case width <= TabletMaxWidth:
		return ScreenTablet
	case width <= SmallDesktopMaxWidth:
		return ScreenSmallDesktop
	}
	return ScreenDesktop
}

// ClassifyTier picks the tier for the given device signals and breakpoint.
func ClassifyTier(device DeviceProfile, size ScreenSize) Tier {
	tier := TierHigh
	density := float64(device.PixelDensity)
	if density != density || density <= 0 {
		density = 1
	}

	area := float64(device.ViewportWidth) * float64(device.ViewportHeight) * density * density
	if device.IsMobile || device.IsTablet || density > 2 || area > MaxPixelArea {
		tier = TierMedium
	}

	small := size == ScreenMobile || size == ScreenTablet
	if small && density >= 2 {
		tier = TierLow
	}
	return tier
}

func (c *controller) Evaluate(device DeviceProfile) Profile {
	size := ClassifyScreen(device.ViewportWidth)
	return ProfileFor(ClassifyTier(device, size), size)
}

func (c *controller) Update(device DeviceProfile) (Profile, bool) {
	next := c.Evaluate(device)
	c.device = device
	if c.valid && next.Tier == c.current.Tier && next.ScreenSize == c.current.ScreenSize {
		return c.current, false
	}
	c.current = next
	c.valid = true
	return c.current, true
}

func (c *controller) Profile() Profile {
	return c.current
}

func (c *controller) Device() DeviceProfile {
	return c.device
}

func (c *controller) PixelRatio() float32 {
	return c.current.PixelRatio(c.device.PixelDensity)
}
