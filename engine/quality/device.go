package quality

// DeviceProfile carries the device signals the tier decision is made from.
type DeviceProfile struct {
	IsMobile       bool    `json:"isMobile"`
	IsTablet       bool    `json:"isTablet"`
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	PixelDensity   float32 `json:"pixelDensity"`
}

// DeviceProfileProvider supplies the current device signals at init and on change.
type DeviceProfileProvider interface {
	// DeviceProfile returns the current device signals.
	//
	// Returns:
	//   - DeviceProfile: the device signals
	//   - error: error if the signals could not be read
	DeviceProfile() (DeviceProfile, error)
}

// StaticProvider returns a fixed DeviceProfile.
type StaticProvider struct {
	Profile DeviceProfile
}

var _ DeviceProfileProvider = &StaticProvider{}

func (s *StaticProvider) DeviceProfile() (DeviceProfile, error) {
	return s.Profile, nil
}

// Set replaces the reported profile.
func (s *StaticProvider) Set(p DeviceProfile) {
	s.Profile = p
}
