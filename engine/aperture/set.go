package aperture

// Set owns the aperture sequence of one sphere instance. Other components look
// apertures up by index through the Set and never hold on to them directly.
type Set struct {
	count     int
	radius    float32
	apertures []Aperture
}

// NewSet generates and owns count apertures for a sphere of the given radius.
//
// Parameters:
//   - count: number of apertures
//   - radius: sphere radius
//
// Returns:
//   - *Set: the owning set
func NewSet(count int, radius float32) *Set {
	s := &Set{}
	s.Regenerate(count, radius)
	return s
}

// Regenerate recomputes the whole sequence. There is no incremental update:
// any index previously handed out refers to the new aperture at that index.
//
// Parameters:
//   - count: number of apertures
//   - radius: sphere radius
func (s *Set) Regenerate(count int, radius float32) {
	if count < 0 {
		count = 0
	}
	s.count = count
	s.radius = radius
	s.apertures = Generate(count, radius)
}

// Len returns the number of apertures, or 0 for a nil or released set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.apertures)
}

// Radius returns the sphere radius the apertures were generated for.
func (s *Set) Radius() float32 {
	if s == nil {
		return 0
	}
	return s.radius
}

// At returns the aperture at index i. ok is false when i is out of range.
//
// Parameters:
//   - i: aperture index
//
// Returns:
//   - Aperture: the aperture value
//   - bool: whether the index was valid
func (s *Set) At(i int) (Aperture, bool) {
	if s == nil || i < 0 || i >= len(s.apertures) {
		return Aperture{}, false
	}
	return s.apertures[i], true
}

// All returns a copy of the sequence.
func (s *Set) All() []Aperture {
	if s == nil {
		return nil
	}
	out := make([]Aperture, len(s.apertures))
	copy(out, s.apertures)
	return out
}

// Release drops the owned sequence. Safe to call more than once.
func (s *Set) Release() {
	if s == nil {
		return
	}
	s.apertures = nil
	s.count = 0
}
