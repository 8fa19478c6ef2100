package grid

// Pointer is a position relative to the container's top-left corner
type Pointer struct {
	X, Y float64
}

// OffSurface is the sentinel for "no pointer over the surface"
var OffSurface = Pointer{X: -1000, Y: -1000}

// Tracker keeps the latest pointer position only
type Tracker struct {
	p Pointer
}

// NewTracker starts off-surface
func NewTracker() *Tracker {
	return &Tracker{p: OffSurface}
}

// Move records a pointer position and reports whether the pointer just entered
func (t *Tracker) Move(x, y float64) bool {
	entered := t.p == OffSurface
	t.p = Pointer{X: x, Y: y}
	return entered
}

// Leave resets to the sentinel
func (t *Tracker) Leave() {
	t.p = OffSurface
}

// Pointer returns the current position or OffSurface
func (t *Tracker) Pointer() Pointer {
	return t.p
}

// Active reports whether a pointer is over the surface
func (t *Tracker) Active() bool {
	return t.p != OffSurface
}
