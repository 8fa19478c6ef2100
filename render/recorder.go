package render

import "fmt"

// Fill is one recorded FillCircle call
type Fill struct {
	X, Y, R float64
	Opacity float64
}

// Recorder is a Surface that records calls instead of drawing
// Used by engine tests and headless runs
type Recorder struct {
	Width, Height int

	Clears   int
	Resets   int
	Presents int
	Hidden   bool

	// LastFrame holds the fills issued since the most recent Clear
	LastFrame []Fill
	// Opacity is the paint opacity at the time of the last call
	Opacity float64

	ResizeErr error
}

// NewRecorder creates a recorder at default paint
func NewRecorder() *Recorder {
	return &Recorder{Opacity: DefaultOpacity}
}

// Resize implements Surface
func (r *Recorder) Resize(width, height int) error {
	if r.ResizeErr != nil {
		return r.ResizeErr
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}
	r.Width, r.Height = width, height
	return nil
}

// Clear implements Surface
func (r *Recorder) Clear() {
	r.Clears++
	r.LastFrame = r.LastFrame[:0]
}

// SetOpacity implements Surface
func (r *Recorder) SetOpacity(alpha float64) {
	r.Opacity = clamp01(alpha)
}

// FillCircle implements Surface
func (r *Recorder) FillCircle(x, y, radius float64) {
	r.LastFrame = append(r.LastFrame, Fill{X: x, Y: y, R: radius, Opacity: r.Opacity})
}

// ResetPaint implements Surface
func (r *Recorder) ResetPaint() {
	r.Resets++
	r.Opacity = DefaultOpacity
}

// Present implements Surface
func (r *Recorder) Present() {
	r.Presents++
}

// SetHidden implements Surface
func (r *Recorder) SetHidden(hidden bool) {
	r.Hidden = hidden
}
