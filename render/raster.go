package render

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/lixenwraith/dotgrid/logging"
)

// DefaultOpacity is the paint opacity restored by ResetPaint
const DefaultOpacity = 1.0

// Raster is a Surface backed by a gg software context
type Raster struct {
	dc        *gg.Context
	color     gg.RGBA
	opacity   float64
	hidden    bool
	presenter Presenter
}

// NewRaster creates a 1x1 raster painting in the given hex color
// The engine resizes it once geometry is known
func NewRaster(hexColor string, p Presenter) *Raster {
	r := &Raster{
		dc:        gg.NewContext(1, 1),
		color:     gg.Hex(hexColor),
		presenter: p,
	}
	r.ResetPaint()
	return r
}

// Resize implements Surface
func (r *Raster) Resize(width, height int) error {
	if err := r.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize raster: %w", err)
	}
	return nil
}

// Clear implements Surface
func (r *Raster) Clear() {
	r.dc.Clear()
}

// SetOpacity implements Surface
func (r *Raster) SetOpacity(alpha float64) {
	r.opacity = clamp01(alpha)
	r.dc.SetRGBA(r.color.R, r.color.G, r.color.B, r.color.A*r.opacity)
}

// FillCircle implements Surface
func (r *Raster) FillCircle(x, y, radius float64) {
	if radius <= 0 || r.opacity <= 0 {
		return
	}
	r.dc.DrawCircle(x, y, radius)
	if err := r.dc.Fill(); err != nil {
		logging.Logger().Debug("fill circle failed", "x", x, "y", y, "r", radius, "error", err)
	}
}

// ResetPaint implements Surface
func (r *Raster) ResetPaint() {
	r.SetOpacity(DefaultOpacity)
}

// Present implements Surface
func (r *Raster) Present() {
	if r.presenter == nil || r.hidden {
		return
	}
	r.presenter.Present(r.dc.ResizeTarget())
}

// SetHidden implements Surface
func (r *Raster) SetHidden(hidden bool) {
	r.hidden = hidden
	if hidden {
		r.dc.Clear()
		if r.presenter != nil {
			r.presenter.Blank()
		}
	}
}

// Hidden reports whether output is disabled
func (r *Raster) Hidden() bool {
	return r.hidden
}

// Opacity returns the current paint opacity
func (r *Raster) Opacity() float64 {
	return r.opacity
}

// Size returns the raster dimensions
func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

// Pixmap exposes the backing pixels
func (r *Raster) Pixmap() *gg.Pixmap {
	return r.dc.ResizeTarget()
}

// Close releases the gg context
func (r *Raster) Close() error {
	return r.dc.Close()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
