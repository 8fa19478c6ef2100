// Package render provides the drawing surface the engine paints dots onto.
package render

import "github.com/gogpu/gg"

// Surface is the 2D raster the engine draws into
type Surface interface {
	// Resize reallocates the backing raster; non-positive sizes are rejected
	Resize(width, height int) error
	// Clear erases the whole raster
	Clear()
	// SetOpacity sets the paint opacity used by following fills
	SetOpacity(alpha float64)
	// FillCircle fills a circle with the current paint
	FillCircle(x, y, r float64)
	// ResetPaint restores default paint state after a pass
	ResetPaint()
	// Present hands the finished frame to the display
	Present()
	// SetHidden disables or re-enables the visible output
	SetHidden(hidden bool)
}

// Presenter displays a finished raster
type Presenter interface {
	Present(pix *gg.Pixmap)
	Blank()
}
