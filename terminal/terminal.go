// Package terminal hosts the dot grid in a tcell screen.
//
// The screen plays the page: the hero area is the top rows, one cell covers
// CellWidth x CellHeight logical pixels, mouse motion is the pointer and focus
// events are the visibility signals.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dotgrid/geometry"
)

// Logical pixels per terminal cell; a cell shows two square half-block samples
const (
	CellWidth  = 8
	CellHeight = 16
)

// DefaultHeroFraction is the share of screen rows given to the hero area
const DefaultHeroFraction = 0.6

// Container is the hero rectangle anchored at the top-left of the screen
type Container struct {
	screen   tcell.Screen
	fraction float64

	// live is the cell size seen in the last resize event
	liveW, liveH int
	layout       geometry.Size
}

// NewContainer creates a hero container covering fraction of the screen rows
func NewContainer(screen tcell.Screen, fraction float64) *Container {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultHeroFraction
	}
	return &Container{screen: screen, fraction: fraction}
}

// Observe records the screen size carried by a resize event
func (c *Container) Observe(cols, rows int) {
	c.liveW, c.liveH = cols, rows
}

// BoundingBox implements geometry.Container
// Zero until the first resize event is observed
func (c *Container) BoundingBox() geometry.Size {
	return c.pixels(c.liveW, c.liveH)
}

// LayoutBox implements geometry.Container
func (c *Container) LayoutBox() geometry.Size {
	return c.layout
}

// Reflow implements geometry.Container by querying the screen directly
func (c *Container) Reflow() {
	w, h := c.screen.Size()
	c.layout = c.pixels(w, h)
}

// HeroRows returns the hero height in cells for a screen of rows rows
func (c *Container) HeroRows(rows int) int {
	return int(float64(rows) * c.fraction)
}

// Local maps a cell to the pixel at its center, relative to the hero origin
// ok is false when the cell lies outside the hero area
func (c *Container) Local(cellX, cellY int) (x, y float64, ok bool) {
	w, h := c.screen.Size()
	if cellX < 0 || cellY < 0 || cellX >= w || cellY >= c.HeroRows(h) {
		return 0, 0, false
	}
	x = float64(cellX*CellWidth + CellWidth/2)
	y = float64(cellY*CellHeight + CellHeight/2)
	return x, y, true
}

func (c *Container) pixels(cols, rows int) geometry.Size {
	return geometry.Size{
		W: float64(cols * CellWidth),
		H: float64(c.HeroRows(rows) * CellHeight),
	}
}

// Viewport is the whole screen in logical pixels
type Viewport struct {
	screen tcell.Screen
}

// NewViewport wraps screen
func NewViewport(screen tcell.Screen) *Viewport {
	return &Viewport{screen: screen}
}

// Size implements geometry.Viewport
func (v *Viewport) Size() geometry.Size {
	w, h := v.screen.Size()
	return geometry.Size{W: float64(w * CellWidth), H: float64(h * CellHeight)}
}
