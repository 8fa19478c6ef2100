// Package grid holds the dot lattice, the pointer tracker and the per-frame influence model.
package grid

import "math"

// Point is one dot of the lattice
// X and Y are fixed at build time; the rest is animated state
type Point struct {
	X, Y float64

	Radius  float64
	Opacity float64

	TargetRadius  float64
	TargetOpacity float64
}

// Style holds the visual constants applied to every point
type Style struct {
	BaseRadius      float64
	HoverRadius     float64
	BaseOpacity     float64
	HoverOpacity    float64
	InfluenceRadius float64
	Easing          float64
}

// Grid is an immutable lattice layout with mutable per-point state
// Replaced wholesale when geometry changes, never resized in place
type Grid struct {
	Points []Point

	Cols, Rows       int
	Spacing          float64
	OffsetX, OffsetY float64
	Width, Height    float64
}

// Build lays out floor(w/spacing) x floor(h/spacing) points centered in w x h
// Each point sits at the center of its lattice cell; leftover space is split evenly
// on both edges. A non-positive spacing or a zero-area result yields an empty grid.
func Build(width, height, spacing float64, style Style) *Grid {
	g := &Grid{Spacing: spacing, Width: width, Height: height}
	if spacing <= 0 || width <= 0 || height <= 0 {
		return g
	}

	g.Cols = int(math.Floor(width / spacing))
	g.Rows = int(math.Floor(height / spacing))
	if g.Cols == 0 || g.Rows == 0 {
		return g
	}

	g.OffsetX = (width - float64(g.Cols)*spacing) / 2
	g.OffsetY = (height - float64(g.Rows)*spacing) / 2

	half := spacing / 2
	g.Points = make([]Point, 0, g.Cols*g.Rows)
	for r := 0; r < g.Rows; r++ {
		y := g.OffsetY + float64(r)*spacing + half
		for c := 0; c < g.Cols; c++ {
			g.Points = append(g.Points, Point{
				X:             g.OffsetX + float64(c)*spacing + half,
				Y:             y,
				Radius:        style.BaseRadius,
				Opacity:       style.BaseOpacity,
				TargetRadius:  style.BaseRadius,
				TargetOpacity: style.BaseOpacity,
			})
		}
	}
	return g
}

// Len returns the point count, nil-safe
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Points)
}

// Empty reports whether there is nothing to draw
func (g *Grid) Empty() bool {
	return g.Len() == 0
}

// Step advances every point one logical frame toward the pointer-driven target
func (g *Grid) Step(p Pointer, style Style) {
	if g == nil {
		return
	}
	for i := range g.Points {
		g.Points[i].Step(p, style)
	}
}

// Step computes this point's target from the pointer and eases toward it
func (pt *Point) Step(p Pointer, style Style) {
	intensity := Influence(pt.X, pt.Y, p, style.InfluenceRadius)
	pt.TargetRadius = Lerp(style.BaseRadius, style.HoverRadius, intensity)
	pt.TargetOpacity = Lerp(style.BaseOpacity, style.HoverOpacity, intensity)
	pt.Radius = Ease(pt.Radius, pt.TargetRadius, style.Easing)
	pt.Opacity = Ease(pt.Opacity, pt.TargetOpacity, style.Easing)
}
