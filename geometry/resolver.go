// Package geometry resolves the usable pixel size of the container hosting the drawing surface.
package geometry

import (
	"errors"
	"fmt"
)

// FallbackHeightRatio is the share of viewport height used by the last-resort fallback
const FallbackHeightRatio = 0.8

// ErrGeometryUnresolved is returned when no probe yields a usable size
var ErrGeometryUnresolved = errors.New("geometry unresolved")

// Size is a width/height pair in pixels
type Size struct {
	W, H float64
}

// Degenerate reports whether either axis is zero or negative
func (s Size) Degenerate() bool {
	return s.W <= 0 || s.H <= 0
}

// Container is the element that hosts the drawing surface
type Container interface {
	// BoundingBox returns the live rendered box
	BoundingBox() Size
	// LayoutBox returns the box cached by the last Reflow
	LayoutBox() Size
	// Reflow forces a synchronous layout pass refreshing LayoutBox
	Reflow()
}

// Viewport is the visible area of the host
type Viewport interface {
	Size() Size
}

// Source identifies which probe produced a size
type Source uint8

const (
	SourceNone Source = iota
	SourceBoundingBox
	SourceLayoutBox
	SourceViewport
)

// String returns the probe name
func (s Source) String() string {
	switch s {
	case SourceBoundingBox:
		return "bounding-box"
	case SourceLayoutBox:
		return "layout-box"
	case SourceViewport:
		return "viewport"
	default:
		return "none"
	}
}

// Resolver probes a container, then its reflowed layout, then the viewport
type Resolver struct {
	Container Container
	Viewport  Viewport
}

// Resolve returns the first non-degenerate size
// The viewport fallback is only consulted when final is set, so earlier attempts fail
// and leave room for the layout to settle
func (r Resolver) Resolve(final bool) (Size, Source, error) {
	if r.Container != nil {
		if s := r.Container.BoundingBox(); !s.Degenerate() {
			return s, SourceBoundingBox, nil
		}

		r.Container.Reflow()
		if s := r.Container.LayoutBox(); !s.Degenerate() {
			return s, SourceLayoutBox, nil
		}
	}

	if final && r.Viewport != nil {
		vp := r.Viewport.Size()
		s := Size{W: vp.W, H: vp.H * FallbackHeightRatio}
		if !s.Degenerate() {
			return s, SourceViewport, nil
		}
		return Size{}, SourceNone, fmt.Errorf("%w: viewport %.0fx%.0f", ErrGeometryUnresolved, vp.W, vp.H)
	}

	return Size{}, SourceNone, ErrGeometryUnresolved
}
