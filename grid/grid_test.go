package grid

import (
	"math"
	"testing"
)

var testStyle = Style{
	BaseRadius:      1.5,
	HoverRadius:     4,
	BaseOpacity:     0.25,
	HoverOpacity:    0.9,
	InfluenceRadius: 120,
	Easing:          0.1,
}

// TestBuildPointCount checks floor(w/s)*floor(h/s) across a spread of sizes
func TestBuildPointCount(t *testing.T) {
	tests := []struct {
		w, h, spacing float64
		cols, rows    int
	}{
		{800, 400, 25, 32, 16},
		{810, 410, 25, 32, 16},
		{24, 400, 25, 0, 16},
		{1, 1, 25, 0, 0},
		{1920, 864, 30, 64, 28},
		{100.5, 99.9, 10, 10, 9},
	}

	for _, tt := range tests {
		g := Build(tt.w, tt.h, tt.spacing, testStyle)
		want := tt.cols * tt.rows
		if g.Len() != want {
			t.Errorf("Build(%v,%v,%v) = %d points, want %d", tt.w, tt.h, tt.spacing, g.Len(), want)
		}
		if want > 0 && (g.Cols != tt.cols || g.Rows != tt.rows) {
			t.Errorf("Build(%v,%v,%v) = %dx%d, want %dx%d", tt.w, tt.h, tt.spacing, g.Cols, g.Rows, tt.cols, tt.rows)
		}
		for i, p := range g.Points {
			if p.Radius != testStyle.BaseRadius || p.TargetRadius != testStyle.BaseRadius {
				t.Fatalf("point %d radius %v/%v, want baseline", i, p.Radius, p.TargetRadius)
			}
			if p.Opacity != testStyle.BaseOpacity || p.TargetOpacity != testStyle.BaseOpacity {
				t.Fatalf("point %d opacity %v/%v, want baseline", i, p.Opacity, p.TargetOpacity)
			}
		}
	}
}

// TestBuildHeroScenario is the 800x400 hero at spacing 25
func TestBuildHeroScenario(t *testing.T) {
	g := Build(800, 400, 25, testStyle)

	if g.Cols != 32 || g.Rows != 16 {
		t.Fatalf("grid = %dx%d, want 32x16", g.Cols, g.Rows)
	}
	if g.OffsetX != 0 || g.OffsetY != 0 {
		t.Errorf("offset = (%v,%v), want zero remainder", g.OffsetX, g.OffsetY)
	}

	first := g.Points[0]
	last := g.Points[len(g.Points)-1]
	if first.X != 12.5 || first.Y != 12.5 {
		t.Errorf("first point at (%v,%v), want (12.5,12.5)", first.X, first.Y)
	}
	if last.X != 787.5 || last.Y != 387.5 {
		t.Errorf("last point at (%v,%v), want (787.5,387.5)", last.X, last.Y)
	}
}

// TestBuildCentered verifies equal margins on both edges with a remainder
func TestBuildCentered(t *testing.T) {
	g := Build(110, 60, 25, testStyle)

	if g.OffsetX != 5 || g.OffsetY != 5 {
		t.Fatalf("offset = (%v,%v), want (5,5)", g.OffsetX, g.OffsetY)
	}
	first := g.Points[0]
	last := g.Points[len(g.Points)-1]
	left := first.X
	right := 110 - last.X
	if math.Abs(left-right) > 1e-9 {
		t.Errorf("left margin %v != right margin %v", left, right)
	}
	top := first.Y
	bottom := 60 - last.Y
	if math.Abs(top-bottom) > 1e-9 {
		t.Errorf("top margin %v != bottom margin %v", top, bottom)
	}
}

// TestBuildDegenerate verifies zero-area and bad spacing produce an empty, usable grid
func TestBuildDegenerate(t *testing.T) {
	for _, g := range []*Grid{
		Build(0, 400, 25, testStyle),
		Build(800, 10, 25, testStyle),
		Build(800, 400, 0, testStyle),
		Build(800, 400, -5, testStyle),
	} {
		if !g.Empty() {
			t.Errorf("expected empty grid, got %d points", g.Len())
		}
		g.Step(Pointer{X: 1, Y: 1}, testStyle)
	}

	var nilGrid *Grid
	if nilGrid.Len() != 0 || !nilGrid.Empty() {
		t.Error("nil grid should be empty")
	}
	nilGrid.Step(OffSurface, testStyle)
}

// TestBuildReplacesPoints verifies a rebuild never aliases the previous point slice
func TestBuildReplacesPoints(t *testing.T) {
	a := Build(100, 100, 25, testStyle)
	b := Build(100, 100, 25, testStyle)
	a.Points[0].Radius = 99
	if b.Points[0].Radius == 99 {
		t.Error("rebuilt grid shares storage with the previous one")
	}
}
