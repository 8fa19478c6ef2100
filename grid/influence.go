package grid

import "math"

// Influence returns pointer intensity at (x, y) in [0, 1]
// 1 at the pointer, falling linearly to 0 at radius; 0 outside and for the sentinel
// The falloff is continuous at the boundary so no hysteresis band is applied
func Influence(x, y float64, p Pointer, radius float64) float64 {
	if p == OffSurface || radius <= 0 {
		return 0
	}
	dx := x - p.X
	dy := y - p.Y
	d2 := dx*dx + dy*dy
	if d2 >= radius*radius {
		return 0
	}
	if d2 == 0 {
		return 1
	}
	return 1 - math.Sqrt(d2)/radius
}

// Lerp interpolates linearly from a to b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Ease closes factor of the remaining gap between current and target
// With factor in (0, 1] the result never overshoots target
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}
