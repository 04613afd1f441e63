// Package vec provides the 2D vector math the steering systems are built on.
package vec

import "math"

// Vec2 is a 2D vector in field coordinates (origin at field center, y up).
type Vec2 struct {
	X, Y float32
}

// New builds a vector from its components.
func New(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LenSq returns the squared magnitude.
func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the magnitude.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Limit clamps v to magnitude max; shorter vectors pass through unchanged.
func Limit(v Vec2, max float32) Vec2 {
	magSq := v.LenSq()
	if magSq > max*max {
		s := max / float32(math.Sqrt(float64(magSq)))
		return Vec2{v.X * s, v.Y * s}
	}
	return v
}

// SetMag rescales v to magnitude n. A zero vector stays zero instead of
// going NaN through normalization.
func SetMag(v Vec2, n float32) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	s := n / l
	return Vec2{v.X * s, v.Y * s}
}

// Dist returns the planar distance between a and b.
func Dist(a, b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// SegmentIntersection intersects the segment a1->a2 (parameter t) with the
// directed line through b1->b2 (parameter u). A hit requires t strictly
// inside (0,1) and u > 1, i.e. the crossing sits within the segment but
// beyond b2 along the probe direction. Parallel lines (den == 0) and
// crossings outside that window report no hit.
func SegmentIntersection(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	den := (a1.X-a2.X)*(b1.Y-b2.Y) - (a1.Y-a2.Y)*(b1.X-b2.X)
	if den == 0 {
		return Vec2{}, false
	}
	t := ((a1.X-b1.X)*(b1.Y-b2.Y) - (a1.Y-b1.Y)*(b1.X-b2.X)) / den
	u := -((a1.X-a2.X)*(a1.Y-b1.Y) - (a1.Y-a2.Y)*(a1.X-b1.X)) / den
	if t > 0 && t < 1 && u > 1 {
		return Vec2{a1.X + t*(a2.X-a1.X), a1.Y + t*(a2.Y-a1.Y)}, true
	}
	return Vec2{}, false
}
