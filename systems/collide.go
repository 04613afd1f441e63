package systems

import "github.com/pthm-cable/meadow/vec"

// Side classifies which edge of box B the overlapping box A straddles.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Collide performs an axis-aligned overlap test between box A (center aPos,
// size aW x aH) and box B. On overlap it reports which edge of B box A
// straddles, picking the axis with the smaller overlap when A straddles an
// edge on both. A box that overlaps without straddling any edge of B (one
// box fully containing the other along both axes) reports no collision.
func Collide(aPos vec.Vec2, aW, aH float32, bPos vec.Vec2, bW, bH float32) (Side, bool) {
	aMinX, aMaxX := aPos.X-aW/2, aPos.X+aW/2
	aMinY, aMaxY := aPos.Y-aH/2, aPos.Y+aH/2
	bMinX, bMaxX := bPos.X-bW/2, bPos.X+bW/2
	bMinY, bMaxY := bPos.Y-bH/2, bPos.Y+bH/2

	if !(aMinX < bMaxX && aMaxX > bMinX && aMinY < bMaxY && aMaxY > bMinY) {
		return 0, false
	}

	var (
		xSide, ySide   Side
		xHit, yHit     bool
		xDepth, yDepth float32
	)
	switch {
	case aMinX < bMinX && aMaxX > bMinX && aMaxX < bMaxX:
		xSide, xHit, xDepth = SideLeft, true, bMinX-aMaxX
	case aMinX > bMinX && aMinX < bMaxX && aMaxX > bMaxX:
		xSide, xHit, xDepth = SideRight, true, aMinX-bMaxX
	}
	switch {
	case aMinY < bMinY && aMaxY > bMinY && aMaxY < bMaxY:
		ySide, yHit, yDepth = SideBottom, true, bMinY-aMaxY
	case aMinY > bMinY && aMinY < bMaxY && aMaxY > bMaxY:
		ySide, yHit, yDepth = SideTop, true, aMinY-bMaxY
	}

	switch {
	case xHit && yHit:
		if absFloat(xDepth) > absFloat(yDepth) {
			return ySide, true
		}
		return xSide, true
	case xHit:
		return xSide, true
	case yHit:
		return ySide, true
	default:
		return 0, false
	}
}

// Overlaps reports whether the two boxes collide, without the side.
func Overlaps(aPos vec.Vec2, aW, aH float32, bPos vec.Vec2, bW, bH float32) bool {
	_, ok := Collide(aPos, aW, aH, bPos, bW, bH)
	return ok
}
