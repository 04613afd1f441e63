package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/components"
)

func (v *Viewer) drawField() {
	fw, fh := v.sim.FieldSize()
	sx, sy := v.cam.WorldToScreen(-fw/2, fh/2)
	rl.DrawRectangle(int32(sx), int32(sy), int32(fw), int32(fh), v.theme.FieldFill)
	rl.DrawRectangleLinesEx(rl.NewRectangle(sx, sy, fw, fh), 2, v.theme.FieldBorder)
}

func (v *Viewer) drawAgents() {
	v.agents = v.sim.Snapshot(v.agents[:0])
	for _, a := range v.agents {
		sx, sy := v.cam.WorldToScreen(a.Pos.X, a.Pos.Y)
		color := v.theme.SpeciesColor(a.Species)

		if a.Species == components.SpeciesBullet {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, v.cfg.Bullet.Width/2, color)
			continue
		}

		// Sprites point up at zero heading; the facing angle recovers the
		// travel direction before converting into screen space.
		facing := v.cam.ScreenHeading(a.Heading + math.Pi/2)
		drawOrientedTriangle(sx, sy, facing, v.bodyRadius(a.Species), color, v.theme.OutlineOn)
	}
}

// bodyRadius sizes the triangle so its long axis roughly spans the
// species' collision box.
func (v *Viewer) bodyRadius(sp components.Species) float32 {
	switch sp {
	case components.SpeciesHare:
		return v.cfg.Hare.Width / 3
	case components.SpeciesWolf:
		return v.cfg.Wolf.Width / 3
	case components.SpeciesDeer:
		return v.cfg.Deer.Width / 3
	default:
		return v.cfg.Player.Width / 3
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color, outline bool) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	// Back left
	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	// Back right
	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	if outline {
		rl.DrawTriangleLines(v1, v2, v3, rl.White)
	}
}
