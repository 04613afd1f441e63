package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/vec"
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.sim.TogglePause()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.sim.SetSpeed(v.sim.Speed() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.sim.SetSpeed(v.sim.Speed() + 1)
	}

	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}

	if v.sim.Paused() || !v.sim.PlayerAlive() {
		return
	}

	var dir vec.Vec2
	if rl.IsKeyDown(rl.KeyW) {
		dir.Y++
	}
	if rl.IsKeyDown(rl.KeyS) {
		dir.Y--
	}
	if rl.IsKeyDown(rl.KeyA) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyD) {
		dir.X++
	}
	if !dir.IsZero() {
		v.sim.MovePlayer(dir)
	}

	mouse := rl.GetMousePosition()
	wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
	target := vec.Vec2{X: wx, Y: wy}
	v.sim.AimPlayer(target)

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		v.sim.FireBullet(target)
	}
}
