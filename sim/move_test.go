package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/vec"
)

func TestIntegrateCapsVelocityAtSpeed(t *testing.T) {
	s := newTestSim(t, nil)
	a := s.newHare(0, 0)
	fillHares(s)

	phys := s.physMap.Get(a)
	phys.Vel = vec.Vec2{}
	s.behMap.Get(a).Force = vec.Vec2{X: 10, Y: 0}

	s.integrate()

	perTick := s.cfg.Hare.MovementSpeed * s.dt
	if !vecAlmostEq(phys.Vel, vec.Vec2{X: perTick}, 1e-4) {
		t.Errorf("velocity = %+v, want capped at (%g, 0)", phys.Vel, perTick)
	}
	pos := s.posMap.Get(a)
	if !almostEq(pos.X, perTick, 1e-4) || pos.Y != 0 {
		t.Errorf("position = (%g, %g), want (%g, 0)", pos.X, pos.Y, perTick)
	}
	if !almostEq(phys.Heading, -math.Pi/2, 1e-5) {
		t.Errorf("heading = %g, want -pi/2 for rightward motion", phys.Heading)
	}
}

func TestIntegrateKeepsSmallForces(t *testing.T) {
	s := newTestSim(t, nil)
	a := s.newHare(0, 0)
	fillHares(s)

	phys := s.physMap.Get(a)
	phys.Vel = vec.Vec2{}
	s.behMap.Get(a).Force = vec.Vec2{X: 0.5, Y: 0}

	s.integrate()

	if !vecAlmostEq(phys.Vel, vec.Vec2{X: 0.5}, 1e-5) {
		t.Errorf("velocity = %+v, want (0.5, 0) below the cap", phys.Vel)
	}
}

func TestIntegrateClearsForceAndAcceleration(t *testing.T) {
	s := newTestSim(t, nil)
	a := s.newHare(0, 0)
	fillHares(s)

	phys := s.physMap.Get(a)
	phys.Vel = vec.Vec2{}
	s.behMap.Get(a).Force = vec.Vec2{X: 10, Y: 0}

	s.integrate()

	beh := s.behMap.Get(a)
	if !beh.Force.IsZero() {
		t.Errorf("force %+v not cleared after integration", beh.Force)
	}
	if !phys.Acc.IsZero() {
		t.Errorf("acceleration %+v not cleared after integration", phys.Acc)
	}

	// With no fresh force the hare coasts at the same velocity.
	before := phys.Vel
	s.integrate()
	if phys.Vel != before {
		t.Errorf("coasting velocity changed from %+v to %+v", before, phys.Vel)
	}
}

func TestIntegrateHoldsBelowTarget(t *testing.T) {
	s := newTestSim(t, nil)

	wolf := s.newWolf(0, 0)
	deer := s.newDeer(100, 0, 1)
	s.physMap.Get(wolf).Vel = vec.Vec2{X: 3}
	s.physMap.Get(deer).Vel = vec.Vec2{X: 3}

	s.integrate()

	if pos := s.posMap.Get(wolf); pos.X != 0 {
		t.Errorf("gated wolf moved to x=%g", pos.X)
	}
	if pos := s.posMap.Get(deer); pos.X != 100 {
		t.Errorf("gated deer moved to x=%g", pos.X)
	}
}

func TestMovePlayerNormalizesDiagonal(t *testing.T) {
	s := newTestSim(t, nil)
	s.SpawnPlayer()

	s.MovePlayer(vec.Vec2{X: 1, Y: 1})

	perTick := s.cfg.Player.MovementSpeed * s.dt
	want := vec.SetMag(vec.Vec2{X: 1, Y: 1}, perTick)
	got := s.PlayerPos()
	if !vecAlmostEq(got, want, 1e-4) {
		t.Errorf("player at %+v, want %+v", got, want)
	}
	if !almostEq(got.Len(), perTick, 1e-3) {
		t.Errorf("diagonal step length = %g, want %g", got.Len(), perTick)
	}
}

func TestMovePlayerZeroDirectionStays(t *testing.T) {
	s := newTestSim(t, nil)
	s.SpawnPlayer()

	s.MovePlayer(vec.Vec2{})

	if got := s.PlayerPos(); got != (vec.Vec2{}) {
		t.Errorf("player drifted to %+v with no input", got)
	}
}

func TestMovePlayerBorderNudge(t *testing.T) {
	tests := []struct {
		name string
		pos  vec.Vec2
		want vec.Vec2
	}{
		{"right", vec.Vec2{X: 590, Y: 0}, vec.Vec2{X: 589, Y: 0}},
		{"left", vec.Vec2{X: -590, Y: 0}, vec.Vec2{X: -589, Y: 0}},
		{"top", vec.Vec2{X: 0, Y: 340}, vec.Vec2{X: 0, Y: 339}},
		{"bottom", vec.Vec2{X: 0, Y: -340}, vec.Vec2{X: 0, Y: -339}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, nil)
			s.SpawnPlayer()
			pos := s.posMap.Get(s.player)
			pos.X, pos.Y = tt.pos.X, tt.pos.Y

			s.MovePlayer(vec.Vec2{})

			if got := s.PlayerPos(); got != tt.want {
				t.Errorf("player at %+v, want nudged to %+v", got, tt.want)
			}
		})
	}
}

func TestAimPlayer(t *testing.T) {
	tests := []struct {
		name   string
		target vec.Vec2
		want   float32
	}{
		{"above", vec.Vec2{X: 0, Y: 100}, 0},
		{"below", vec.Vec2{X: 0, Y: -100}, math.Pi},
		{"right", vec.Vec2{X: 100, Y: 0}, 3 * math.Pi / 2},
		{"left", vec.Vec2{X: -100, Y: 0}, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, nil)
			s.SpawnPlayer()

			s.AimPlayer(tt.target)

			got := s.physMap.Get(s.player).Heading
			if !almostEq(got, tt.want, 1e-5) {
				t.Errorf("heading = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPlayerControlsRequireSpawn(t *testing.T) {
	s := newTestSim(t, nil)

	// None of these may panic without a player on the field.
	s.MovePlayer(vec.Vec2{X: 1})
	s.AimPlayer(vec.Vec2{X: 100})
	s.FireBullet(vec.Vec2{X: 100})

	if s.PlayerAlive() {
		t.Error("player reported alive without being spawned")
	}
}
