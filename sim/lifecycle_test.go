package sim

import (
	"testing"

	"github.com/pthm-cable/meadow/vec"
)

func TestPredationKillResetsHunger(t *testing.T) {
	s := newTestSim(t, nil)
	s.tick = 240

	wolf := s.newWolf(0, 0)
	hare := s.newHare(10, 0)

	s.resolveCollisions()

	if s.world.Alive(hare) {
		t.Error("hare survived an overlapping wolf")
	}
	if s.Hares() != 0 {
		t.Errorf("hare count = %d after predation, want 0", s.Hares())
	}
	if got := s.hungerMap.Get(wolf).LastAte; got != s.now() {
		t.Errorf("wolf last_ate = %g, want kill time %g", got, s.now())
	}
}

func TestBulletKillConsumesBullet(t *testing.T) {
	s := newTestSim(t, nil)
	s.SpawnPlayer()
	s.newHare(30, 0)

	s.FireBullet(vec.Vec2{X: 30})
	s.resolveCollisions()

	if s.Hares() != 0 {
		t.Errorf("hare count = %d after bullet hit, want 0", s.Hares())
	}
	if got := countBullets(s); got != 0 {
		t.Errorf("%d bullets left after a kill, want 0", got)
	}
	if !s.PlayerAlive() {
		t.Error("player died to their own bullet")
	}
}

func TestBulletKillsDeerAndClearsGroup(t *testing.T) {
	s := newTestSim(t, nil)
	openDeerGate(s)
	s.SpawnPlayer()
	s.newDeer(30, 0, 1)

	s.FireBullet(vec.Vec2{X: 30})
	s.resolveCollisions()

	if s.Deer() != 0 {
		t.Errorf("deer count = %d after bullet hit, want 0", s.Deer())
	}
	if s.DeerGroups() != 0 {
		t.Errorf("live groups = %d after the herd died out, want 0", s.DeerGroups())
	}
	if got := countBullets(s); got != 0 {
		t.Errorf("%d bullets left after a kill, want 0", got)
	}
}

func TestWolfAndBulletSameTick(t *testing.T) {
	s := newTestSim(t, nil)
	s.tick = 60

	wolf := s.newWolf(40, 0)
	hare := s.newHare(10, 0)
	s.SpawnPlayer()
	ppos := s.posMap.Get(s.player)
	ppos.X = -25

	s.FireBullet(vec.Vec2{X: 10})
	s.resolveCollisions()

	// The wolf ate first; the bullet is still consumed and the hare dies
	// exactly once.
	if s.world.Alive(hare) {
		t.Error("hare survived a wolf and a bullet")
	}
	if s.Hares() != 0 {
		t.Errorf("hare count = %d, want 0 after a single death", s.Hares())
	}
	if got := countBullets(s); got != 0 {
		t.Errorf("%d bullets left, want 0", got)
	}
	if got := s.hungerMap.Get(wolf).LastAte; got != s.now() {
		t.Errorf("wolf last_ate = %g, want %g", got, s.now())
	}
	if !s.PlayerAlive() {
		t.Error("player died standing clear of the fight")
	}
}

func TestBulletsPassThroughWolves(t *testing.T) {
	s := newTestSim(t, nil)
	wolf := s.newWolf(0, 0)
	s.SpawnPlayer()
	ppos := s.posMap.Get(s.player)
	ppos.X = -100

	s.FireBullet(vec.Vec2{})

	// Park the bullet on top of the wolf.
	query := s.bulletFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		pos.X, pos.Y = 0, 0
	}

	s.resolveCollisions()

	if !s.world.Alive(wolf) {
		t.Error("bullet killed a wolf")
	}
	if got := countBullets(s); got != 1 {
		t.Errorf("bullet count = %d, want 1 untouched bullet", got)
	}
}

func TestWolfEatsPlayer(t *testing.T) {
	s := newTestSim(t, nil)
	s.tick = 120

	s.SpawnPlayer()
	wolf := s.newWolf(10, 0)

	s.resolveCollisions()

	if s.PlayerAlive() {
		t.Error("player survived an overlapping wolf")
	}
	if got := s.PlayerPos(); got != (vec.Vec2{}) {
		t.Errorf("dead player reports position %+v", got)
	}
	if got := s.hungerMap.Get(wolf).LastAte; got != s.now() {
		t.Errorf("wolf last_ate = %g, want %g", got, s.now())
	}

	// Death is final: respawning is not possible within a run.
	s.SpawnPlayer()
	if s.PlayerAlive() {
		t.Error("dead player came back")
	}
}

func TestBulletFliesThenExpires(t *testing.T) {
	s := newTestSim(t, nil)
	s.SpawnPlayer()
	s.FireBullet(vec.Vec2{X: 100})

	s.flyBullets()
	if got := countBullets(s); got != 1 {
		t.Fatalf("bullet count = %d mid-flight, want 1", got)
	}
	query := s.bulletFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		if !almostEq(pos.X, s.cfg.Bullet.Speed*s.dt, 1e-3) || pos.Y != 0 {
			t.Errorf("bullet at (%g, %g) after one step, want (%g, 0)", pos.X, pos.Y, s.cfg.Bullet.Speed*s.dt)
		}
	}

	// Still flying just inside the deadline, gone once past it.
	s.tick = 89
	s.flyBullets()
	if got := countBullets(s); got != 1 {
		t.Errorf("bullet count = %d at 1.48s, want 1", got)
	}
	s.tick = 90
	s.flyBullets()
	if got := countBullets(s); got != 0 {
		t.Errorf("bullet count = %d past flight time, want 0", got)
	}
}

func TestStationaryBulletExpiresInPlace(t *testing.T) {
	s := newTestSim(t, nil)
	s.SpawnPlayer()
	s.FireBullet(s.PlayerPos())

	s.flyBullets()
	s.flyBullets()
	query := s.bulletFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		if pos.X != 0 || pos.Y != 0 {
			t.Errorf("stationary bullet drifted to (%g, %g)", pos.X, pos.Y)
		}
	}

	s.tick = 90
	s.flyBullets()
	if got := countBullets(s); got != 0 {
		t.Errorf("bullet count = %d past flight time, want 0", got)
	}
}

func TestStarvationDeadline(t *testing.T) {
	cfg := testConfig(t)
	// A power-of-two step keeps the clock arithmetic exact at the deadline.
	cfg.Physics.DT = 1.0 / 64
	cfg.Derived.DT32 = 1.0 / 64
	s := newTestSim(t, cfg)
	fillWolves(s)

	// First pass anchors every hunger clock at 1.0s.
	s.tick = 64
	s.updateStarvation()
	if s.Wolves() != 3 {
		t.Fatalf("wolf count = %d after anchoring pass, want 3", s.Wolves())
	}

	// Deadline is 6.0s exclusive: alive at exactly 6.0, starved past it.
	s.tick = 384
	s.updateStarvation()
	if s.Wolves() != 3 {
		t.Errorf("wolf count = %d at the deadline, want 3", s.Wolves())
	}

	s.tick = 385
	s.updateStarvation()
	if s.Wolves() != 0 {
		t.Errorf("wolf count = %d past the deadline, want 0", s.Wolves())
	}
}

func TestStarvationInertBelowTarget(t *testing.T) {
	s := newTestSim(t, nil)
	w1 := s.newWolf(0, 0)
	w2 := s.newWolf(200, 0)
	s.hungerMap.Get(w1).LastAte = 0.001
	s.hungerMap.Get(w2).LastAte = 0.001

	s.tick = 10000
	s.updateStarvation()

	if s.Wolves() != 2 || !s.world.Alive(w1) || !s.world.Alive(w2) {
		t.Errorf("wolves starved during a population refill, count = %d", s.Wolves())
	}
}

func TestKillBeforeStarvationSavesWolf(t *testing.T) {
	s := newTestSim(t, nil)
	starving := s.newWolf(0, -50)
	s.newWolf(-500, -50)
	s.newWolf(500, -50)
	s.newHare(10, -50)
	s.hungerMap.Get(starving).LastAte = 0.5

	// At 6.0s the wolf is half a second past starving, but this tick's kill
	// resets the clock before the starvation pass sees it.
	s.tick = 360
	s.resolveCollisions()
	s.updateStarvation()

	if !s.world.Alive(starving) {
		t.Error("wolf starved in the same tick as its kill")
	}
	if s.Wolves() != 3 {
		t.Errorf("wolf count = %d, want 3", s.Wolves())
	}
	if s.Hares() != 0 {
		t.Errorf("hare count = %d, want 0", s.Hares())
	}
}

func TestDeerDeathsRetireGroups(t *testing.T) {
	s := newTestSim(t, nil)
	openDeerGate(s)
	d1 := s.newDeer(0, 0, 1)
	d2 := s.newDeer(200, 0, 1)
	wolf := s.newWolf(10, 0)

	s.resolveCollisions()
	if s.world.Alive(d1) || !s.world.Alive(d2) {
		t.Fatal("wrong deer died")
	}
	if s.Deer() != 1 || s.DeerGroups() != 1 {
		t.Errorf("deer = %d groups = %d after first death, want 1 and 1", s.Deer(), s.DeerGroups())
	}

	wpos := s.posMap.Get(wolf)
	wpos.X = 210
	s.resolveCollisions()
	if s.Deer() != 0 || s.DeerGroups() != 0 {
		t.Errorf("deer = %d groups = %d after herd died out, want 0 and 0", s.Deer(), s.DeerGroups())
	}

	// Herds do not respawn once spawned groups are used up.
	s.spawnDeerGroups()
	if s.Deer() != 0 {
		t.Errorf("deer respawned after their herd died out, count = %d", s.Deer())
	}
}
