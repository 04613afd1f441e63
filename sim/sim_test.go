package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/vec"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newTestSim(t *testing.T, cfg *config.Config) *Simulation {
	t.Helper()
	if cfg == nil {
		cfg = testConfig(t)
	}
	return NewSimulationWithOptions(Options{Seed: 1, Config: cfg})
}

func almostEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func vecAlmostEq(a, b vec.Vec2, eps float32) bool {
	return almostEq(a.X, b.X, eps) && almostEq(a.Y, b.Y, eps)
}

// fillHares spawns hares up to target in two well-separated rows so no
// pair is inside flee range.
func fillHares(s *Simulation) {
	i := 0
	for s.numHares < s.cfg.Hare.MaxNumber {
		x := float32(-510 + (i%6)*190)
		y := float32(250)
		if i >= 6 {
			y = -250
		}
		s.newHare(x, y)
		i++
	}
}

// fillWolves spawns wolves up to target, spread out and away from the
// fillHares rows.
func fillWolves(s *Simulation) {
	i := 0
	for s.numWolves < s.cfg.Wolf.MaxNumber {
		s.newWolf(float32(-500+i*500), -50)
		i++
	}
}

// openDeerGate marks every herd as spawned without placing any deer, so
// deer systems run on exactly the animals a test creates.
func openDeerGate(s *Simulation) {
	for len(s.groups) < s.cfg.Deer.GroupNumber {
		id := s.nextGroupID
		s.nextGroupID++
		s.groups = append(s.groups, deerGroup{id: id, size: 3})
	}
}

func TestFieldWalls(t *testing.T) {
	walls := fieldWalls(1200, 700)

	want := [4]Wall{
		{A: vec.Vec2{X: 600, Y: 350}, B: vec.Vec2{X: 600, Y: -350}},
		{A: vec.Vec2{X: -600, Y: -350}, B: vec.Vec2{X: 600, Y: -350}},
		{A: vec.Vec2{X: -600, Y: 350}, B: vec.Vec2{X: -600, Y: -350}},
		{A: vec.Vec2{X: -600, Y: 350}, B: vec.Vec2{X: 600, Y: 350}},
	}
	for i, w := range walls {
		if w != want[i] {
			t.Errorf("wall %d = %+v, want %+v", i, w, want[i])
		}
	}
}

func TestNewSimulationDerivedState(t *testing.T) {
	s := newTestSim(t, nil)

	if s.fieldW != 1200 || s.fieldH != 700 {
		t.Errorf("field = %gx%g, want 1200x700", s.fieldW, s.fieldH)
	}
	if !almostEq(s.dt, 1.0/60.0, 1e-7) {
		t.Errorf("dt = %g, want 1/60", s.dt)
	}
	if s.Tick() != 0 {
		t.Errorf("fresh sim tick = %d, want 0", s.Tick())
	}
	if s.Hares() != 0 || s.Wolves() != 0 || s.Deer() != 0 {
		t.Errorf("fresh sim populated: %d hares %d wolves %d deer",
			s.Hares(), s.Wolves(), s.Deer())
	}
}

func TestHeadingFromVel(t *testing.T) {
	tests := []struct {
		name string
		v    vec.Vec2
		want float32
	}{
		{"up", vec.Vec2{X: 0, Y: 1}, 0},
		{"right", vec.Vec2{X: 1, Y: 0}, -math.Pi / 2},
		{"down", vec.Vec2{X: 0, Y: -1}, -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := headingFromVel(tt.v)
			if !almostEq(got, tt.want, 1e-6) {
				t.Errorf("headingFromVel(%+v) = %g, want %g", tt.v, got, tt.want)
			}
		})
	}
}

func TestSpeedClamping(t *testing.T) {
	s := newTestSim(t, nil)

	s.SetSpeed(0)
	if s.Speed() != 1 {
		t.Errorf("speed after SetSpeed(0) = %d, want 1", s.Speed())
	}
	s.SetSpeed(25)
	if s.Speed() != 10 {
		t.Errorf("speed after SetSpeed(25) = %d, want 10", s.Speed())
	}
	s.SetSpeed(4)
	if s.Speed() != 4 {
		t.Errorf("speed after SetSpeed(4) = %d, want 4", s.Speed())
	}
}

func TestPauseBlocksUpdate(t *testing.T) {
	s := newTestSim(t, nil)

	s.SetPaused(true)
	s.Update()
	if s.Tick() != 0 {
		t.Errorf("paused Update advanced to tick %d", s.Tick())
	}

	s.TogglePause()
	s.SetSpeed(3)
	s.Update()
	if s.Tick() != 3 {
		t.Errorf("Update at speed 3 advanced to tick %d, want 3", s.Tick())
	}
}

func TestUpdateHeadlessSteps(t *testing.T) {
	cfg := testConfig(t)
	s := NewSimulationWithOptions(Options{Seed: 1, Config: cfg, StepsPerUpdate: 5})

	s.UpdateHeadless()
	if s.Tick() != 5 {
		t.Errorf("UpdateHeadless advanced to tick %d, want 5", s.Tick())
	}
}

func TestSnapshotCoversEveryAgent(t *testing.T) {
	s := newTestSim(t, nil)
	fillHares(s)
	fillWolves(s)
	s.groups = append(s.groups, deerGroup{id: 1, size: 3})
	for i := 0; i < 3; i++ {
		s.newDeer(float32(i*40), 100, 1)
	}
	s.SpawnPlayer()
	s.FireBullet(vec.Vec2{X: 100, Y: 0})

	views := s.Snapshot(nil)
	want := s.Hares() + s.Wolves() + s.Deer() + 2
	if len(views) != want {
		t.Fatalf("snapshot has %d agents, want %d", len(views), want)
	}

	counts := make(map[components.Species]int)
	for _, v := range views {
		counts[v.Species]++
	}
	if counts[components.SpeciesPlayer] != 1 || counts[components.SpeciesBullet] != 1 {
		t.Errorf("snapshot species counts = %v", counts)
	}
}

func TestSameSeedRunsIdentically(t *testing.T) {
	run := func() ([]AgentView, int, int, int) {
		s := NewSimulationWithOptions(Options{Seed: 7, Config: testConfig(t)})
		for i := 0; i < 400; i++ {
			s.Step()
		}
		return s.Snapshot(nil), s.Hares(), s.Wolves(), s.Deer()
	}

	viewsA, haresA, wolvesA, deerA := run()
	viewsB, haresB, wolvesB, deerB := run()

	if haresA != haresB || wolvesA != wolvesB || deerA != deerB {
		t.Fatalf("populations diverged: %d/%d/%d vs %d/%d/%d",
			haresA, wolvesA, deerA, haresB, wolvesB, deerB)
	}
	if len(viewsA) != len(viewsB) {
		t.Fatalf("agent counts diverged: %d vs %d", len(viewsA), len(viewsB))
	}
	for i := range viewsA {
		if viewsA[i] != viewsB[i] {
			t.Fatalf("agent %d diverged: %+v vs %+v", i, viewsA[i], viewsB[i])
		}
	}
}
