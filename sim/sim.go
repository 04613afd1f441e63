// Package sim runs the fixed-timestep hunt simulation: spawning, steering,
// movement, and the collision and starvation life cycle for every agent on
// the field.
package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/vec"
)

// Interaction ranges and the flee speed bonus are fixed properties of the
// hunt, not part of the tuning surface.
const (
	fleeRadius     float32 = 100 // threats closer than this trigger a flee response
	evadeRadius    float32 = 180 // deer anticipate wolf movement inside this range
	pursueRadius   float32 = 100 // wolves chase prey inside this range
	wallProbeRange float32 = 40  // projected wall crossings further ahead than this are ignored
	fleeSpeedBonus float32 = 50  // added on top of base speed while the flee boost is active
)

// Wall is one fixed border segment of the field.
type Wall struct {
	A, B vec.Vec2
}

// deerGroup records a spawned herd. Entries are never removed; a group
// whose members all die stays counted, so herds do not respawn.
type deerGroup struct {
	id   uint32
	size int
}

// Options configures a Simulation.
type Options struct {
	Seed           int64                       // 0 = fixed default seed
	Config         *config.Config              // nil = global config
	LogStats       bool                        // emit window stats via slog
	StatsWindowSec float64                     // 0 = config value
	OutputDir      string                      // empty = no CSV output
	StepsPerUpdate int                         // ticks per UpdateHeadless call, min 1
	StatsCallback  func(telemetry.WindowStats) // called on every window flush
}

// Simulation owns the world and advances it in fixed steps.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	// ECS
	world     ecs.World
	hareMap   ecs.Map6[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent, components.FleeBoost]
	wolfMap   ecs.Map6[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent, components.Hunger]
	deerMap   ecs.Map5[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent]
	playerMap ecs.Map4[components.Position, components.Physics, components.MovementSpeed, components.Agent]
	bulletMap ecs.Map4[components.Position, components.Physics, components.Agent, components.Projectile]

	posMap    ecs.Map1[components.Position]
	physMap   ecs.Map1[components.Physics]
	behMap    ecs.Map1[components.Behavior]
	speedMap  ecs.Map1[components.MovementSpeed]
	agentMap  ecs.Map1[components.Agent]
	hungerMap ecs.Map1[components.Hunger]
	boostMap  ecs.Map1[components.FleeBoost]

	steerFilter  *ecs.Filter5[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent]
	animalFilter *ecs.Filter4[components.Position, components.Physics, components.MovementSpeed, components.Agent]
	bulletFilter *ecs.Filter3[components.Position, components.Physics, components.Projectile]
	agentFilter  *ecs.Filter3[components.Position, components.Physics, components.Agent]

	// Field
	grid   *systems.SpatialGrid
	walls  [4]Wall
	fieldW float32
	fieldH float32
	dt     float32

	// State
	tick           int32
	paused         bool
	speed          int // simulation speed multiplier (1-10)
	stepsPerUpdate int
	numHares       int
	numWolves      int
	numDeer        int
	groups         []deerGroup
	groupAlive     map[uint32]int
	nextGroupID    uint32
	nextAgentID    uint32
	player         ecs.Entity
	playerSpawned  bool
	playerAlive    bool

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Scratch buffers reused across ticks
	neighborBuf []systems.Neighbor
	sepBuf      []systems.FlockNeighbor
	alignBuf    []systems.FlockNeighbor
	cohBuf      []systems.FlockNeighbor
	preySnap    []bodySnap
	wolfSnap    []bodySnap
	bulletSnap  []bodySnap
	deadBuf     []ecs.Entity
}

// NewSimulation creates a simulation with default options.
func NewSimulation() *Simulation {
	return NewSimulationWithOptions(Options{})
}

// NewSimulationWithOptions creates a simulation. The field starts empty;
// populations fill over the first ticks at one spawn per species per tick.
func NewSimulationWithOptions(opts Options) *Simulation {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	s := &Simulation{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(seed)),
		fieldW:         cfg.Derived.FieldW32,
		fieldH:         cfg.Derived.FieldH32,
		dt:             cfg.Derived.DT32,
		speed:          1,
		stepsPerUpdate: stepsPerUpdate,
		groupAlive:     make(map[uint32]int),
		nextGroupID:    1,
		nextAgentID:    1,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}

	s.world = ecs.NewWorld()
	s.hareMap = ecs.NewMap6[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent, components.FleeBoost](&s.world)
	s.wolfMap = ecs.NewMap6[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent, components.Hunger](&s.world)
	s.deerMap = ecs.NewMap5[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent](&s.world)
	s.playerMap = ecs.NewMap4[components.Position, components.Physics, components.MovementSpeed, components.Agent](&s.world)
	s.bulletMap = ecs.NewMap4[components.Position, components.Physics, components.Agent, components.Projectile](&s.world)

	s.posMap = ecs.NewMap1[components.Position](&s.world)
	s.physMap = ecs.NewMap1[components.Physics](&s.world)
	s.behMap = ecs.NewMap1[components.Behavior](&s.world)
	s.speedMap = ecs.NewMap1[components.MovementSpeed](&s.world)
	s.agentMap = ecs.NewMap1[components.Agent](&s.world)
	s.hungerMap = ecs.NewMap1[components.Hunger](&s.world)
	s.boostMap = ecs.NewMap1[components.FleeBoost](&s.world)

	s.steerFilter = ecs.NewFilter5[components.Position, components.Physics, components.Behavior, components.MovementSpeed, components.Agent](&s.world)
	s.animalFilter = ecs.NewFilter4[components.Position, components.Physics, components.MovementSpeed, components.Agent](&s.world)
	s.bulletFilter = ecs.NewFilter3[components.Position, components.Physics, components.Projectile](&s.world)
	s.agentFilter = ecs.NewFilter3[components.Position, components.Physics, components.Agent](&s.world)

	s.grid = systems.NewSpatialGrid(s.fieldW, s.fieldH, cfg.Physics.GridCellSize)
	s.walls = fieldWalls(s.fieldW, s.fieldH)

	if opts.OutputDir != "" {
		output, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output directory", "dir", opts.OutputDir, "error", err)
		} else {
			s.output = output
			if err := output.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	return s
}

// fieldWalls returns the four border segments of a width x height field
// centered on the origin.
func fieldWalls(width, height float32) [4]Wall {
	hw, hh := width/2, height/2
	return [4]Wall{
		{A: vec.Vec2{X: hw, Y: hh}, B: vec.Vec2{X: hw, Y: -hh}},   // right
		{A: vec.Vec2{X: -hw, Y: -hh}, B: vec.Vec2{X: hw, Y: -hh}}, // bottom
		{A: vec.Vec2{X: -hw, Y: hh}, B: vec.Vec2{X: -hw, Y: -hh}}, // left
		{A: vec.Vec2{X: -hw, Y: hh}, B: vec.Vec2{X: hw, Y: hh}},   // top
	}
}

// now returns the simulation clock in seconds.
func (s *Simulation) now() float32 {
	return float32(s.tick) * s.dt
}

// allocID returns the next agent ID.
func (s *Simulation) allocID() uint32 {
	id := s.nextAgentID
	s.nextAgentID++
	return id
}

// displacement draws a wander angle offset from (-spread, spread).
func (s *Simulation) displacement(spread float32) float32 {
	return -spread + s.rng.Float32()*2*spread
}

// headingFromVel converts a velocity to a sprite heading. Sprites point up
// at zero rotation, so the angle is offset by a quarter turn.
func headingFromVel(v vec.Vec2) float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X))) - math.Pi/2
}

// Tick returns the number of completed simulation steps.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Hares returns the live hare count.
func (s *Simulation) Hares() int {
	return s.numHares
}

// Wolves returns the live wolf count.
func (s *Simulation) Wolves() int {
	return s.numWolves
}

// Deer returns the live deer count.
func (s *Simulation) Deer() int {
	return s.numDeer
}

// DeerGroups returns the number of groups with at least one live member.
func (s *Simulation) DeerGroups() int {
	return len(s.groupAlive)
}

// Paused reports whether stepping is suspended.
func (s *Simulation) Paused() bool {
	return s.paused
}

// SetPaused suspends or resumes stepping.
func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

// TogglePause flips the paused state.
func (s *Simulation) TogglePause() {
	s.paused = !s.paused
}

// Speed returns the simulation speed multiplier.
func (s *Simulation) Speed() int {
	return s.speed
}

// SetSpeed sets the simulation speed multiplier, clamped to 1-10.
func (s *Simulation) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	if speed > 10 {
		speed = 10
	}
	s.speed = speed
}

// PlayerAlive reports whether the player is on the field.
func (s *Simulation) PlayerAlive() bool {
	return s.playerAlive
}

// PlayerPos returns the player position, or a zero vector when the player
// is not on the field.
func (s *Simulation) PlayerPos() vec.Vec2 {
	if !s.playerAlive {
		return vec.Vec2{}
	}
	return s.posMap.Get(s.player).Vec()
}

// Walls returns the field border segments.
func (s *Simulation) Walls() [4]Wall {
	return s.walls
}

// FieldSize returns the field dimensions.
func (s *Simulation) FieldSize() (width, height float32) {
	return s.fieldW, s.fieldH
}

// PerfStats returns timing statistics over the rolling perf window.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// SetStatsCallback registers a callback invoked on every window flush.
func (s *Simulation) SetStatsCallback(cb func(telemetry.WindowStats)) {
	s.statsCallback = cb
}

// AgentView is one agent's render state.
type AgentView struct {
	Pos     vec.Vec2
	Heading float32
	Species components.Species
}

// Snapshot appends every agent's render state to dst and returns the
// updated slice. Reuse dst across frames to avoid allocations.
func (s *Simulation) Snapshot(dst []AgentView) []AgentView {
	query := s.agentFilter.Query()
	for query.Next() {
		pos, phys, agent := query.Get()
		dst = append(dst, AgentView{
			Pos:     pos.Vec(),
			Heading: phys.Heading,
			Species: agent.Species,
		})
	}
	return dst
}

// Close flushes and closes run outputs. The simulation must not be
// stepped afterwards.
func (s *Simulation) Close() {
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
