package sim

import (
	"log/slog"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/telemetry"
)

// Step advances the simulation one tick. Spawning runs first so a refilled
// population steers the same tick; forces are integrated before any kill
// check so collisions see this tick's positions.
func (s *Simulation) Step() {
	s.perf.StartTick()

	// 1. Population upkeep
	s.perf.StartPhase(telemetry.PhaseSpawning)
	s.spawnHares()
	s.spawnWolves()
	s.spawnDeerGroups()

	// 2. Neighbor grid
	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.updateSpatialGrid()

	// 3. Steering forces
	s.perf.StartPhase(telemetry.PhaseSteering)
	s.hareForces()
	s.wolfForces()
	s.deerForces()

	// 4. Movement
	s.perf.StartPhase(telemetry.PhaseIntegrate)
	s.integrate()

	// 5. Bullet flight
	s.perf.StartPhase(telemetry.PhaseProjectiles)
	s.flyBullets()

	// 6. Kills
	s.perf.StartPhase(telemetry.PhaseCollisions)
	s.resolveCollisions()

	// 7. Starvation
	s.perf.StartPhase(telemetry.PhaseStarvation)
	s.updateStarvation()

	// 8. Window stats
	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
	s.tick++
}

// Update advances the simulation by the speed multiplier, unless paused.
func (s *Simulation) Update() {
	if s.paused {
		return
	}
	for i := 0; i < s.speed; i++ {
		s.Step()
	}
}

// UpdateHeadless advances the simulation by the configured steps per
// update. Pause and speed do not apply in headless runs.
func (s *Simulation) UpdateHeadless() {
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step()
	}
}

// RecordFrame marks a rendered frame for FPS tracking.
func (s *Simulation) RecordFrame() {
	s.perf.RecordFrame()
}

// flushTelemetry emits window stats once per collector window.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	pops, hareSpeeds, wolfSpeeds, deerSpeeds := s.samplePopulations()
	stats := s.collector.Flush(s.tick, pops, hareSpeeds, wolfSpeeds, deerSpeeds)
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if s.output != nil {
		if err := s.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}

// samplePopulations snapshots populations and per-species speeds for a
// window flush. Speeds are reported in field units per second.
func (s *Simulation) samplePopulations() (telemetry.Populations, []float64, []float64, []float64) {
	pops := telemetry.Populations{
		Hares:      s.numHares,
		Wolves:     s.numWolves,
		Deer:       s.numDeer,
		DeerGroups: len(s.groupAlive),
	}

	hareSpeeds := make([]float64, 0, s.numHares)
	wolfSpeeds := make([]float64, 0, s.numWolves)
	deerSpeeds := make([]float64, 0, s.numDeer)

	query := s.steerFilter.Query()
	for query.Next() {
		_, phys, _, _, agent := query.Get()
		speed := float64(phys.Vel.Len() / s.dt)
		switch agent.Species {
		case components.SpeciesHare:
			hareSpeeds = append(hareSpeeds, speed)
		case components.SpeciesWolf:
			wolfSpeeds = append(wolfSpeeds, speed)
		case components.SpeciesDeer:
			deerSpeeds = append(deerSpeeds, speed)
		}
	}
	return pops, hareSpeeds, wolfSpeeds, deerSpeeds
}
