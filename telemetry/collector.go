// Package telemetry tracks populations, hunt outcomes, and run output.
package telemetry

import "github.com/pthm-cable/meadow/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	hareSpawns     int
	wolfSpawns     int
	deerSpawns     int
	predationKills int
	bulletKills    int
	starvations    int
	shotsFired     int
	bulletExpiries int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordSpawn records a spawn of the given species.
func (c *Collector) RecordSpawn(species components.Species) {
	switch species {
	case components.SpeciesHare:
		c.hareSpawns++
	case components.SpeciesWolf:
		c.wolfSpawns++
	case components.SpeciesDeer:
		c.deerSpawns++
	}
}

// RecordPredationKill records a wolf catching prey.
func (c *Collector) RecordPredationKill() {
	c.predationKills++
}

// RecordBulletKill records a bullet hitting prey.
func (c *Collector) RecordBulletKill() {
	c.bulletKills++
}

// RecordStarvation records a wolf dying of hunger.
func (c *Collector) RecordStarvation() {
	c.starvations++
}

// RecordShotFired records the player firing a bullet.
func (c *Collector) RecordShotFired() {
	c.shotsFired++
}

// RecordBulletExpiry records a bullet timing out without a hit.
func (c *Collector) RecordBulletExpiry() {
	c.bulletExpiries++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Populations holds current live counts per species at window end.
type Populations struct {
	Hares      int
	Wolves     int
	Deer       int
	DeerGroups int
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller must provide:
// - currentTick: the current simulation tick
// - pops: current population counts
// - hareSpeeds, wolfSpeeds, deerSpeeds: per-agent speeds for distribution stats
func (c *Collector) Flush(
	currentTick int32,
	pops Populations,
	hareSpeeds, wolfSpeeds, deerSpeeds []float64,
) WindowStats {
	// Shot accuracy over the window
	var hitRate float64
	if c.shotsFired > 0 {
		hitRate = float64(c.bulletKills) / float64(c.shotsFired)
	}

	hareMean, hareStd := ComputeSpeedStats(hareSpeeds)
	wolfMean, wolfStd := ComputeSpeedStats(wolfSpeeds)
	deerMean, deerStd := ComputeSpeedStats(deerSpeeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		HareCount:      pops.Hares,
		WolfCount:      pops.Wolves,
		DeerCount:      pops.Deer,
		DeerGroupCount: pops.DeerGroups,

		HareSpawns: c.hareSpawns,
		WolfSpawns: c.wolfSpawns,
		DeerSpawns: c.deerSpawns,

		PredationKills: c.predationKills,
		BulletKills:    c.bulletKills,
		Starvations:    c.starvations,
		ShotsFired:     c.shotsFired,
		BulletExpiries: c.bulletExpiries,
		HitRate:        hitRate,

		HareSpeedMean: hareMean,
		HareSpeedStd:  hareStd,
		WolfSpeedMean: wolfMean,
		WolfSpeedStd:  wolfStd,
		DeerSpeedMean: deerMean,
		DeerSpeedStd:  deerStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.hareSpawns = 0
	c.wolfSpawns = 0
	c.deerSpawns = 0
	c.predationKills = 0
	c.bulletKills = 0
	c.starvations = 0
	c.shotsFired = 0
	c.bulletExpiries = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
