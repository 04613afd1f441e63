// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/meadow/vec"

// Species identifies what kind of entity an Agent is.
type Species uint8

const (
	SpeciesHare Species = iota
	SpeciesWolf
	SpeciesDeer
	SpeciesPlayer
	SpeciesBullet
)

// String returns a human-readable species name.
func (s Species) String() string {
	switch s {
	case SpeciesHare:
		return "hare"
	case SpeciesWolf:
		return "wolf"
	case SpeciesDeer:
		return "deer"
	case SpeciesPlayer:
		return "player"
	case SpeciesBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Tag is a capability bitmask on an Agent.
type Tag uint8

const (
	TagThreat Tag = 1 << iota // can be fled from
	TagPrey                   // can be pursued and eaten
	TagFatal                  // lethal on contact
)

// Has reports whether all bits of q are set.
func (t Tag) Has(q Tag) bool {
	return t&q == q
}

// Position is an entity's world position, origin at field center.
type Position struct {
	X, Y float32
}

// Vec returns the position as a vector.
func (p Position) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Physics holds per-tick movement state. Vel and Acc are displacements per
// tick, not per second; the integrator limits Vel to speed*dt.
type Physics struct {
	Vel         vec.Vec2
	Acc         vec.Vec2
	WanderTheta float32 // wander circle phase
	Heading     float32 // facing angle, radians
}

// Behavior is the transient steering accumulator. Behavior systems add
// weighted forces into Force during the tick; the integrator consumes it
// exactly once and zeroes it, so it is empty between ticks.
type Behavior struct {
	Force vec.Vec2
}

// MovementSpeed is the agent's current max speed in field units per second.
// The flee boost raises it above the configured baseline; decay restores it.
type MovementSpeed struct {
	Value float32
}

// Agent carries identity and capability data shared by everything the
// life-cycle systems touch.
type Agent struct {
	ID      uint32
	Species Species
	Tags    Tag
	Group   uint32 // flock group id, 0 = ungrouped
}

// Hunger is the predator starvation clock. LastAte == 0 means the clock has
// not started; the starvation system initializes it lazily on first pass.
type Hunger struct {
	LastAte     float32
	MaxDuration float32
}

// FleeBoost records when a prey agent last triggered its flee response, so
// the speed boost can decay back to baseline.
type FleeBoost struct {
	FledAt float32
}

// Projectile marks bullets and records when they were fired.
type Projectile struct {
	FiredAt float32
}
