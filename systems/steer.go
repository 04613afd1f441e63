// Package systems provides the steering, flocking, collision and spatial
// helpers the simulation pipeline is built from. Everything here is pure:
// world access and force accumulation happen in the sim package.
package systems

import (
	"math"

	"github.com/pthm-cable/meadow/vec"
)

// Seek returns a steering force toward target: the desired velocity at
// maxSpeed minus the current velocity, limited to maxSpeed.
func Seek(pos, vel, target vec.Vec2, maxSpeed float32) vec.Vec2 {
	desired := vec.SetMag(target.Sub(pos), maxSpeed)
	return vec.Limit(desired.Sub(vel), maxSpeed)
}

// Flee returns a steering force directly away from threat.
func Flee(pos, vel, threat vec.Vec2, maxSpeed float32) vec.Vec2 {
	desired := vec.SetMag(pos.Sub(threat), maxSpeed)
	return vec.Limit(desired.Sub(vel), maxSpeed)
}

// Wander returns a force toward a point on a circle projected ahead of the
// agent along its velocity. theta is the agent's persistent wander phase,
// measured relative to the current heading; the caller advances it by a
// small random delta each tick so consecutive forces stay correlated.
func Wander(pos, vel vec.Vec2, theta, radius, distance, maxForce float32) vec.Vec2 {
	center := pos.Add(vec.SetMag(vel, distance))
	a := float64(theta) + math.Atan2(float64(vel.Y), float64(vel.X))
	point := center.Add(vec.Vec2{
		X: radius * float32(math.Cos(a)),
		Y: radius * float32(math.Sin(a)),
	})
	return vec.SetMag(point.Sub(pos), maxForce)
}

// Pursue seeks the target's extrapolated position: one linear step of
// Dist(pos, target)/maxSpeed ticks along the target's current velocity.
func Pursue(pos, vel, targetPos, targetVel vec.Vec2, maxSpeed float32) vec.Vec2 {
	t := vec.Dist(pos, targetPos) / maxSpeed
	future := targetPos.Add(targetVel.Scale(t))
	return Seek(pos, vel, future, maxSpeed)
}

// Evade flees the target's extrapolated position, mirroring Pursue.
func Evade(pos, vel, targetPos, targetVel vec.Vec2, maxSpeed float32) vec.Vec2 {
	t := vec.Dist(pos, targetPos) / maxSpeed
	future := targetPos.Add(targetVel.Scale(t))
	return Flee(pos, vel, future, maxSpeed)
}
