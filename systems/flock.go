package systems

import "github.com/pthm-cable/meadow/vec"

// FlockNeighbor is one nearby flock mate as seen from the querying agent.
type FlockNeighbor struct {
	Pos    vec.Vec2
	Vel    vec.Vec2
	DistSq float32
}

// Separation pushes away from nearby flock mates, weighting each offset by
// the inverse square of its distance. Mates at the exact same position are
// skipped. Zero usable neighbors produce a zero force.
func Separation(pos, vel vec.Vec2, neighbors []FlockNeighbor, maxSpeed, maxForce float32) vec.Vec2 {
	var sum vec.Vec2
	count := 0
	for _, n := range neighbors {
		if n.DistSq == 0 {
			continue
		}
		sum = sum.Add(pos.Sub(n.Pos).Scale(1 / n.DistSq))
		count++
	}
	if count == 0 {
		return vec.Vec2{}
	}
	avg := sum.Scale(1 / float32(count))
	steer := vec.SetMag(avg, maxSpeed).Sub(vel)
	return vec.Limit(steer, maxForce)
}

// Alignment steers toward the average velocity of nearby flock mates.
// Zero neighbors produce a zero force.
func Alignment(vel vec.Vec2, neighbors []FlockNeighbor, maxSpeed, maxForce float32) vec.Vec2 {
	if len(neighbors) == 0 {
		return vec.Vec2{}
	}
	var sum vec.Vec2
	for _, n := range neighbors {
		sum = sum.Add(n.Vel)
	}
	avg := sum.Scale(1 / float32(len(neighbors)))
	steer := vec.SetMag(avg, maxSpeed).Sub(vel)
	return vec.Limit(steer, maxForce)
}

// Cohesion steers toward the centroid of nearby flock mates.
// Zero neighbors produce a zero force.
func Cohesion(pos, vel vec.Vec2, neighbors []FlockNeighbor, maxSpeed, maxForce float32) vec.Vec2 {
	if len(neighbors) == 0 {
		return vec.Vec2{}
	}
	var sum vec.Vec2
	for _, n := range neighbors {
		sum = sum.Add(n.Pos)
	}
	centroid := sum.Scale(1 / float32(len(neighbors)))
	steer := vec.SetMag(centroid.Sub(pos), maxSpeed).Sub(vel)
	return vec.Limit(steer, maxForce)
}
