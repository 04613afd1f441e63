package sim

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/vec"
)

// updateSpatialGrid rebuilds the neighbor grid from animal positions.
// Bullets are not steering targets and stay out of the grid.
func (s *Simulation) updateSpatialGrid() {
	s.grid.Clear()
	query := s.animalFilter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// wallAvoidance sums flee forces away from projected wall crossings. The
// probe is the agent's velocity extended from its position; crossings
// further than wallProbeRange ahead are ignored.
func (s *Simulation) wallAvoidance(pos, vel vec.Vec2, maxSpeed float32) vec.Vec2 {
	var force vec.Vec2
	probeEnd := pos.Add(vel)
	for _, w := range s.walls {
		hit, ok := vec.SegmentIntersection(w.A, w.B, pos, probeEnd)
		if !ok || vec.Dist(pos, hit) > wallProbeRange {
			continue
		}
		force = force.Add(systems.Flee(pos, vel, hit, maxSpeed))
	}
	return force
}

// hareForces accumulates wall avoidance, flee, and wander forces for every
// hare. Inert until the hare population is at its target.
func (s *Simulation) hareForces() {
	hareCfg := &s.cfg.Hare
	if s.numHares < hareCfg.MaxNumber {
		return
	}
	now := s.now()

	query := s.steerFilter.Query()
	for query.Next() {
		pos, phys, beh, spd, agent := query.Get()
		if agent.Species != components.SpeciesHare {
			continue
		}
		e := query.Entity()
		p := pos.Vec()

		// Wall avoidance reads the speed before this tick's boost decay.
		walls := s.wallAvoidance(p, phys.Vel, spd.Value*s.dt)
		beh.Force = beh.Force.Add(walls.Scale(hareCfg.Walls.Weight))

		boost := s.boostMap.Get(e)
		if now >= boost.FledAt+hareCfg.MaxFleeTime {
			boost.FledAt = 0
			spd.Value = hareCfg.MovementSpeed
		}

		// Anything tagged a threat spooks a hare, other hares included.
		s.neighborBuf = s.grid.QueryRadiusInto(s.neighborBuf[:0], p.X, p.Y, fleeRadius, e, &s.posMap)
		for _, n := range s.neighborBuf {
			if !s.agentMap.Get(n.E).Tags.Has(components.TagThreat) {
				continue
			}
			if n.DistSq >= fleeRadius*fleeRadius {
				continue
			}
			spd.Value = hareCfg.MovementSpeed + fleeSpeedBonus
			boost.FledAt = now
			threat := vec.Vec2{X: p.X + n.DX, Y: p.Y + n.DY}
			force := systems.Flee(p, phys.Vel, threat, spd.Value*s.dt)
			beh.Force = beh.Force.Add(force.Scale(hareCfg.Flee.Weight))
		}

		force := systems.Wander(p, phys.Vel, phys.WanderTheta, hareCfg.Wander.Radius, hareCfg.Wander.Distance, hareCfg.Wander.MaxForce)
		beh.Force = beh.Force.Add(force.Scale(hareCfg.Wander.Weight))
		phys.WanderTheta += s.displacement(hareCfg.Wander.DisplaceRange)
	}
}

// wolfForces accumulates wander, wall avoidance, and pursuit forces for
// every wolf. Inert until the wolf population is at its target.
func (s *Simulation) wolfForces() {
	wolfCfg := &s.cfg.Wolf
	if s.numWolves < wolfCfg.MaxNumber {
		return
	}

	query := s.steerFilter.Query()
	for query.Next() {
		pos, phys, beh, spd, agent := query.Get()
		if agent.Species != components.SpeciesWolf {
			continue
		}
		e := query.Entity()
		p := pos.Vec()

		force := systems.Wander(p, phys.Vel, phys.WanderTheta, wolfCfg.Wander.Radius, wolfCfg.Wander.Distance, wolfCfg.Wander.MaxForce)
		beh.Force = beh.Force.Add(force.Scale(wolfCfg.Wander.Weight))
		phys.WanderTheta += s.displacement(wolfCfg.Wander.DisplaceRange)

		walls := s.wallAvoidance(p, phys.Vel, spd.Value*s.dt)
		beh.Force = beh.Force.Add(walls.Scale(wolfCfg.Walls.Weight))

		// Chase anything tagged prey, leading the target by its velocity.
		s.neighborBuf = s.grid.QueryRadiusInto(s.neighborBuf[:0], p.X, p.Y, pursueRadius, e, &s.posMap)
		for _, n := range s.neighborBuf {
			if !s.agentMap.Get(n.E).Tags.Has(components.TagPrey) {
				continue
			}
			preyPos := vec.Vec2{X: p.X + n.DX, Y: p.Y + n.DY}
			preyVel := s.physMap.Get(n.E).Vel
			pursuit := systems.Pursue(p, phys.Vel, preyPos, preyVel, spd.Value*s.dt)
			beh.Force = beh.Force.Add(pursuit.Scale(wolfCfg.Pursue.Weight))
		}
	}
}

// deerForces accumulates wander, wall avoidance, flee, evade, and herd
// forces for every deer. Inert until every herd has spawned.
func (s *Simulation) deerForces() {
	deerCfg := &s.cfg.Deer
	if len(s.groups) < deerCfg.GroupNumber {
		return
	}

	sepR := deerCfg.Separation.Radius
	alignR := deerCfg.Alignment.Radius
	cohR := deerCfg.Cohesion.Radius
	flockR := max(sepR, alignR, cohR)

	query := s.steerFilter.Query()
	for query.Next() {
		pos, phys, beh, spd, agent := query.Get()
		if agent.Species != components.SpeciesDeer {
			continue
		}
		e := query.Entity()
		p := pos.Vec()
		maxSpeed := spd.Value * s.dt

		force := systems.Wander(p, phys.Vel, phys.WanderTheta, deerCfg.Wander.Radius, deerCfg.Wander.Distance, deerCfg.Wander.MaxForce)
		beh.Force = beh.Force.Add(force.Scale(deerCfg.Wander.Weight))
		phys.WanderTheta += s.displacement(deerCfg.Wander.DisplaceRange)

		walls := s.wallAvoidance(p, phys.Vel, maxSpeed)
		beh.Force = beh.Force.Add(walls.Scale(deerCfg.Walls.Weight))

		// Wolves and the player spook deer; hares do not.
		s.neighborBuf = s.grid.QueryRadiusInto(s.neighborBuf[:0], p.X, p.Y, fleeRadius, e, &s.posMap)
		for _, n := range s.neighborBuf {
			other := s.agentMap.Get(n.E)
			if other.Species == components.SpeciesHare || !other.Tags.Has(components.TagThreat) {
				continue
			}
			if n.DistSq >= fleeRadius*fleeRadius {
				continue
			}
			threat := vec.Vec2{X: p.X + n.DX, Y: p.Y + n.DY}
			fleeing := systems.Flee(p, phys.Vel, threat, maxSpeed)
			beh.Force = beh.Force.Add(fleeing.Scale(deerCfg.Flee.Weight))
		}

		// Evade leads wolves by their velocity out to a longer range than
		// plain flee covers.
		s.neighborBuf = s.grid.QueryRadiusInto(s.neighborBuf[:0], p.X, p.Y, evadeRadius, e, &s.posMap)
		for _, n := range s.neighborBuf {
			if s.agentMap.Get(n.E).Species != components.SpeciesWolf {
				continue
			}
			wolfPos := vec.Vec2{X: p.X + n.DX, Y: p.Y + n.DY}
			wolfVel := s.physMap.Get(n.E).Vel
			evasion := systems.Evade(p, phys.Vel, wolfPos, wolfVel, maxSpeed)
			beh.Force = beh.Force.Add(evasion.Scale(deerCfg.Evade.Weight))
		}

		// Herd rules share one neighbor sweep; each rule applies its own
		// perception radius.
		s.sepBuf, s.alignBuf, s.cohBuf = s.sepBuf[:0], s.alignBuf[:0], s.cohBuf[:0]
		s.neighborBuf = s.grid.QueryRadiusInto(s.neighborBuf[:0], p.X, p.Y, flockR, e, &s.posMap)
		for _, n := range s.neighborBuf {
			other := s.agentMap.Get(n.E)
			if other.Species != components.SpeciesDeer || other.Group != agent.Group {
				continue
			}
			fn := systems.FlockNeighbor{
				Pos:    vec.Vec2{X: p.X + n.DX, Y: p.Y + n.DY},
				Vel:    s.physMap.Get(n.E).Vel,
				DistSq: n.DistSq,
			}
			if n.DistSq < sepR*sepR {
				s.sepBuf = append(s.sepBuf, fn)
			}
			if n.DistSq < alignR*alignR {
				s.alignBuf = append(s.alignBuf, fn)
			}
			if n.DistSq < cohR*cohR {
				s.cohBuf = append(s.cohBuf, fn)
			}
		}
		beh.Force = beh.Force.Add(systems.Separation(p, phys.Vel, s.sepBuf, spd.Value, deerCfg.Separation.MaxForce))
		beh.Force = beh.Force.Add(systems.Alignment(phys.Vel, s.alignBuf, spd.Value, deerCfg.Alignment.MaxForce))
		beh.Force = beh.Force.Add(systems.Cohesion(p, phys.Vel, s.cohBuf, spd.Value, deerCfg.Cohesion.MaxForce))
	}
}
