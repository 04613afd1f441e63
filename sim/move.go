package sim

import (
	"math"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/vec"
)

// integrate consumes each animal's accumulated force: acceleration picks it
// up, velocity integrates and is capped at the species speed per tick, and
// position moves by the velocity. Force and acceleration are zeroed so
// nothing carries into the next tick. Each species holds still until its
// population gate opens.
func (s *Simulation) integrate() {
	hareGate := s.numHares >= s.cfg.Hare.MaxNumber
	wolfGate := s.numWolves >= s.cfg.Wolf.MaxNumber
	deerGate := len(s.groups) >= s.cfg.Deer.GroupNumber

	query := s.steerFilter.Query()
	for query.Next() {
		pos, phys, beh, spd, agent := query.Get()
		switch agent.Species {
		case components.SpeciesHare:
			if !hareGate {
				continue
			}
		case components.SpeciesWolf:
			if !wolfGate {
				continue
			}
		case components.SpeciesDeer:
			if !deerGate {
				continue
			}
		}

		phys.Acc = phys.Acc.Add(beh.Force)
		phys.Vel = vec.Limit(phys.Vel.Add(phys.Acc), spd.Value*s.dt)
		pos.X += phys.Vel.X
		pos.Y += phys.Vel.Y
		phys.Acc = vec.Vec2{}
		beh.Force = vec.Vec2{}
		phys.Heading = headingFromVel(phys.Vel)
	}
}

// MovePlayer applies one tick of directional input. The direction is
// normalized so diagonal input is no faster than a single axis, and the
// player is nudged back one unit per tick while straddling the field
// border.
func (s *Simulation) MovePlayer(dir vec.Vec2) {
	if !s.playerAlive {
		return
	}
	pos := s.posMap.Get(s.player)
	phys := s.physMap.Get(s.player)
	spd := s.speedMap.Get(s.player)

	phys.Vel = vec.SetMag(dir, spd.Value*s.dt)
	pos.X += phys.Vel.X
	pos.Y += phys.Vel.Y

	p := pos.Vec()
	side, hit := systems.Collide(p, s.cfg.Player.Width, s.cfg.Player.Height, vec.Vec2{}, s.fieldW, s.fieldH)
	if !hit {
		return
	}
	switch side {
	case systems.SideTop:
		pos.Y -= 1
	case systems.SideRight:
		pos.X -= 1
	case systems.SideBottom:
		pos.Y += 1
	case systems.SideLeft:
		pos.X += 1
	}
}

// AimPlayer turns the player to face the target point.
func (s *Simulation) AimPlayer(target vec.Vec2) {
	if !s.playerAlive {
		return
	}
	pos := s.posMap.Get(s.player)
	phys := s.physMap.Get(s.player)
	phys.Heading = float32(math.Atan2(float64(pos.Y-target.Y), float64(pos.X-target.X))) + math.Pi/2
}
