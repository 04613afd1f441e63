package sim

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/vec"
)

// bodySnap is an agent's collision box captured before resolution, so kill
// checks see one consistent state regardless of removal order.
type bodySnap struct {
	e       ecs.Entity
	pos     vec.Vec2
	w, h    float32
	species components.Species
}

// flyBullets advances live bullets by their velocity and despawns the ones
// past their flight time. Runs every tick regardless of population gates.
func (s *Simulation) flyBullets() {
	now := s.now()

	s.deadBuf = s.deadBuf[:0]
	query := s.bulletFilter.Query()
	for query.Next() {
		pos, phys, proj := query.Get()
		if now < proj.FiredAt+s.cfg.Bullet.MaxDuration {
			pos.X += phys.Vel.X
			pos.Y += phys.Vel.Y
		} else {
			s.deadBuf = append(s.deadBuf, query.Entity())
		}
	}
	for _, e := range s.deadBuf {
		s.world.RemoveEntity(e)
		s.collector.RecordBulletExpiry()
	}
}

// bodySize returns a species' collision box.
func (s *Simulation) bodySize(species components.Species) (w, h float32) {
	switch species {
	case components.SpeciesHare:
		return s.cfg.Hare.Width, s.cfg.Hare.Height
	case components.SpeciesWolf:
		return s.cfg.Wolf.Width, s.cfg.Wolf.Height
	case components.SpeciesDeer:
		return s.cfg.Deer.Width, s.cfg.Deer.Height
	case components.SpeciesPlayer:
		return s.cfg.Player.Width, s.cfg.Player.Height
	default:
		return s.cfg.Bullet.Width, s.cfg.Bullet.Height
	}
}

// resolveCollisions applies the kill rules from snapshots of this tick's
// positions. A wolf touching any prey eats it and resets its hunger clock;
// the first overlapping wolf wins. A bullet touching a hare or deer kills
// it and is consumed; bullets pass through wolves and never harm the
// player. Every overlapping bullet is consumed even when the prey is
// already down. Kill checks run every tick regardless of population gates.
func (s *Simulation) resolveCollisions() {
	now := s.now()

	s.wolfSnap = s.wolfSnap[:0]
	s.preySnap = s.preySnap[:0]
	s.bulletSnap = s.bulletSnap[:0]

	query := s.animalFilter.Query()
	for query.Next() {
		pos, _, _, agent := query.Get()
		w, h := s.bodySize(agent.Species)
		snap := bodySnap{e: query.Entity(), pos: pos.Vec(), w: w, h: h, species: agent.Species}
		switch {
		case agent.Species == components.SpeciesWolf:
			s.wolfSnap = append(s.wolfSnap, snap)
		case agent.Tags.Has(components.TagPrey):
			s.preySnap = append(s.preySnap, snap)
		}
	}

	bq := s.bulletFilter.Query()
	for bq.Next() {
		pos, _, _ := bq.Get()
		s.bulletSnap = append(s.bulletSnap, bodySnap{
			e: bq.Entity(), pos: pos.Vec(),
			w: s.cfg.Bullet.Width, h: s.cfg.Bullet.Height,
			species: components.SpeciesBullet,
		})
	}

	// Kills are recorded once per entity but applied after all checks, so
	// one tick's overlaps all resolve against the same state. The ordered
	// buffer keeps removal deterministic.
	removed := make(map[ecs.Entity]struct{}, 8)
	s.deadBuf = s.deadBuf[:0]
	kill := func(e ecs.Entity) {
		if _, ok := removed[e]; ok {
			return
		}
		removed[e] = struct{}{}
		s.deadBuf = append(s.deadBuf, e)
	}

	for i := range s.preySnap {
		prey := &s.preySnap[i]

		for j := range s.wolfSnap {
			wolf := &s.wolfSnap[j]
			if systems.Overlaps(prey.pos, prey.w, prey.h, wolf.pos, wolf.w, wolf.h) {
				kill(prey.e)
				s.hungerMap.Get(wolf.e).LastAte = now
				s.collector.RecordPredationKill()
				slog.Debug("predation_kill", "prey", prey.species.String(), "tick", s.tick)
				break
			}
		}

		if prey.species == components.SpeciesPlayer {
			continue
		}
		for j := range s.bulletSnap {
			bullet := &s.bulletSnap[j]
			if systems.Overlaps(prey.pos, prey.w, prey.h, bullet.pos, bullet.w, bullet.h) {
				kill(prey.e)
				kill(bullet.e)
				s.collector.RecordBulletKill()
				slog.Debug("bullet_kill", "prey", prey.species.String(), "tick", s.tick)
			}
		}
	}

	for _, e := range s.deadBuf {
		agent := s.agentMap.Get(e)
		switch agent.Species {
		case components.SpeciesHare:
			s.numHares--
		case components.SpeciesDeer:
			s.numDeer--
			s.groupAlive[agent.Group]--
			if s.groupAlive[agent.Group] <= 0 {
				delete(s.groupAlive, agent.Group)
				slog.Info("herd_wiped_out", "group", agent.Group, "tick", s.tick)
			}
			if s.numDeer == 0 {
				slog.Info("deer_extinct", "tick", s.tick)
			}
		case components.SpeciesPlayer:
			s.playerAlive = false
			slog.Info("player_eaten", "tick", s.tick)
		}
		s.world.RemoveEntity(e)
	}
}

// updateStarvation despawns wolves that have gone too long without a kill.
// A fresh wolf's clock starts on its first pass here. Like the other wolf
// systems this is inert while the population is below target, so hunger
// clocks keep running but nobody starves during a refill.
func (s *Simulation) updateStarvation() {
	if s.numWolves < s.cfg.Wolf.MaxNumber {
		return
	}
	now := s.now()

	s.deadBuf = s.deadBuf[:0]
	query := s.steerFilter.Query()
	for query.Next() {
		_, _, _, _, agent := query.Get()
		if agent.Species != components.SpeciesWolf {
			continue
		}
		hunger := s.hungerMap.Get(query.Entity())
		if hunger.LastAte == 0 {
			hunger.LastAte = now
		}
		if now > hunger.LastAte+hunger.MaxDuration {
			s.deadBuf = append(s.deadBuf, query.Entity())
		}
	}
	for _, e := range s.deadBuf {
		s.world.RemoveEntity(e)
		s.numWolves--
		s.collector.RecordStarvation()
		slog.Debug("starvation", "tick", s.tick)
	}
}
