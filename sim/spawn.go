package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/vec"
)

// newAgentPhysics is the spawn state shared by all animals: a slight
// downward drift and a wander angle pointing along it.
func newAgentPhysics() components.Physics {
	return components.Physics{
		Vel:         vec.Vec2{Y: -2},
		WanderTheta: math.Pi / 2,
	}
}

// spawnHares tops the hare population up by at most one animal per tick.
func (s *Simulation) spawnHares() {
	if s.numHares >= s.cfg.Hare.MaxNumber {
		return
	}
	wSpan := s.fieldW/2 - 30
	hSpan := s.fieldH/2 - 30
	x := -wSpan + s.rng.Float32()*2*wSpan
	y := -hSpan + s.rng.Float32()*2*hSpan
	s.newHare(x, y)
}

// newHare spawns a hare. Hares are prey to wolves and the player but also
// panic each other, so they carry the threat tag too.
func (s *Simulation) newHare(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	phys := newAgentPhysics()
	beh := components.Behavior{}
	spd := components.MovementSpeed{Value: s.cfg.Hare.MovementSpeed}
	agent := components.Agent{
		ID:      s.allocID(),
		Species: components.SpeciesHare,
		Tags:    components.TagThreat | components.TagPrey,
	}
	boost := components.FleeBoost{}

	e := s.hareMap.NewEntity(&pos, &phys, &beh, &spd, &agent, &boost)
	s.numHares++
	s.collector.RecordSpawn(components.SpeciesHare)
	return e
}

// spawnWolves tops the wolf population up by at most one animal per tick.
func (s *Simulation) spawnWolves() {
	if s.numWolves >= s.cfg.Wolf.MaxNumber {
		return
	}
	wSpan := s.fieldW/2 - 30
	hSpan := s.fieldH/2 - 30
	x := -wSpan + s.rng.Float32()*2*wSpan
	y := -hSpan + s.rng.Float32()*2*hSpan
	s.newWolf(x, y)
}

// newWolf spawns a wolf with an unset hunger clock; the clock starts on
// the first starvation pass.
func (s *Simulation) newWolf(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	phys := newAgentPhysics()
	beh := components.Behavior{}
	spd := components.MovementSpeed{Value: s.cfg.Wolf.MovementSpeed}
	agent := components.Agent{
		ID:      s.allocID(),
		Species: components.SpeciesWolf,
		Tags:    components.TagThreat,
	}
	hunger := components.Hunger{MaxDuration: s.cfg.Wolf.MaxHungerTime}

	e := s.wolfMap.NewEntity(&pos, &phys, &beh, &spd, &agent, &hunger)
	s.numWolves++
	s.collector.RecordSpawn(components.SpeciesWolf)
	return e
}

// spawnDeerGroups seeds at most one herd per tick until the configured
// group count has spawned. Spawned groups are counted forever, so herds
// never respawn once every member is dead.
func (s *Simulation) spawnDeerGroups() {
	if len(s.groups) >= s.cfg.Deer.GroupNumber {
		return
	}
	wSpan := s.fieldW/2 - 60
	hSpan := s.fieldH/2 - 60
	x := -wSpan + s.rng.Float32()*2*wSpan
	y := -hSpan + s.rng.Float32()*2*hSpan
	size := 3 + s.rng.Intn(s.cfg.Deer.MaxNumber-3)

	id := s.nextGroupID
	s.nextGroupID++
	s.groups = append(s.groups, deerGroup{id: id, size: size})

	for i := 0; i < size; i++ {
		ox := -30 + s.rng.Float32()*60
		oy := -30 + s.rng.Float32()*60
		s.newDeer(x+ox, y+oy, id)
	}
}

// newDeer spawns one herd member.
func (s *Simulation) newDeer(x, y float32, group uint32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	phys := newAgentPhysics()
	beh := components.Behavior{}
	spd := components.MovementSpeed{Value: s.cfg.Deer.MovementSpeed}
	agent := components.Agent{
		ID:      s.allocID(),
		Species: components.SpeciesDeer,
		Tags:    components.TagPrey,
		Group:   group,
	}

	e := s.deerMap.NewEntity(&pos, &phys, &beh, &spd, &agent)
	s.numDeer++
	s.groupAlive[group]++
	s.collector.RecordSpawn(components.SpeciesDeer)
	return e
}

// SpawnPlayer places the player at the field center. It does nothing when
// a player is already on the field; a dead player does not come back.
func (s *Simulation) SpawnPlayer() ecs.Entity {
	if s.playerSpawned {
		return s.player
	}
	pos := components.Position{}
	phys := components.Physics{Vel: vec.Vec2{Y: -2}}
	spd := components.MovementSpeed{Value: s.cfg.Player.MovementSpeed}
	agent := components.Agent{
		ID:      s.allocID(),
		Species: components.SpeciesPlayer,
		Tags:    components.TagThreat | components.TagPrey,
	}

	s.player = s.playerMap.NewEntity(&pos, &phys, &spd, &agent)
	s.playerSpawned = true
	s.playerAlive = true
	return s.player
}

// FireBullet spawns a projectile at the player's position, flying toward
// the target point at the configured bullet speed. A shot aimed exactly at
// the player's own position produces a stationary bullet that expires in
// place.
func (s *Simulation) FireBullet(target vec.Vec2) {
	if !s.playerAlive {
		return
	}
	ppos := s.posMap.Get(s.player)

	vel := vec.SetMag(vec.Vec2{X: target.X - ppos.X, Y: target.Y - ppos.Y}, s.cfg.Bullet.Speed*s.dt)
	pos := components.Position{X: ppos.X, Y: ppos.Y}
	phys := components.Physics{Vel: vel, Heading: headingFromVel(vel)}
	agent := components.Agent{
		ID:      s.allocID(),
		Species: components.SpeciesBullet,
		Tags:    components.TagFatal,
	}
	proj := components.Projectile{FiredAt: s.now()}

	s.bulletMap.NewEntity(&pos, &phys, &agent, &proj)
	s.collector.RecordShotFired()
}
