package game

import (
	"github.com/plus3/keepalive/ecs"
	"go.uber.org/zap"
)

type bulletView struct {
	Id ecs.EntityId
	*Position
	*Velocity
	*Bullet
	*BulletState
}

// BulletFiringSystem launches ready bullets from the player toward the aim
// point while the fire symbol is held and the cooldown has elapsed.
type BulletFiringSystem struct {
	Players ecs.Query[struct {
		*Position
		*Player
	}]
	Bullets  ecs.Query[bulletView]
	Input    ecs.Singleton[InputState]
	Clock    ecs.Singleton[FrameClock]
	Cooldown ecs.Singleton[FireCooldown]
	Tuning   ecs.Singleton[Config]

	log *zap.Logger
}

func (s *BulletFiringSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get().Input
	now := s.Clock.Get().Now
	cooldown := s.Cooldown.Get()
	if !in.Has(SymbolFire) || !cooldown.Ready(now) {
		return
	}

	_, player, ok := s.Players.First()
	if !ok {
		return
	}
	origin := player.Position.Vec()
	dir, ok := unit(in.Target.Vec().Sub(origin))
	if !ok {
		return
	}

	cfg := s.Tuning.Get().Bullets
	fired := 0
	for bullet := range s.Bullets.Values() {
		if !bullet.BulletState.Transition(BulletFiring) {
			continue
		}
		bullet.Position.Set(origin)
		bullet.Velocity.Set(dir.Mul(cfg.Speed))
		fired++

		s.log.Debug("bullet fired",
			zap.Uint64("bullet", uint64(bullet.Id)),
			zap.Float32("target_x", in.Target.X),
			zap.Float32("target_y", in.Target.Y),
		)
		if !cfg.Volley {
			break
		}
	}

	if fired > 0 {
		cooldown.Until = now + cfg.Cooldown
	}
}

// BulletBoundsSystem returns bullets that left the arena to the pool without scoring.
type BulletBoundsSystem struct {
	Bullets ecs.Query[bulletView]
	Arena   ecs.Singleton[Arena]
	Tuning  ecs.Singleton[Config]
}

func (s *BulletBoundsSystem) Execute(frame *ecs.UpdateFrame) {
	arena := *s.Arena.Get()
	margin := s.Tuning.Get().Bullets.BoundsMargin
	for bullet := range s.Bullets.Values() {
		if *bullet.BulletState != BulletFiring || arena.Contains(*bullet.Position, margin) {
			continue
		}
		*bullet.Velocity = Velocity{}
		bullet.BulletState.Transition(BulletReady)
	}
}

// BulletImpactSystem kills the nearest flyer within reach of each firing bullet.
// Flyers are removed when the frame's commands are flushed; a flyer already
// queued for deletion cannot be hit again in the same frame.
type BulletImpactSystem struct {
	Bullets ecs.Query[struct {
		*Position
		*Bullet
		*BulletState
	}]
	Flyers ecs.Query[struct {
		Id ecs.EntityId
		*Position
		*Flyer
	}]
	Score  ecs.Singleton[Score]
	Tuning ecs.Singleton[Config]

	log *zap.Logger
}

func (s *BulletImpactSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Tuning.Get()
	for bullet := range s.Bullets.Values() {
		if *bullet.BulletState != BulletFiring {
			continue
		}

		var (
			target  ecs.EntityId
			nearest = cfg.Bullets.HitRadius
			found   bool
		)
		for flyer := range s.Flyers.Values() {
			if frame.Commands.PendingDelete(flyer.Id) {
				continue
			}
			distance := flyer.Position.Vec().Sub(bullet.Position.Vec()).Len()
			if distance < nearest {
				target, nearest, found = flyer.Id, distance, true
			}
		}
		if !found {
			continue
		}

		frame.Commands.Delete(target)
		bullet.BulletState.Transition(BulletHit)
		s.Score.Get().Add(cfg.Scoring.KillReward)

		s.log.Debug("flyer shot down",
			zap.Uint64("flyer", uint64(target)),
			zap.Float32("distance", nearest),
			zap.Int("score", s.Score.Get().Points),
		)
	}
}

// BulletRecycleSystem parks bullets that scored a hit and makes them ready again.
type BulletRecycleSystem struct {
	Bullets ecs.Query[bulletView]
	Tuning  ecs.Singleton[Config]
}

func (s *BulletRecycleSystem) Execute(frame *ecs.UpdateFrame) {
	park := s.Tuning.Get().Bullets.Park
	for bullet := range s.Bullets.Values() {
		if *bullet.BulletState != BulletHit {
			continue
		}
		bullet.BulletState.Transition(BulletReady)
		*bullet.Position = park
		*bullet.Velocity = Velocity{}
	}
}
