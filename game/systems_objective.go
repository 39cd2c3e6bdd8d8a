package game

import (
	"time"

	"github.com/plus3/keepalive/ecs"
	"go.uber.org/zap"
)

type objectiveView struct {
	*Position
	*Width
	*KeepAlive
}

// ObjectiveProximitySystem ends the round when any non-objective body comes
// closer to a protected objective than the objective's width.
type ObjectiveProximitySystem struct {
	Objectives ecs.Query[objectiveView]
	Intruders  ecs.Query[struct {
		Id ecs.EntityId
		*Position
		*Height
		*Width
		Objective *KeepAlive `ecs:"exclude"`
	}]
	StillAlive ecs.Singleton[StillAlive]
	Score      ecs.Singleton[Score]
	Clock      ecs.Singleton[FrameClock]

	log *zap.Logger
}

func (s *ObjectiveProximitySystem) Execute(frame *ecs.UpdateFrame) {
	for objective := range s.Objectives.Values() {
		if !objective.KeepAlive.Protected {
			continue
		}
		reach := float32(*objective.Width)
		center := objective.Position.Vec()

		for intruder := range s.Intruders.Values() {
			if intruder.Position.Vec().Sub(center).Len() >= reach {
				continue
			}

			objective.KeepAlive.Breach()
			alive := s.StillAlive.Get()
			if alive.Alive {
				alive.End()
				s.log.Info("objective reached, round over",
					zap.Uint64("intruder", uint64(intruder.Id)),
					zap.Int("score", s.Score.Get().Points),
					zap.Duration("elapsed", s.Clock.Get().Now.Round(time.Millisecond)),
				)
			}
			break
		}
	}
}

// FlyerHomingSystem steers flyers toward the objective until they arrive.
type FlyerHomingSystem struct {
	Flyers ecs.Query[struct {
		*Position
		*Acceleration
		*Flyer
	}]
	Objectives ecs.Query[struct {
		*Position
		*KeepAlive
	}]
	Tuning ecs.Singleton[Config]
}

func (s *FlyerHomingSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Tuning.Get().Flyer
	for flyer := range s.Flyers.Values() {
		for objective := range s.Objectives.Values() {
			toward := objective.Position.Vec().Sub(flyer.Position.Vec())
			if toward.Len() <= cfg.ArrivalRadius {
				continue
			}
			dir, ok := unit(toward)
			if !ok {
				continue
			}
			flyer.Acceleration.Add(dir.Mul(cfg.HomingForce))
		}
	}
}

// FlyerLandingSystem pins flyers that have reached the objective in place.
type FlyerLandingSystem struct {
	Flyers ecs.Query[struct {
		*Position
		*Velocity
		*Acceleration
		*Flyer
	}]
	Objectives ecs.Query[struct {
		*Position
		*KeepAlive
	}]
	Tuning ecs.Singleton[Config]
}

func (s *FlyerLandingSystem) Execute(frame *ecs.UpdateFrame) {
	radius := s.Tuning.Get().Flyer.LandedRadius
	for flyer := range s.Flyers.Values() {
		for objective := range s.Objectives.Values() {
			if objective.Position.Vec().Sub(flyer.Position.Vec()).Len() < radius {
				flyer.Acceleration.Reset()
				*flyer.Velocity = Velocity{}
			}
		}
	}
}
