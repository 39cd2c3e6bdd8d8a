package game

import "github.com/plus3/keepalive/ecs"

// SurvivalScoringSystem pays the survival reward on a fixed interval while the
// round is alive. A long frame skips missed rewards instead of catching up.
type SurvivalScoringSystem struct {
	Timer      ecs.Singleton[SurvivalTimer]
	Clock      ecs.Singleton[FrameClock]
	StillAlive ecs.Singleton[StillAlive]
	Score      ecs.Singleton[Score]
	Tuning     ecs.Singleton[Config]
}

func (s *SurvivalScoringSystem) Execute(frame *ecs.UpdateFrame) {
	now := s.Clock.Get().Now
	timer := s.Timer.Get()
	if now < timer.Next {
		return
	}

	scoring := s.Tuning.Get().Scoring
	if s.StillAlive.Get().Alive {
		s.Score.Get().Add(scoring.SurvivalReward)
	}
	timer.Next = now + scoring.SurvivalInterval
}
