package game

import "time"

// StillAlive is true until the objective is reached. Once false it stays false
// for the rest of the round.
type StillAlive struct {
	Alive bool
}

func (s *StillAlive) End() {
	s.Alive = false
}

// Score only grows during a round.
type Score struct {
	Points int
}

func (s *Score) Add(points int) {
	if points > 0 {
		s.Points += points
	}
}

// BulletSize is the shared bullet radius, used for drawing and hit tests.
type BulletSize struct {
	Radius float32
}

// FireCooldown gates the next shot: firing is allowed once the round clock reaches Until.
type FireCooldown struct {
	Until time.Duration
}

func (c FireCooldown) Ready(now time.Duration) bool {
	return now >= c.Until
}

// SurvivalTimer holds the next time the survival reward may be paid.
type SurvivalTimer struct {
	Next time.Duration
}

// FrameClock is the time source for the current frame.
type FrameClock struct {
	Now   time.Duration
	Delta float64
}

// Arena is the fixed play area in pixels.
type Arena struct {
	Width, Height float32
}

// Contains reports whether p lies inside the arena grown by margin on every side.
func (a Arena) Contains(p Position, margin float32) bool {
	return p.X >= -margin && p.X <= a.Width+margin &&
		p.Y >= -margin && p.Y <= a.Height+margin
}

// InputState carries the input for the current frame.
type InputState struct {
	Input
}
