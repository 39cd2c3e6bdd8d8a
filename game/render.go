package game

import (
	"strings"

	"github.com/plus3/keepalive/ecs"
)

// HUD is the out-of-band overlay state handed to a Renderer once per frame.
type HUD struct {
	Score        int
	ReadyBullets int
	PoolSize     int
	RoundOver    bool
}

// BulletIndicator renders readiness as one star per ready bullet, e.g. "Bullets: * * *".
func (h HUD) BulletIndicator() string {
	var b strings.Builder
	b.WriteString("Bullets:")
	for range h.ReadyBullets {
		b.WriteString(" *")
	}
	return b.String()
}

// Renderer is the drawing sink. Front ends implement it.
type Renderer interface {
	DrawEntity(visual Visual, at Position)
	DrawHUD(hud HUD)
}

// DrawCall is one entity draw recorded during the last frame.
type DrawCall struct {
	Visual   Visual
	Position Position
}

// DrawList is the frame's render output, rebuilt by RenderSystem and replayed
// by World.Render.
type DrawList struct {
	Calls []DrawCall
	HUD   HUD
}

// Replay sends every recorded call to r, entities first.
func (d *DrawList) Replay(r Renderer) {
	for _, call := range d.Calls {
		r.DrawEntity(call.Visual, call.Position)
	}
	r.DrawHUD(d.HUD)
}

// RenderSystem records a draw call for every visible entity plus the HUD.
type RenderSystem struct {
	Drawables ecs.Query[struct {
		*Position
		*Visual
	}]
	Bullets ecs.Query[struct {
		*Bullet
		*BulletState
	}]
	Output     ecs.Singleton[DrawList]
	Score      ecs.Singleton[Score]
	StillAlive ecs.Singleton[StillAlive]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	out := s.Output.Get()
	out.Calls = out.Calls[:0]
	for drawable := range s.Drawables.Values() {
		out.Calls = append(out.Calls, DrawCall{Visual: *drawable.Visual, Position: *drawable.Position})
	}

	ready := 0
	for bullet := range s.Bullets.Values() {
		if *bullet.BulletState == BulletReady {
			ready++
		}
	}

	out.HUD = HUD{
		Score:        s.Score.Get().Points,
		ReadyBullets: ready,
		PoolSize:     s.Bullets.Len(),
		RoundOver:    !s.StillAlive.Get().Alive,
	}
}
