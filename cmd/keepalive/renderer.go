package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/keepalive/game"
)

var shapeColors = map[game.Shape]color.RGBA{
	game.ShapeEgg:    {250, 235, 200, 255},
	game.ShapePerson: {120, 200, 255, 255},
	game.ShapeFloor:  {90, 90, 90, 255},
	game.ShapeFlyer:  {230, 90, 90, 255},
	game.ShapeBullet: {255, 230, 120, 255},
}

// screenRenderer draws a frame's draw list onto an ebiten image.
type screenRenderer struct {
	screen *ebiten.Image
}

func (r *screenRenderer) DrawEntity(visual game.Visual, at game.Position) {
	c := shapeColors[visual.Shape]
	switch visual.Shape {
	case game.ShapeBullet:
		vector.DrawFilledCircle(r.screen, at.X, at.Y, visual.Width, c, true)
	default:
		vector.DrawFilledRect(r.screen, at.X, at.Y, visual.Width, visual.Height, c, false)
	}
}

func (r *screenRenderer) DrawHUD(hud game.HUD) {
	ebitenutil.DebugPrintAt(r.screen, fmt.Sprintf("Score: %d", hud.Score), 8, 4)
	ebitenutil.DebugPrintAt(r.screen, hud.BulletIndicator(), 8, 20)

	if hud.RoundOver {
		w, h := r.screen.Bounds().Dx(), r.screen.Bounds().Dy()
		msg := fmt.Sprintf("Game Over\nFinal score: %d\nPress R to restart", hud.Score)
		ebitenutil.DebugPrintAt(r.screen, msg, w/2-50, h/2-20)
	}
}
