package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/keepalive/game"
	"go.uber.org/zap"
)

// Game implements ebiten.Game on top of a game.World.
type Game struct {
	world *game.World
	log   *zap.Logger

	start     time.Time
	last      time.Time
	showStats bool
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showStats = !g.showStats
	}

	now := time.Now()
	if g.start.IsZero() {
		g.start, g.last = now, now
	}

	if !g.world.Alive() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
		g.start, g.last = now, now
	}

	delta := now.Sub(g.last).Seconds()
	g.last = now
	g.world.Step(readInput(), delta, now.Sub(g.start))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 22, 30, 255})
	g.world.Render(&screenRenderer{screen: screen})

	if g.showStats {
		g.drawStats(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	arena := g.world.Config().Arena
	return int(arena.Width), int(arena.Height)
}

func (g *Game) drawStats(screen *ebiten.Image) {
	storage := g.world.Stats()
	sched := g.world.SchedulerStats()

	text := fmt.Sprintf("FPS %.0f  TPS %.0f\nentities %d  archetypes %d  frames %d\n",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		storage.TotalEntityCount, storage.ArchetypeCount, sched.Frames)
	for _, sys := range sched.Systems {
		text += fmt.Sprintf("%-24s %v\n", sys.Name, sys.AvgDuration)
	}
	ebitenutil.DebugPrintAt(screen, text, 8, 40)
}

func readInput() game.Input {
	var in game.Input
	keys := []struct {
		key    ebiten.Key
		symbol game.Symbol
	}{
		{ebiten.KeyArrowLeft, game.SymbolLeft},
		{ebiten.KeyArrowRight, game.SymbolRight},
		{ebiten.KeyA, game.SymbolA},
		{ebiten.KeyD, game.SymbolD},
		{ebiten.KeySpace, game.SymbolJump},
	}
	for _, k := range keys {
		if ebiten.IsKeyPressed(k.key) {
			in.Pressed |= k.symbol
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		in.Pressed |= game.SymbolFire
		in.Target = game.Position{X: float32(mx), Y: float32(my)}
	}
	return in
}
