package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/keepalive/game"
	"go.uber.org/zap"
)

const (
	frameInterval = 16 * time.Millisecond
	// Terminals report key presses, not releases. A key counts as held for
	// this long after its last event.
	holdWindow = 150 * time.Millisecond
)

var shapeRunes = map[game.Shape]rune{
	game.ShapeEgg:    'O',
	game.ShapePerson: '@',
	game.ShapeFloor:  '=',
	game.ShapeFlyer:  'W',
	game.ShapeBullet: '*',
}

var shapeStyles = map[game.Shape]tcell.Style{
	game.ShapeEgg:    tcell.StyleDefault.Foreground(tcell.ColorWhite),
	game.ShapePerson: tcell.StyleDefault.Foreground(tcell.ColorAqua),
	game.ShapeFloor:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	game.ShapeFlyer:  tcell.StyleDefault.Foreground(tcell.ColorRed),
	game.ShapeBullet: tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

type terminal struct {
	screen tcell.Screen
	world  *game.World
	log    *zap.Logger

	held   map[game.Symbol]time.Time
	fireAt *game.Position
	start  time.Time
	last   time.Time
}

func newTerminal(screen tcell.Screen, world *game.World, log *zap.Logger) *terminal {
	return &terminal{
		screen: screen,
		world:  world,
		log:    log,
		held:   make(map[game.Symbol]time.Time),
	}
}

func (t *terminal) run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	t.start = time.Now()
	t.last = t.start

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			t.step(now)
			t.draw()
		}
	}
}

// handleEvent records input and reports whether the loop should keep going.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	now := time.Now()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.held[game.SymbolLeft] = now
		case tcell.KeyRight:
			t.held[game.SymbolRight] = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a', 'A':
				t.held[game.SymbolA] = now
			case 'd', 'D':
				t.held[game.SymbolD] = now
			case ' ':
				t.held[game.SymbolJump] = now
			case 'q':
				return false
			case 'r', 'R':
				if !t.world.Alive() {
					t.world.Reset()
					t.start, t.last = now, now
				}
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			target := t.toArena(x, y)
			t.fireAt = &target
		}
	}
	return true
}

func (t *terminal) input(now time.Time) game.Input {
	var in game.Input
	for symbol, at := range t.held {
		if now.Sub(at) <= holdWindow {
			in.Pressed |= symbol
		}
	}
	if t.fireAt != nil {
		in.Pressed |= game.SymbolFire
		in.Target = *t.fireAt
		t.fireAt = nil
	}
	return in
}

func (t *terminal) step(now time.Time) {
	delta := now.Sub(t.last).Seconds()
	t.last = now
	t.world.Step(t.input(now), delta, now.Sub(t.start))
}

func (t *terminal) draw() {
	t.screen.Clear()
	t.world.Render(&cellRenderer{t: t})
	t.screen.Show()
}

// toCell maps an arena position onto the screen grid.
func (t *terminal) toCell(p game.Position) (int, int) {
	w, h := t.screen.Size()
	arena := t.world.Config().Arena
	return int(p.X / arena.Width * float32(w)), int(p.Y / arena.Height * float32(h))
}

func (t *terminal) toArena(x, y int) game.Position {
	w, h := t.screen.Size()
	arena := t.world.Config().Arena
	return game.Position{
		X: (float32(x) + 0.5) / float32(w) * arena.Width,
		Y: (float32(y) + 0.5) / float32(h) * arena.Height,
	}
}

type cellRenderer struct {
	t *terminal
}

func (r *cellRenderer) DrawEntity(visual game.Visual, at game.Position) {
	x0, y0 := r.t.toCell(at)
	x1, y1 := r.t.toCell(game.Position{X: at.X + visual.Width, Y: at.Y + visual.Height})
	ch, style := shapeRunes[visual.Shape], shapeStyles[visual.Shape]
	for y := y0; y <= max(y0, y1-1); y++ {
		for x := x0; x <= max(x0, x1-1); x++ {
			r.t.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *cellRenderer) DrawHUD(hud game.HUD) {
	r.text(0, 0, fmt.Sprintf("Score: %d", hud.Score))
	r.text(0, 1, hud.BulletIndicator())

	if hud.RoundOver {
		w, h := r.t.screen.Size()
		lines := []string{"Game Over", fmt.Sprintf("Final score: %d", hud.Score), "Press R to restart"}
		for i, line := range lines {
			r.text(w/2-len(line)/2, h/2-1+i, line)
		}
	}
}

func (r *cellRenderer) text(x, y int, s string) {
	for i, ch := range s {
		r.t.screen.SetContent(x+i, y, ch, nil, tcell.StyleDefault)
	}
}
