package main

import (
	"github.com/plus3/keepalive/ecs"
	"github.com/plus3/keepalive/game"
)

// autopilot holds fire at the flyer closest to the player.
type autopilot struct {
	players *ecs.View[struct {
		*game.Position
		*game.Player
	}]
	flyers *ecs.View[struct {
		*game.Position
		*game.Flyer
	}]
}

func newAutopilot(storage *ecs.Storage) *autopilot {
	return &autopilot{
		players: ecs.NewView[struct {
			*game.Position
			*game.Player
		}](storage),
		flyers: ecs.NewView[struct {
			*game.Position
			*game.Flyer
		}](storage),
	}
}

func (a *autopilot) Input() game.Input {
	var player game.Position
	found := false
	for p := range a.players.Values() {
		player, found = *p.Position, true
		break
	}
	if !found {
		return game.Input{}
	}

	var (
		target  game.Position
		nearest float32 = -1
	)
	for f := range a.flyers.Values() {
		distance := f.Position.Vec().Sub(player.Vec()).Len()
		if nearest < 0 || distance < nearest {
			target, nearest = *f.Position, distance
		}
	}
	if nearest < 0 {
		return game.Input{}
	}
	return game.Input{Pressed: game.SymbolFire, Target: target}
}
