package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulletStateTransitions(t *testing.T) {
	legal := map[[2]BulletState]bool{
		{BulletReady, BulletFiring}: true,
		{BulletFiring, BulletReady}: true,
		{BulletFiring, BulletHit}:   true,
		{BulletHit, BulletReady}:    true,
	}

	states := []BulletState{BulletReady, BulletFiring, BulletHit}
	for _, from := range states {
		for _, to := range states {
			s := from
			ok := s.Transition(to)
			assert.Equal(t, legal[[2]BulletState{from, to}], ok, "%s -> %s", from, to)
			if ok {
				assert.Equal(t, to, s)
			} else {
				assert.Equal(t, from, s)
			}
		}
	}
}

func TestKeepAliveBreach(t *testing.T) {
	k := KeepAlive{Protected: true}
	k.Breach()
	k.Breach()
	assert.False(t, k.Protected)
}

func TestArenaContains(t *testing.T) {
	a := Arena{Width: 800, Height: 600}
	assert.True(t, a.Contains(Position{X: 0, Y: 0}, 0))
	assert.True(t, a.Contains(Position{X: 810, Y: -10}, 10))
	assert.False(t, a.Contains(Position{X: 811, Y: 300}, 10))
	assert.False(t, a.Contains(Position{X: -50, Y: -50}, 10))
}

func TestInput(t *testing.T) {
	in := Input{Pressed: SymbolA | SymbolFire}
	assert.True(t, in.movingLeft())
	assert.False(t, in.movingRight())
	assert.True(t, in.Has(SymbolFire))
	assert.False(t, in.Has(SymbolJump))
}
