package ecs_test

import (
	"testing"

	"github.com/plus3/keepalive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[movingView](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[movingView](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		assert.Panics(t, func() {
			for range fresh.Values() {
			}
		})
	})

	t.Run("multiple iterations use cache", func(t *testing.T) {
		query.Execute()

		var first, second []ecs.EntityId
		for id := range query.Iter() {
			first = append(first, id)
		}
		for id := range query.Iter() {
			second = append(second, id)
		}
		assert.Equal(t, first, second)
	})

	t.Run("snapshot is stable until re-execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})
		assert.Equal(t, before, query.Len())

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{}, Velocity{}, Name{Value: "late"})
		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("deleted entities drop out", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		id, _, ok := query.First()
		require.True(t, ok)
		storage.Delete(id)

		query.Execute()
		assert.Equal(t, before-1, query.Len())
		for other := range query.Iter() {
			assert.NotEqual(t, id, other)
		}
	})

	t.Run("iter values", func(t *testing.T) {
		query.Execute()

		count := 0
		for item := range query.Values() {
			assert.NotNil(t, item.Position)
			assert.NotNil(t, item.Velocity)
			count++
		}
		assert.Equal(t, query.Len(), count)
	})
}

func TestQueryFirstEmpty(t *testing.T) {
	query := ecs.NewQuery[movingView](ecs.NewStorage(newTestRegistry()))
	query.Execute()

	_, item, ok := query.First()
	assert.False(t, ok)
	assert.Nil(t, item.Position)
}
