package ecs

import "github.com/kamstrup/intmap"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	queued  *intmap.Map[EntityId, struct{}]
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{
		queued: intmap.New[EntityId, struct{}](16),
	}
}

// Defer queues a function to run after all other commands are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Queuing the same entity more than once
// in a frame has no additional effect.
func (c *Commands) Delete(entity EntityId) {
	if _, ok := c.queued.Get(entity); ok {
		return
	}
	c.queued.Put(entity, struct{}{})
	c.deletes = append(c.deletes, entity)
}

// PendingDelete reports whether the entity is already queued for deletion.
func (c *Commands) PendingDelete(entity EntityId) bool {
	_, ok := c.queued.Get(entity)
	return ok
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies all commands to the provided storage, resetting the buffer state.
// Deletes run before spawns so a freshly spawned entity can never be removed by
// a stale id queued in the same frame.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
	c.queued.Clear()
}
