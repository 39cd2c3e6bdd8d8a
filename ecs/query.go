package ecs

import (
	"iter"
)

// Query wraps a View with caching for repeated iteration.
// Execute snapshots the matching entities; the Scheduler calls it immediately
// before the owning system runs, so every system sees the state left by the
// systems before it.
type Query[T any] struct {
	view             *View[T]
	storage          *Storage
	cachedArchetypes []*Archetype
	archetypeCount   int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.archetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component snapshot.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) refreshArchetypes() {
	if len(q.storage.order) == q.archetypeCount {
		return
	}

	// archetypes are never removed, so only the new tail needs matching
	start := max(q.archetypeCount, 0)
	for _, id := range q.storage.order[start:] {
		archetype := q.storage.archetypes[id]
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
	q.archetypeCount = len(q.storage.order)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// First returns the first matching entity, if any.
func (q *Query[T]) First() (EntityId, T, bool) {
	for id, item := range q.Iter() {
		return id, item, true
	}
	var zero T
	return 0, zero, false
}

// Len returns the number of entities in the snapshot.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}
