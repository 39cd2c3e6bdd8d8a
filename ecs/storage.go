package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []uint32
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns every archetype in creation order
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.archetypes[id])
	}
	return out
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types, _ := sortComponents(components)
	return s.archetypes[hashTypes(types)]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, exists := s.archetypes[id]
	if exists {
		if !typesEqual(archetype.types, types) {
			panic("archetype id collision between " + archetype.String() + " and a new component set")
		}
		return archetype
	}

	archetype = NewArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.order = append(s.order, id)
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types, sorted := sortComponents(components)
	return s.archetypeFor(types).Spawn(sorted)
}

// Delete removes all data related to the entity ID.
// Deleting an unknown or already deleted entity is a no-op and returns false.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.Delete(id)
}

// Alive reports whether the entity ID refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id)
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id, compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores a value as the singleton of its type, replacing any previous value.
// Pointers previously handed out for that type keep pointing at the old value.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton sets *out to the stored singleton of the pointed-to type.
// out must be a pointer to a pointer, e.g. var cfg *Config; storage.ReadSingleton(&cfg).
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.singletons[target.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func typesEqual(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortComponents extracts component types and returns them together with the
// components reordered to match
func sortComponents(components []any) ([]reflect.Type, []any) {
	type pair struct {
		typ  reflect.Type
		comp any
	}

	pairs := make([]pair, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType == nil {
			panic("components cannot be nil")
		}
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		pairs = append(pairs, pair{typ: compType, comp: comp})
	}

	types := make([]reflect.Type, len(pairs))
	for i, p := range pairs {
		types[i] = p.typ
	}
	sortTypes(types)

	sorted := make([]any, len(types))
	for i, typ := range types {
		if i > 0 && types[i-1] == typ {
			panic("duplicate component type " + typ.String())
		}
		for _, p := range pairs {
			if p.typ == typ {
				sorted[i] = p.comp
				break
			}
		}
	}
	return types, sorted
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to an entity's component, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
