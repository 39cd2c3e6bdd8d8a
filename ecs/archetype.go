package ecs

import (
	"reflect"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// typeKey returns a stable identity string for a component type
func typeKey(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

// hashTypes derives an archetype ID from a sorted slice of component types.
// IDs are stable across runs so they can be logged and compared.
func hashTypes(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(typeKey(t))
		_, _ = d.Write([]byte{0})
	}
	sum := d.Sum64()
	id := uint32(sum) ^ uint32(sum>>32)
	if id == 0 {
		// zero is reserved so that EntityId(0) never names a live entity
		id = 1
	}
	return id
}

// Archetype represents a unique combination of component types
type Archetype struct {
	id          uint32
	types       []reflect.Type
	storages    []iComponentStorage
	generations []uint16
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) typeIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// Spawn stores the components of a new entity and returns its ID.
// Components must already be ordered like the archetype's types.
func (a *Archetype) Spawn(components []any) EntityId {
	index := -1
	for i, comp := range components {
		index = a.storages[i].Append(comp)
	}
	if index < 0 {
		panic("component does not match archetype " + a.String())
	}
	if index >= MaxSlots {
		panic("archetype " + a.String() + " is full")
	}

	for len(a.generations) <= index {
		a.generations = append(a.generations, 0)
	}
	return NewEntityId(a.id, a.generations[index], uint32(index))
}

// Alive reports whether the id names an entity currently stored in this archetype
func (a *Archetype) Alive(id EntityId) bool {
	if id.ArchetypeId() != a.id || len(a.storages) == 0 {
		return false
	}
	index := int(id.Index())
	if index >= len(a.generations) || a.generations[index] != id.Generation() {
		return false
	}
	return a.storages[0].Has(index)
}

// GetComponent returns the component of the given type for a live entity, or nil
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	if !a.Alive(id) {
		return nil
	}
	idx := a.typeIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(id.Index()))
}

// Delete removes a live entity's components and retires its id.
// Stale ids are ignored; the return value reports whether anything was removed.
func (a *Archetype) Delete(id EntityId) bool {
	if !a.Alive(id) {
		return false
	}
	index := int(id.Index())
	for _, storage := range a.storages {
		storage.Delete(index)
	}
	a.generations[index] = nextGeneration(a.generations[index])
	return true
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, a.generations[index], uint32(index))) {
				return
			}
		}
	}
}
