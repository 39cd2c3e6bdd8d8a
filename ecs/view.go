package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldMode uint8

const (
	fieldRequired fieldMode = iota
	fieldOptional
	fieldExcluded
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with pointer fields for each component type:
//
//   - embedded pointer fields are always required
//   - named fields tagged `ecs:"optional"` are set to nil when the component is absent
//   - named fields tagged `ecs:"exclude"` reject entities carrying that component and are always nil
//   - a field of type EntityId receives the entity's id
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	modes       []fieldMode
	fieldOffset []uintptr

	idOffset uintptr
	hasId    bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.hasId {
				panic("View struct may only contain one EntityId field")
			}
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		mode := fieldRequired
		if tag := field.Tag.Get("ecs"); tag != "" {
			if field.Anonymous {
				panic("embedded View fields are always required")
			}
			switch tag {
			case "optional":
				mode = fieldOptional
			case "exclude":
				mode = fieldExcluded
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (expected \"optional\" or \"exclude\")")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.modes = append(v.modes, mode)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not alive, is missing any required component,
// or carries an excluded one.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, id, v.buildStorageIndices(archetype))
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't match the view
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// matchesArchetype checks the archetype against required and excluded component types
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		switch v.modes[i] {
		case fieldRequired:
			if !archetype.HasComponent(typ) {
				return false
			}
		case fieldExcluded:
			if archetype.HasComponent(typ) {
				return false
			}
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.types))
	for i, componentType := range v.types {
		storageIndices[i] = -1
		if v.modes[i] != fieldExcluded {
			storageIndices[i] = archetype.typeIndex(componentType)
		}
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, id EntityId, storageIndices []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = id
	}

	index := int(id.Index())
	for i, storageIdx := range storageIndices {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(resultPtr, v.fieldOffset[i]))

		var component any
		if storageIdx != -1 {
			component = archetype.storages[storageIdx].Get(index)
		}
		if component == nil {
			if v.modes[i] == fieldRequired {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = dataPointer(component)
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for id := range archetype.Iter() {
			if !v.populateResult(resultPtr, archetype, id, storageIndices) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities matching the view, archetypes in
// creation order and entities in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetypeId := range v.storage.order {
			archetype := v.storage.archetypes[archetypeId]
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the view
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
