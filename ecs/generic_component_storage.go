package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether a component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are allocated individually so component pointers stay valid when
// the storage grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) slot(index int) (block, slot int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	block = index / genericBlockSize
	if block >= len(cs.blocks) {
		return 0, 0, false
	}
	return block, index % genericBlockSize, true
}

// Append adds a component to storage and returns its index.
// Freed slots are reused before the storage grows.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	block, slot := index/genericBlockSize, index%genericBlockSize
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.count++
	return index
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slot, ok := cs.slot(index)
	if !ok || !cs.filled[block][slot] {
		return nil
	}
	return &cs.blocks[block][slot]
}

// Delete zeroes a component slot and makes it available for reuse.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slot, ok := cs.slot(index)
	if !ok || !cs.filled[block][slot] {
		return
	}

	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slot, ok := cs.slot(index)
	return ok && cs.filled[block][slot]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields the indices of live components in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/genericBlockSize][i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
