package ecs

const (
	indexBits      = 20
	generationBits = 12

	// MaxSlots is the number of entity slots a single archetype can address
	MaxSlots = 1 << indexBits

	indexMask      = MaxSlots - 1
	generationMask = 1<<generationBits - 1
)

// EntityId encodes the archetype ID (upper 32 bits), the slot generation (12 bits)
// and the slot index (lower 20 bits)
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID, slot generation and slot index
func NewEntityId(archetypeId uint32, generation uint16, index uint32) EntityId {
	low := uint64(generation&generationMask)<<indexBits | uint64(index&indexMask)
	return EntityId(uint64(archetypeId)<<32 | low)
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

// Generation extracts the slot generation from the entity ID.
// A slot's generation is bumped every time its entity is deleted.
func (e EntityId) Generation() uint16 {
	return uint16(uint32(e)>>indexBits) & generationMask
}

func nextGeneration(g uint16) uint16 {
	return (g + 1) & generationMask
}
