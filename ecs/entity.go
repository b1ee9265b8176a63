package ecs

// Entity packs an archetype id (upper 32 bits) and a storage slot (lower 32 bits).
type Entity uint64

// NewEntity builds an Entity from an archetype id and a storage slot.
func NewEntity(archetypeId uint32, slot uint32) Entity {
	return Entity(uint64(archetypeId)<<32 | uint64(slot))
}

// ArchetypeID extracts the archetype id from the entity.
func (e Entity) ArchetypeID() uint32 {
	return uint32(e >> 32)
}

// Slot extracts the storage slot from the entity.
func (e Entity) Slot() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
