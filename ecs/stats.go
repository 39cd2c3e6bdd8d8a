package ecs

import "slices"

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and returns a snapshot of its size.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.Archetypes() {
		count := archetype.Len()
		if count == 0 {
			continue
		}

		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}

		stats.ArchetypeCount++
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	stats.SingletonTypes = make([]string, 0, len(s.singletons))
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
