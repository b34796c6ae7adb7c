package catalog

import (
	"context"
	"sync"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// MemoryCatalog is a concurrency-safe in-memory Finder, used when no database
// is configured and as a deterministic test double.
type MemoryCatalog struct {
	mu     sync.RWMutex
	venues map[string]Venue
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{venues: make(map[string]Venue)}
}

// Add inserts or replaces a venue marker.
func (c *MemoryCatalog) Add(v Venue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.venues[v.ID] = v
}

// FindNearby returns venues within radiusMeters whose category matches the
// meal type.
func (c *MemoryCatalog) FindNearby(ctx context.Context, coord geo.Coordinate, radiusMeters float64, mealType string) ([]Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	categories := make(map[string]bool)
	for _, cat := range mealCategories(mealType) {
		categories[cat] = true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Venue
	for _, v := range c.venues {
		if !categories[v.Category] {
			continue
		}
		if geo.DistanceMeters(coord, v.Coordinate) > radiusMeters {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}
