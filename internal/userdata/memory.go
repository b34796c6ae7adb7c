package userdata

import (
	"context"
	"sort"
	"sync"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// MemoryStore is a concurrency-safe in-memory LocationResolver and
// HistoryReader, used when no database is configured and as a deterministic
// test double.
type MemoryStore struct {
	mu        sync.RWMutex
	locations map[string]geo.Coordinate
	affinity  map[string]map[string]float64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locations: make(map[string]geo.Coordinate),
		affinity:  make(map[string]map[string]float64),
	}
}

// SetLocation records a user's shareable coordinate.
func (s *MemoryStore) SetLocation(userID string, coord geo.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[userID] = coord
}

// SetAffinity records a user's affinity (0-1) for a venue category.
func (s *MemoryStore) SetAffinity(userID, category string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.affinity[userID] == nil {
		s.affinity[userID] = make(map[string]float64)
	}
	s.affinity[userID][category] = value
}

// Resolve returns the user's coordinate, or nil when none is shared.
func (s *MemoryStore) Resolve(ctx context.Context, userID string) (*geo.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coord, ok := s.locations[userID]
	if !ok {
		return nil, nil
	}
	return &coord, nil
}

// UsersWithLocation lists users with a shared coordinate, sorted for
// deterministic scheduling order.
func (s *MemoryStore) UsersWithLocation(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.locations))
	for id := range s.locations {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}

// CategoryAffinity returns the user's per-category affinity map; empty when no
// history exists.
func (s *MemoryStore) CategoryAffinity(ctx context.Context, userID string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.affinity[userID]))
	for cat, v := range s.affinity[userID] {
		out[cat] = v
	}
	return out, nil
}
