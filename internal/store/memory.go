package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/i474232898/weather-history/internal/weather"
)

var (
	// ErrNotFound is returned when no region is stored under a given name.
	ErrNotFound = errors.New("no weather data for region")
)

// MemoryStore is a concurrency-safe in-memory set of regions keyed by name.
// Regions are published whole: a stored *weather.Region is never written to
// again, so readers may query it without holding the lock.
type MemoryStore struct {
	mu sync.RWMutex

	// key: region name
	data map[string]*weather.Region
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*weather.Region),
	}
}

// SaveRegion stores region under its name, replacing any earlier load of the
// same region.
func (s *MemoryStore) SaveRegion(region *weather.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[region.Name] = region
}

// Region returns the region stored under name.
func (s *MemoryStore) Region(name string) (*weather.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	region, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return region, nil
}

// RegionNames returns the stored region names in ascending order.
func (s *MemoryStore) RegionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
