// Package store pkg/store/memory.go provides result storage backends.
package store

import (
	"context"
	"sync"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// InMemoryStore implements Store with a map keyed by target identity.
type InMemoryStore struct {
	mu          sync.RWMutex
	results     map[models.Target]models.ProbeResult
	order       []models.Target
	lastCycleID uint64
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		results: make(map[models.Target]models.ProbeResult),
	}
}

func (s *InMemoryStore) SaveResult(_ context.Context, cycleID uint64, result *models.ProbeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.Target]; !exists {
		s.order = append(s.order, result.Target)
	}

	s.results[result.Target] = *result

	if cycleID > s.lastCycleID {
		s.lastCycleID = cycleID
	}

	return nil
}

func (s *InMemoryStore) GetResults(_ context.Context) ([]models.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProbeResult, 0, len(s.order))
	for _, target := range s.order {
		out = append(out, s.results[target])
	}

	return out, nil
}

func (s *InMemoryStore) GetSummary(_ context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &Summary{
		TotalTargets: len(s.results),
		StatusCounts: make(map[models.Status]int),
		LastCycleID:  s.lastCycleID,
	}

	for _, result := range s.results {
		summary.StatusCounts[result.Status]++

		if result.CheckedAt.After(summary.LastChecked) {
			summary.LastChecked = result.CheckedAt
		}
	}

	return summary, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
