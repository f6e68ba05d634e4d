package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Validate that MemoryStore implements the Store interface
var _ Store = &MemoryStore{}

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     map[string]types.RunRecord
	counters map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:     make(map[string]types.RunRecord),
		counters: make(map[string]int64),
	}
}

// Open is a no-op for the memory store.
func (s *MemoryStore) Open(path string) error { return nil }

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }

// SaveRun appends a run record.
func (s *MemoryStore) SaveRun(ctx context.Context, record *types.RunRecord) error {
	if record.ID == "" {
		return fmt.Errorf("run record has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[record.ID]; exists {
		return fmt.Errorf("run %s already recorded", record.ID)
	}
	s.runs[record.ID] = *record
	return nil
}

// GetRun retrieves a run record by id.
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*types.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &record, nil
}

// ListRuns lists run records, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, bundleID string) ([]types.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]types.RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		if bundleID == "" || record.BundleID == bundleID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}

// NextBuildNumber increments and returns the build counter for the bundle.
func (s *MemoryStore) NextBuildNumber(ctx context.Context, bundleID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[bundleID]++
	return s.counters[bundleID], nil
}
