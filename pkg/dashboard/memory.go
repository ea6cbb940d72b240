package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in memory. IDs start at 1.
type MemoryStore struct {
	mu         sync.RWMutex
	dashboards map[int64]Dashboard
	nextID     int64
}

// NewMemoryStore creates a store holding the given dashboards. Seeds with a
// zero ID are assigned the next free ID.
func NewMemoryStore(seed ...Dashboard) *MemoryStore {
	s := &MemoryStore{
		dashboards: make(map[int64]Dashboard),
	}
	for _, d := range seed {
		if d.ID > s.nextID {
			s.nextID = d.ID
		}
	}
	now := time.Now().UTC()
	for _, d := range seed {
		if d.ID == 0 {
			s.nextID++
			d.ID = s.nextID
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
			d.UpdatedAt = now
		}
		s.dashboards[d.ID] = d
	}
	return s
}

// Get retrieves a dashboard by ID. Returns nil, nil if not found.
func (s *MemoryStore) Get(_ context.Context, id int64) (*Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dashboards[id]
	if !ok {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	return &d, nil
}

// List returns all dashboards ordered by ID.
func (s *MemoryStore) List(_ context.Context) ([]Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Dashboard, 0, len(s.dashboards))
	for _, d := range s.dashboards {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Create persists d and fills in its ID and timestamps.
func (s *MemoryStore) Create(_ context.Context, d *Dashboard) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	d.ID = s.nextID
	d.CreatedAt = now
	d.UpdatedAt = now
	s.dashboards[d.ID] = *d
	return nil
}

// Delete removes a dashboard.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dashboards[id]; !ok {
		return ErrNotFound
	}
	delete(s.dashboards, id)
	return nil
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
