package audit

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// DefaultMemoryCapacity bounds the events kept by a MemoryStore.
const DefaultMemoryCapacity = 10000

// MemoryStore implements Store in memory, keeping the most recent events.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

// NewMemoryStore creates an in-memory audit store holding at most capacity
// events. Zero uses DefaultMemoryCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity}
}

// Log records an audit event, evicting the oldest when full.
func (s *MemoryStore) Log(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if over := len(s.events) - s.capacity; over > 0 {
		s.events = append(s.events[:0:0], s.events[over:]...)
	}
	return nil
}

// Query retrieves audit events matching the filter, newest first.
func (s *MemoryStore) Query(_ context.Context, filter QueryFilter) ([]Event, error) {
	matched := s.match(filter.StartTime, filter.EndTime, func(e *Event) bool {
		if filter.DashboardID != nil && e.DashboardID != *filter.DashboardID {
			return false
		}
		if filter.OwnerID != "" && e.OwnerID != filter.OwnerID {
			return false
		}
		return filter.Kind == "" || e.Kind == filter.Kind
	})

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []Event{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Breakdown returns event counts grouped by a dimension, largest first.
func (s *MemoryStore) Breakdown(_ context.Context, filter BreakdownFilter) ([]BreakdownEntry, error) {
	if !ValidBreakdownDimensions[filter.GroupBy] {
		return nil, InvalidDimension(filter.GroupBy)
	}

	counts := make(map[string]*BreakdownEntry)
	for _, e := range s.match(filter.StartTime, filter.EndTime, nil) {
		key := dimensionOf(&e, filter.GroupBy)
		entry, ok := counts[key]
		if !ok {
			entry = &BreakdownEntry{Dimension: key}
			counts[key] = entry
		}
		entry.Count++
		switch e.Kind {
		case KindTakenOver:
			entry.Takeovers++
		case KindExpired:
			entry.Expiries++
		}
	}

	result := make([]BreakdownEntry, 0, len(counts))
	for _, entry := range counts {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Dimension < result[j].Dimension
	})

	if limit := ClampBreakdownLimit(filter.Limit); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Cleanup removes events recorded before the cutoff.
func (s *MemoryStore) Cleanup(_ context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if !e.Timestamp.Before(before) {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

// Len returns the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Close is a no-op.
func (*MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) match(start, end *time.Time, keep func(*Event) bool) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Event{}
	for i := range s.events {
		e := &s.events[i]
		if start != nil && e.Timestamp.Before(*start) {
			continue
		}
		if end != nil && e.Timestamp.After(*end) {
			continue
		}
		if keep != nil && !keep(e) {
			continue
		}
		result = append(result, *e)
	}
	return result
}

func dimensionOf(e *Event, dim BreakdownDimension) string {
	switch dim {
	case BreakdownByDashboard:
		return strconv.FormatInt(e.DashboardID, 10)
	case BreakdownByOwner:
		return e.OwnerID
	default:
		return string(e.Kind)
	}
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
