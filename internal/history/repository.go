package history

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for MVP/testing. Production should use a database-backed implementation.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record
}

// NewInMemoryRepository creates a new in-memory observation repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Insert stores a new observation.
func (r *InMemoryRepository) Insert(_ context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *record)
	return nil
}

// Range returns observations for a location within [from, to), newest first.
func (r *InMemoryRepository) Range(_ context.Context, location string, from, to time.Time, limit int) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Record
	for _, record := range r.records {
		if !strings.EqualFold(record.Location, location) {
			continue
		}
		if record.RecordedAt.Before(from) || !record.RecordedAt.Before(to) {
			continue
		}
		matched = append(matched, record)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RecordedAt.After(matched[j].RecordedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// Latest returns the most recent observation for a location.
func (r *InMemoryRepository) Latest(_ context.Context, location string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Record
	for i := range r.records {
		record := &r.records[i]
		if !strings.EqualFold(record.Location, location) {
			continue
		}
		if latest == nil || record.RecordedAt.After(latest.RecordedAt) {
			latest = record
		}
	}

	if latest == nil {
		return nil, ErrNotFound
	}

	recordCopy := *latest
	return &recordCopy, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
