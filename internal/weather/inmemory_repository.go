package weather

import (
	"context"
	"strings"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for MVP/testing. Production should use a database-backed implementation.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record
}

// NewInMemoryRepository creates a new in-memory weather repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Insert stores a new weather record.
func (r *InMemoryRepository) Insert(_ context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *record)
	return nil
}

// Latest returns the most recent weather record for a location.
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
		return nil, ErrNoRecords
	}

	recordCopy := *latest
	return &recordCopy, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
