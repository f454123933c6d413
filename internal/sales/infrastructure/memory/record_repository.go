package memory

import (
	"context"
	"sync"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// RecordRepository is an in-memory record store. Inserts take the write
// lock for the duration of the admission, so readers observe either the
// pre-insert or the post-insert snapshot.
type RecordRepository struct {
	mu      sync.RWMutex
	records []*sales.SalesRecord
	byID    map[string]struct{}
}

// NewRecordRepository constructs an empty repository.
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{byID: make(map[string]struct{})}
}

// Insert admits a record.
func (r *RecordRepository) Insert(ctx context.Context, record *sales.SalesRecord) error {
	_ = ctx
	if record == nil {
		return sales.ErrNilRecord
	}

	key := record.ID().String()
	copy := record.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[key]; exists {
		return sales.ErrDuplicateRecord
	}
	r.byID[key] = struct{}{}
	r.records = append(r.records, copy)
	return nil
}

// All returns a detached snapshot of the current record set.
func (r *RecordRepository) All(ctx context.Context) ([]*sales.SalesRecord, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*sales.SalesRecord, 0, len(r.records))
	for _, record := range r.records {
		result = append(result, record.Clone())
	}
	return result, nil
}

// Len reports the current record count.
func (r *RecordRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
