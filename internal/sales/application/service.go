package application

import (
	"context"
	"time"

	"bmw-sales-analytics/internal/observability/metrics"
	sales "bmw-sales-analytics/internal/sales/domain"
)

// RecordAppService handles the record insertion use case: validate the
// candidate, admit it atomically, reject it wholesale otherwise.
type RecordAppService struct {
	repo sales.RecordRepository
}

// NewRecordAppService builds a RecordAppService.
func NewRecordAppService(repo sales.RecordRepository) *RecordAppService {
	return &RecordAppService{repo: repo}
}

// sizer is implemented by stores that can report their size cheaply.
type sizer interface {
	Len() int
}

// Insert validates and admits a candidate record. On a validation
// failure the returned error is a *sales.ValidationError listing every
// violated invariant and the store is untouched.
func (s *RecordAppService) Insert(ctx context.Context, input sales.RecordInput) (*sales.SalesRecord, error) {
	start := time.Now()

	record, err := sales.NewSalesRecord(input)
	if err != nil {
		_, invalid := sales.AsValidationError(err)
		metrics.ObserveInsert(metrics.InsertResult(err, invalid), time.Since(start))
		return nil, err
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		metrics.ObserveInsert(metrics.InsertResult(err, false), time.Since(start))
		return nil, err
	}

	metrics.ObserveInsert(metrics.InsertResult(nil, false), time.Since(start))
	if store, ok := s.repo.(sizer); ok {
		metrics.SetRecordCount(store.Len())
	}
	return record, nil
}

// All returns a detached snapshot of the current record set.
func (s *RecordAppService) All(ctx context.Context) ([]*sales.SalesRecord, error) {
	return s.repo.All(ctx)
}
