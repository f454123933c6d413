package sales

import "context"

// RecordRepository stores validated sales records. Insertion is the only
// mutation; records are append-only once admitted.
type RecordRepository interface {
	// Insert admits a validated record atomically. Concurrent readers see
	// either the pre-insert or the post-insert snapshot, never a partial
	// state.
	Insert(ctx context.Context, record *SalesRecord) error
	// All returns a detached snapshot of the current record set. Order is
	// not semantically significant; callers sort per view.
	All(ctx context.Context) ([]*SalesRecord, error)
}
