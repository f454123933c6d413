package sales

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyRecordID is returned when restoring a record without identity.
	ErrEmptyRecordID = errors.New("sales: empty record id")
	// ErrInvalidCreatedAt is returned when the creation timestamp is zero.
	ErrInvalidCreatedAt = errors.New("sales: invalid created_at")
	// ErrNilRecord is returned when inserting a nil record.
	ErrNilRecord = errors.New("sales: nil record")
	// ErrDuplicateRecord is returned when a record id is inserted twice.
	ErrDuplicateRecord = errors.New("sales: duplicate record id")
)

// FieldViolation names one violated invariant of a record candidate.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every invariant a candidate record violates,
// not just the first. The candidate is rejected wholesale; the store is
// untouched.
type ValidationError struct {
	Violations []FieldViolation
}

// Error lists all violations in field order.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "sales: invalid record"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "sales: invalid record: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
