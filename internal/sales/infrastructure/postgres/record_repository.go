package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

const defaultRecordsTable = "bmw_sales"

// RecordRepository is a Postgres implementation of the record store.
// Validation happens in the domain constructor; rows loaded from the
// database are passed back through it so invariants hold either way.
type RecordRepository struct {
	db    *sql.DB
	table string
}

// NewRecordRepository constructs a repository.
func NewRecordRepository(db *sql.DB, opts ...RecordOption) *RecordRepository {
	repo := &RecordRepository{db: db, table: defaultRecordsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// RecordOption configures the repository.
type RecordOption func(*RecordRepository)

// WithRecordsTable overrides the default table name.
func WithRecordsTable(table string) RecordOption {
	return func(repo *RecordRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Insert admits a record. The single-statement insert is atomic; readers
// see the row fully or not at all.
func (r *RecordRepository) Insert(ctx context.Context, record *sales.SalesRecord) error {
	if r == nil || r.db == nil {
		return errors.New("record repo: nil db")
	}
	if record == nil {
		return sales.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, model, year, region, color, fuel_type, transmission, engine_size_l, mileage_km, price_usd, sales_volume, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO NOTHING`, r.table)

	result, err := r.db.ExecContext(ctx, query,
		record.ID(),
		record.Model(),
		record.Year(),
		record.Region(),
		record.Color(),
		string(record.FuelType()),
		string(record.Transmission()),
		record.EngineSizeL(),
		record.MileageKM(),
		record.PriceUSD(),
		record.SalesVolume(),
		record.CreatedAt(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sales.ErrDuplicateRecord
	}
	return nil
}

// All loads the full record set.
func (r *RecordRepository) All(ctx context.Context) ([]*sales.SalesRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("record repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, model, year, region, color, fuel_type, transmission, engine_size_l, mileage_km, price_usd, sales_volume, created_at
FROM %s
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*sales.SalesRecord
	for rows.Next() {
		var (
			id        uuid.UUID
			input     sales.RecordInput
			fuel      string
			gearbox   string
			engine    decimal.NullDecimal
			createdAt time.Time
		)
		if err := rows.Scan(
			&id,
			&input.Model,
			&input.Year,
			&input.Region,
			&input.Color,
			&fuel,
			&gearbox,
			&engine,
			&input.MileageKM,
			&input.PriceUSD,
			&input.SalesVolume,
			&createdAt,
		); err != nil {
			return nil, err
		}
		input.FuelType = sales.FuelType(fuel)
		input.Transmission = sales.Transmission(gearbox)
		input.EngineSizeL = engine

		record, err := sales.RestoreSalesRecord(id, input, createdAt)
		if err != nil {
			return nil, fmt.Errorf("record repo: row %s: %w", id, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureSchema creates the records table when it does not exist.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errors.New("record repo: nil db")
	}

	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	model TEXT NOT NULL,
	year INT NOT NULL CHECK (year BETWEEN 2010 AND 2024),
	region TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	fuel_type TEXT NOT NULL,
	transmission TEXT NOT NULL,
	engine_size_l NUMERIC(3,1) CHECK ((fuel_type = 'Electric') = (engine_size_l IS NULL)),
	mileage_km BIGINT NOT NULL CHECK (mileage_km BETWEEN 0 AND 200000),
	price_usd NUMERIC(12,2) NOT NULL CHECK (price_usd > 0),
	sales_volume BIGINT NOT NULL CHECK (sales_volume > 0),
	created_at TIMESTAMPTZ NOT NULL
)`, r.table)

	_, err := r.db.ExecContext(ctx, ddl)
	return err
}
