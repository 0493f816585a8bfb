package payroll

import (
	"context"
)

type RunRepository interface {
	// GetRun returns the run row for the store-month, or ErrRecordNotFound
	// when none exists yet.
	GetRun(ctx context.Context, storeID string, ym YearMonth) (*Run, error)
	// UpsertRun creates the run row or updates its status, version and
	// finalized_at in place.
	UpsertRun(ctx context.Context, run *Run) error
}

type RecordRepository interface {
	// UpsertRecord inserts or replaces the computed figures for one
	// employee-month. Status and paid_at of an existing row are preserved.
	UpsertRecord(ctx context.Context, record *Record) error
	GetRecordByID(ctx context.Context, id string, storeID string) (*Record, error)
	// ListRecords returns the store's records for the month joined with
	// employee names, ordered by employee name.
	ListRecords(ctx context.Context, storeID string, ym YearMonth) ([]Record, error)
	UpdateRecordStatus(ctx context.Context, record *Record) error
	// DeleteRecordsNotIn removes stale records of employees no longer part
	// of a recomputation. Returns the number of rows removed.
	DeleteRecordsNotIn(ctx context.Context, storeID string, ym YearMonth, keepEmployeeIDs []string) (int64, error)
}

type PayrollRepository interface {
	RunRepository
	RecordRepository
}
