package payroll

import (
	"context"
)

type PayrollService interface {
	// ComputeMonth aggregates attendance and wage profiles into payroll
	// records for every active employee of the store, then returns the run.
	ComputeMonth(ctx context.Context, storeID string, ym YearMonth) (*Run, []Record, error)
	GetRun(ctx context.Context, storeID string, ym YearMonth) (*Run, error)
	ListRecords(ctx context.Context, storeID string, ym YearMonth) ([]Record, error)
	SetRecordStatus(ctx context.Context, storeID string, req *SetStatusRequest) (*Record, error)
	Finalize(ctx context.Context, storeID string, ym YearMonth) (*Run, error)
	Summary(ctx context.Context, storeID string, ym YearMonth) (*SummaryResponse, error)
}
