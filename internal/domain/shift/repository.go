package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for planned shifts.
// All methods include storeID to prevent cross-store data access. The table
// carries an exclusion constraint on (employee_id, shift_date, minute range),
// so overlapping rows are rejected by storage even when two writers race; the
// service-level check only exists to produce a friendly error.
type ShiftRepository interface {
	// Create inserts a single shift.
	Create(ctx context.Context, s Shift) (Shift, error)

	// CreateBatch inserts all shifts or none. Callers wrap it in a
	// transaction together with the overlap pre-check.
	CreateBatch(ctx context.Context, shifts []Shift) ([]Shift, error)

	// GetByID retrieves a shift with store isolation.
	GetByID(ctx context.Context, id string, storeID string) (Shift, error)

	// ListByEmployeeDates retrieves an employee's shifts on the given dates.
	ListByEmployeeDates(ctx context.Context, employeeID string, storeID string, dates []time.Time) ([]Shift, error)

	// ListByStoreRange retrieves a store's shifts in [startDate, endDate]
	// with employee names joined, ordered by date then start time.
	ListByStoreRange(ctx context.Context, storeID string, startDate, endDate time.Time, employeeID *string) ([]Shift, error)

	// Update rewrites a shift in place (same identity).
	Update(ctx context.Context, s Shift) (Shift, error)

	// Delete removes a single shift.
	Delete(ctx context.Context, id string, storeID string) error

	// DeleteByEmployeeRange removes an employee's shifts in [startDate,
	// endDate] and reports how many rows went away.
	DeleteByEmployeeRange(ctx context.Context, employeeID string, storeID string, startDate, endDate time.Time) (int64, error)
}
