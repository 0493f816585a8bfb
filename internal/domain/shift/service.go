package shift

import "context"

// ShiftService defines business logic for shift planning.
type ShiftService interface {
	// CreateShift creates one shift, rejecting overlaps for the same
	// employee/date.
	CreateShift(ctx context.Context, storeID string, req CreateShiftRequest) (ShiftResponse, error)

	// CreateShiftsBulk expands a date range through a weekday filter and
	// creates every resulting shift, all-or-nothing. The first conflicting
	// date is reported on failure.
	CreateShiftsBulk(ctx context.Context, storeID string, req BulkCreateShiftRequest) ([]ShiftResponse, error)

	// UpdateShift edits a shift in place under the same overlap rules,
	// excluding the shift itself.
	UpdateShift(ctx context.Context, storeID string, req UpdateShiftRequest) (ShiftResponse, error)

	// DeleteShift removes one shift.
	DeleteShift(ctx context.Context, storeID string, shiftID string) error

	// DeleteShiftsInRange removes an employee's shifts over a date range.
	DeleteShiftsInRange(ctx context.Context, storeID string, req DeleteRangeRequest) (int64, error)

	// ListShifts retrieves shifts for the store calendar.
	ListShifts(ctx context.Context, storeID string, filter ListShiftsFilter) ([]ShiftResponse, error)
}
